package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSiteRequest struct {
	SiteId string `json:"site_id" validate:"required,alphanum"`
	Name   string `json:"name" validate:"required"`
}

type CreateSiteResponse struct {
	SiteId string `json:"site_id"`
	ApiKey string `json:"api_key"`
}

type CreateParticipantRequest struct {
	TeamName string   `json:"team_name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	SiteIds  []string `json:"site_ids" validate:"required,min=1"`
}

type CreateParticipantResponse struct {
	Id     uuid.UUID `json:"id"`
	ApiKey string    `json:"api_key"`
}

type ParticipantView struct {
	Id         uuid.UUID `json:"id"`
	TeamName   string    `json:"team_name"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	SiteIds    []string  `json:"site_ids"`
	CreatedAt  time.Time `json:"created_at"`
}

type SiteView struct {
	SiteId  string `json:"site_id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}
