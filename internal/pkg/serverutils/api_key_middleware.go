package serverutils

import (
	"livelabs-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
)

const apiKeyHeader = "X-API-Key"

// SiteAuthMiddleware authenticates serving-layer calls with the site api key
// and stores the resolved site in locals.
func SiteAuthMiddleware(sites contract.SiteRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		key := ctx.Get(apiKeyHeader)
		if key == "" {
			key = ctx.Query("key")
		}
		if key == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing api key"})
		}
		site, err := sites.FindByApiKey(ctx.Context(), key)
		if err != nil {
			return err
		}
		if site == nil || !site.Enabled {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid api key"})
		}
		ctx.Locals("site", site)
		return ctx.Next()
	}
}

// ParticipantAuthMiddleware authenticates participant calls with their api
// key and stores the resolved participant in locals.
func ParticipantAuthMiddleware(participants contract.ParticipantRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		key := ctx.Get(apiKeyHeader)
		if key == "" {
			key = ctx.Query("key")
		}
		if key == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing api key"})
		}
		participant, err := participants.FindByApiKey(ctx.Context(), key)
		if err != nil {
			return err
		}
		if participant == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid api key"})
		}
		if !participant.IsVerified {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Participant not verified"})
		}
		ctx.Locals("participant", participant)
		return ctx.Next()
	}
}
