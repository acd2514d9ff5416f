package dto

type ExportPeriodRequest struct {
	Period string `json:"period" validate:"required"`
}

type ExportPeriodResponse struct {
	Period    string   `json:"period"`
	Artifacts []string `json:"artifacts"`
}

type SweepResponse struct {
	Outdated int `json:"outdated"`
	Deleted  int `json:"deleted"`
	Notified int `json:"notified"`
}
