package api

// swagger:model api.UpdateQuoteRequest
type UpdateQuoteRequest struct {
	Quote string `json:"quote" validate:"required" example:"stay hungry"`
}
