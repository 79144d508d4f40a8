package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required" example:"Alice"`
	Email    string  `json:"email" validate:"required,email" example:"alice@example.com"`
	Quotes   *string `json:"quotes" example:"stay hungry"`
	Password string  `json:"password" validate:"required" example:"Secret123!"`
}
