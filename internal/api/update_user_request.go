package api

// UpdateUserRequest applies a partial update: a field left out of the JSON
// body (nil after binding) leaves the stored value unchanged.
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty" example:"Alice"`
	Email    *string `json:"email" validate:"omitempty,email" example:"alice@example.com"`
	Quotes   *string `json:"quotes" example:"stay hungry"`
	Password *string `json:"password" validate:"omitempty" example:"Secret123!"`
}
