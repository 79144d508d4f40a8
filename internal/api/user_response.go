package api

// UserResponse is the client-facing user representation. The password hash
// never leaves the service.
// swagger:model api.UserResponse
type UserResponse struct {
	ID     int     `json:"id" example:"1"`
	Name   string  `json:"name" example:"Alice"`
	Email  string  `json:"email" example:"alice@example.com"`
	Quotes *string `json:"quotes" example:"stay hungry"`
}
