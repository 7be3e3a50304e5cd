package request

// UpsertUserRequest is the login/profile call. Nil fields keep the stored value.
type UpsertUserRequest struct {
	Email    string  `json:"email" validate:"required,email,max=254"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=300"`
	PhotoURL *string `json:"photo_url,omitempty" validate:"omitempty,url,max=2048"`
}

// RoleRequest names the user an admin promotes or demotes.
type RoleRequest struct {
	Email string `json:"email" validate:"required,email"`
}
