package dto

// CreateUserRequest represents a request to create a new user
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     string `json:"role" binding:"required,oneof=super_admin restaurant_admin"`
}

// UpdateUserRequest represents a request to update a user. Role is fixed
// at creation; a non-empty role that differs from the stored one is
// rejected, it is never applied.
type UpdateUserRequest struct {
	Username string  `json:"username" binding:"omitempty,min=3,max=50"`
	Password string  `json:"password" binding:"omitempty,min=6"`
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Role     string  `json:"role"`
}
