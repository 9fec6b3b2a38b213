package user

// CreateRequest for POST /users
type CreateRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"required,min=2,max=200"`
	Role     string `json:"role" validate:"required,role"`
	StoreID  string `json:"store_id" validate:"omitempty,uuid"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// ResetPasswordRequest for PUT /users/{id}/password
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// UpdateRequest for PUT /users/{id}
type UpdateRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=200"`
	Role     string `json:"role" validate:"required,role"`
	StoreID  string `json:"store_id" validate:"omitempty,uuid"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	IsActive *bool  `json:"is_active" validate:"required"`
}
