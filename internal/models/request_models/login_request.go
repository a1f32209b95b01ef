package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignUpRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateBrandRequest updates the legacy single-brand fields.
type UpdateBrandRequest struct {
	BrandName *string `json:"brandName" binding:"omitempty,max=200"`
	BrandInfo *string `json:"brandInfo"`
}
