package request_models

type CreatePersonaRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=200"`
	Info        string   `json:"info"`
	KeyMessages []string `json:"keyMessages"`
	Activate    bool     `json:"activate"`
}

type UpdatePersonaRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=200"`
	Info *string `json:"info"`
}

type KeyMessageRequest struct {
	Content  string `json:"content" binding:"required"`
	Position *int   `json:"position"`
}

type UpdateKeyMessageRequest struct {
	Content  *string `json:"content" binding:"omitempty,min=1"`
	Position *int    `json:"position"`
}
