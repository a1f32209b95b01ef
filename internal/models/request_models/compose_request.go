package request_models

type ComposeRequest struct {
	Prompt          string  `json:"prompt" binding:"required"`
	Title           *string `json:"title"`
	PersonaID       *string `json:"personaId" binding:"omitempty,uuid"`
	StyleDocumentID *string `json:"styleDocumentId" binding:"omitempty,uuid"`
	DocumentID      *string `json:"documentId" binding:"omitempty,uuid"`
	GenerationOptions
}

type RewriteRequest struct {
	Content     string  `json:"content" binding:"required"`
	Selection   string  `json:"selection" binding:"required"`
	Instruction string  `json:"instruction"`
	PersonaID   *string `json:"personaId" binding:"omitempty,uuid"`
	DocumentID  *string `json:"documentId" binding:"omitempty,uuid"`
	GenerationOptions
}

// GenerateStyleRequest describes a writing sample to fingerprint. Any of
// description, title and summary supplied here skips the matching model call.
type GenerateStyleRequest struct {
	Sample      string  `json:"sample"`
	DocumentID  *string `json:"documentId" binding:"omitempty,uuid"`
	Description *string `json:"description"`
	Title       *string `json:"title"`
	Summary     *string `json:"summary"`
}
