package request_models

// GenerationOptions is the style bag shared by compose, rewrite and documents.
type GenerationOptions struct {
	MarketTier      *string  `json:"marketTier"`
	CharacterLength *int     `json:"characterLength" binding:"omitempty,min=1"`
	WordLength      *int     `json:"wordLength" binding:"omitempty,min=1"`
	GradeLevel      *string  `json:"gradeLevel"`
	Benchmark       *string  `json:"benchmark"`
	AvoidWords      []string `json:"avoidWords"`
}

type ListDocumentsQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	FolderID string `form:"folderId" binding:"omitempty,uuid"`
	Styles   bool   `form:"styles"`
}

type CreateDocumentRequest struct {
	Title   string  `json:"title" binding:"max=300"`
	Content string  `json:"content"`
	Prompt  *string `json:"prompt"`
	GenerationOptions
}

// UpdateDocumentRequest applies only the fields present in the body.
type UpdateDocumentRequest struct {
	Title           *string   `json:"title" binding:"omitempty,max=300"`
	Content         *string   `json:"content"`
	Prompt          *string   `json:"prompt"`
	MarketTier      *string   `json:"marketTier"`
	CharacterLength *int      `json:"characterLength"`
	WordLength      *int      `json:"wordLength"`
	GradeLevel      *string   `json:"gradeLevel"`
	Benchmark       *string   `json:"benchmark"`
	AvoidWords      *[]string `json:"avoidWords"`
	Pinned          *bool     `json:"pinned"`
}

type PinRequest struct {
	Pinned bool `json:"pinned"`
}

type ResolvePlaceholdersRequest struct {
	Values map[string]string `json:"values"`
	Save   bool              `json:"save"`
}
