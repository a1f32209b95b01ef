package response_models

import "quill/internal/models/db_models"

type DocumentResponse struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Prompt          *string  `json:"prompt,omitempty"`
	MarketTier      *string  `json:"marketTier,omitempty"`
	CharacterLength *int     `json:"characterLength,omitempty"`
	WordLength      *int     `json:"wordLength,omitempty"`
	GradeLevel      *string  `json:"gradeLevel,omitempty"`
	Benchmark       *string  `json:"benchmark,omitempty"`
	AvoidWords      []string `json:"avoidWords,omitempty"`
	WritingStyle    *string  `json:"writingStyle,omitempty"`
	StyleTitle      *string  `json:"styleTitle,omitempty"`
	StyleSummary    *string  `json:"styleSummary,omitempty"`
	IsStyle         bool     `json:"isStyle"`
	Pinned          bool     `json:"pinned"`
	CreatedAt       int64    `json:"createdAt"`
	UpdatedAt       int64    `json:"updatedAt"`
}

type DocumentListResponse struct {
	Items    []DocumentResponse `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

type PlaceholdersResponse struct {
	Placeholders []string `json:"placeholders"`
}

type ResolvedContentResponse struct {
	Content    string   `json:"content"`
	Unresolved []string `json:"unresolved"`
	Saved      bool     `json:"saved"`
}

func NewDocumentResponse(d *db_models.Document) DocumentResponse {
	return DocumentResponse{
		ID:              d.ID.String(),
		Title:           d.Title,
		Content:         d.Content,
		Prompt:          d.Prompt,
		MarketTier:      d.MarketTier,
		CharacterLength: d.CharacterLength,
		WordLength:      d.WordLength,
		GradeLevel:      d.GradeLevel,
		Benchmark:       d.Benchmark,
		AvoidWords:      d.AvoidWords,
		WritingStyle:    d.WritingStyle,
		StyleTitle:      d.StyleTitle,
		StyleSummary:    d.StyleSummary,
		IsStyle:         d.IsStyle,
		Pinned:          d.Pinned,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func NewDocumentResponses(docs []db_models.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, NewDocumentResponse(&docs[i]))
	}
	return out
}

type ConvertResponse struct {
	Content string `json:"content"`
}
