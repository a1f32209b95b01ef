package response_models

import "quill/internal/models/db_models"

type KeyMessageResponse struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

type PersonaResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Info        string               `json:"info"`
	Active      bool                 `json:"active"`
	KeyMessages []KeyMessageResponse `json:"keyMessages"`
}

func NewKeyMessageResponse(m *db_models.KeyMessage) KeyMessageResponse {
	return KeyMessageResponse{ID: m.ID.String(), Content: m.Content, Position: m.Position}
}

func NewKeyMessageResponses(msgs []db_models.KeyMessage) []KeyMessageResponse {
	out := make([]KeyMessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, NewKeyMessageResponse(&msgs[i]))
	}
	return out
}

func NewPersonaResponse(p *db_models.Persona, active bool) PersonaResponse {
	return PersonaResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Info:        p.Info,
		Active:      active,
		KeyMessages: NewKeyMessageResponses(p.KeyMessages),
	}
}
