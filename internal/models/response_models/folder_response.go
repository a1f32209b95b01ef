package response_models

import "quill/internal/models/db_models"

type FolderResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Pinned    bool   `json:"pinned"`
	Documents int64  `json:"documentCount"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

func NewFolderResponse(f *db_models.Folder) FolderResponse {
	return FolderResponse{
		ID:        f.ID.String(),
		Name:      f.Name,
		Pinned:    f.Pinned,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func NewFolderResponses(folders []db_models.Folder) []FolderResponse {
	out := make([]FolderResponse, 0, len(folders))
	for i := range folders {
		out = append(out, NewFolderResponse(&folders[i]))
	}
	return out
}
