package request_models

type CreateFolderRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=200"`
	Pinned bool   `json:"pinned"`
}

type UpdateFolderRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=200"`
	Pinned *bool   `json:"pinned"`
}
