package request_models

type ExportRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Format  string `json:"format" binding:"required,oneof=docx txt"`
}

type ConvertRequest struct {
	Content string `json:"content"`
}
