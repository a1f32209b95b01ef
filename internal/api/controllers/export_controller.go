package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quill/internal/models/request_models"
	"quill/internal/models/response_models"
	"quill/internal/services"
	"quill/pkg/storage"
	"quill/pkg/utils"
)

type ExportController struct {
	exportService services.ExportServiceInterface
}

func NewExportController(exportService services.ExportServiceInterface) *ExportController {
	return &ExportController{exportService: exportService}
}

// Export godoc
// @Summary Export content as a file
// @Description Renders markdown content to docx or plain text and returns it as an attachment
// @Tags Export
// @Accept json
// @Produce application/octet-stream
// @Param request body request_models.ExportRequest true "Content to export"
// @Success 200 {file} file
// @Failure 400 {object} utils.APIResponse
// @Router /export [post]
func (e *ExportController) Export(c *gin.Context) {
	var req request_models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	file, err := e.exportService.Render(req.Title, req.Content, req.Format)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	attachment(c, file.Filename, file.ContentType, file.Data)
}

// ExportDocument godoc
// @Summary Download a document
// @Tags Export
// @Produce application/octet-stream
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Param format query string false "docx or txt" default(docx)
// @Success 200 {file} file
// @Router /documents/{id}/export [get]
func (e *ExportController) ExportDocument(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	file, err := e.exportService.ExportDocument(c.Request.Context(), userID, id, c.DefaultQuery("format", services.FormatDOCX))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	attachment(c, file.Filename, file.ContentType, file.Data)
}

// Archive godoc
// @Summary Store an export for later download
// @Tags Export
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Param format query string false "docx or txt" default(docx)
// @Success 201 {object} utils.APIResponse{data=response_models.ArchiveResponse}
// @Router /documents/{id}/export/archive [post]
func (e *ExportController) Archive(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	archive, err := e.exportService.Archive(c.Request.Context(), userID, id, c.DefaultQuery("format", services.FormatDOCX))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondStatus(c, http.StatusCreated, archive, "Export stored")
}

// DownloadArchive godoc
// @Summary Download a stored export
// @Tags Export
// @Produce application/octet-stream
// @Security BearerAuth
// @Param key path string true "Storage key"
// @Success 200 {file} file
// @Failure 404 {object} utils.APIResponse
// @Router /exports/{key} [get]
func (e *ExportController) DownloadArchive(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	rc, filename, err := e.exportService.OpenArchive(c.Request.Context(), userID, strings.TrimPrefix(c.Param("key"), "/"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", storage.ContentType(filename))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		c.Error(err)
	}
}

// HTMLToMarkdown godoc
// @Summary Convert editor HTML to markdown
// @Tags Export
// @Accept json
// @Produce json
// @Param request body request_models.ConvertRequest true "HTML content"
// @Success 200 {object} utils.APIResponse{data=response_models.ConvertResponse}
// @Router /convert/html-to-markdown [post]
func (e *ExportController) HTMLToMarkdown(c *gin.Context) {
	var req request_models.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	md, err := e.exportService.HTMLToMarkdown(req.Content)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.ConvertResponse{Content: md}, "")
}

// MarkdownToHTML godoc
// @Summary Convert markdown to editor HTML
// @Tags Export
// @Accept json
// @Produce json
// @Param request body request_models.ConvertRequest true "Markdown content"
// @Success 200 {object} utils.APIResponse{data=response_models.ConvertResponse}
// @Router /convert/markdown-to-html [post]
func (e *ExportController) MarkdownToHTML(c *gin.Context) {
	var req request_models.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	utils.RespondSuccess(c, response_models.ConvertResponse{Content: e.exportService.MarkdownToHTML(req.Content)}, "")
}
