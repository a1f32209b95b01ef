package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/models/request_models"
	"quill/internal/services"
	"quill/pkg/utils"
)

type DocumentController struct {
	documentService services.DocumentServiceInterface
}

func NewDocumentController(documentService services.DocumentServiceInterface) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// List godoc
// @Summary List documents
// @Description Owned documents, pinned first then most recently updated
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param folderId query string false "Only documents in this folder"
// @Param styles query bool false "Only style documents"
// @Success 200 {object} utils.APIResponse{data=response_models.DocumentListResponse}
// @Router /documents [get]
func (d *DocumentController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var query request_models.ListDocumentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	docs, err := d.documentService.List(c.Request.Context(), userID, query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, docs, "")
}

// Get godoc
// @Summary Get a document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} utils.APIResponse{data=response_models.DocumentResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /documents/{id} [get]
func (d *DocumentController) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	doc, err := d.documentService.Get(c.Request.Context(), userID, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, doc, "")
}

// Create godoc
// @Summary Create a document
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateDocumentRequest true "Document"
// @Success 201 {object} utils.APIResponse{data=response_models.DocumentResponse}
// @Router /documents [post]
func (d *DocumentController) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	doc, err := d.documentService.Create(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondStatus(c, http.StatusCreated, doc, "Document created")
}

// Update godoc
// @Summary Update a document
// @Description Applies only the fields present in the body; an empty body changes nothing
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Param request body request_models.UpdateDocumentRequest false "Fields to change"
// @Success 200 {object} utils.APIResponse{data=response_models.DocumentResponse}
// @Router /documents/{id} [patch]
func (d *DocumentController) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateDocumentRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	doc, err := d.documentService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, doc, "")
}

// Delete godoc
// @Summary Delete a document
// @Tags Documents
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} utils.APIResponse
// @Router /documents/{id} [delete]
func (d *DocumentController) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := d.documentService.Delete(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Document deleted")
}

// Pin godoc
// @Summary Pin or unpin a document
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Param request body request_models.PinRequest true "Pinned flag"
// @Success 200 {object} utils.APIResponse{data=response_models.DocumentResponse}
// @Router /documents/{id}/pin [post]
func (d *DocumentController) Pin(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.PinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	doc, err := d.documentService.Pin(c.Request.Context(), userID, id, req.Pinned)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, doc, "")
}

// Placeholders godoc
// @Summary List placeholder tokens
// @Description Distinct [Placeholder] names in order of first use
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} utils.APIResponse{data=response_models.PlaceholdersResponse}
// @Router /documents/{id}/placeholders [get]
func (d *DocumentController) Placeholders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	names, err := d.documentService.Placeholders(c.Request.Context(), userID, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, names, "")
}

// Resolve godoc
// @Summary Substitute placeholder values
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Param request body request_models.ResolvePlaceholdersRequest true "Values"
// @Success 200 {object} utils.APIResponse{data=response_models.ResolvedContentResponse}
// @Router /documents/{id}/resolve [post]
func (d *DocumentController) Resolve(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.ResolvePlaceholdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resolved, err := d.documentService.Resolve(c.Request.Context(), userID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resolved, "")
}
