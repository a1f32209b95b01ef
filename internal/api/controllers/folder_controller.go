package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quill/internal/models/request_models"
	"quill/internal/services"
	"quill/pkg/utils"
)

type FolderController struct {
	folderService services.FolderServiceInterface
}

func NewFolderController(folderService services.FolderServiceInterface) *FolderController {
	return &FolderController{folderService: folderService}
}

// List godoc
// @Summary List folders
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]response_models.FolderResponse}
// @Router /folders [get]
func (f *FolderController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	folders, err := f.folderService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, folders, "")
}

// Create godoc
// @Summary Create a folder
// @Tags Folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateFolderRequest true "Folder"
// @Success 201 {object} utils.APIResponse{data=response_models.FolderResponse}
// @Router /folders [post]
func (f *FolderController) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	folder, err := f.folderService.Create(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondStatus(c, http.StatusCreated, folder, "Folder created")
}

// Update godoc
// @Summary Rename or pin a folder
// @Tags Folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Folder ID"
// @Param request body request_models.UpdateFolderRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=response_models.FolderResponse}
// @Router /folders/{id} [patch]
func (f *FolderController) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateFolderRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	folder, err := f.folderService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, folder, "")
}

// Delete godoc
// @Summary Delete a folder
// @Description Removes the folder; its documents are kept
// @Tags Folders
// @Security BearerAuth
// @Param id path string true "Folder ID"
// @Success 200 {object} utils.APIResponse
// @Router /folders/{id} [delete]
func (f *FolderController) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := f.folderService.Delete(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Folder deleted")
}

// AssignDocument godoc
// @Summary Add a document to a folder
// @Description Idempotent: assigning twice keeps a single membership
// @Tags Folders
// @Security BearerAuth
// @Param id path string true "Folder ID"
// @Param documentId path string true "Document ID"
// @Success 200 {object} utils.APIResponse
// @Router /folders/{id}/documents/{documentId} [put]
func (f *FolderController) AssignDocument(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	documentID, ok := pathID(c, "documentId")
	if !ok {
		return
	}

	if err := f.folderService.AssignDocument(c.Request.Context(), userID, folderID, documentID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Document added to folder")
}

// UnassignDocument godoc
// @Summary Remove a document from a folder
// @Tags Folders
// @Security BearerAuth
// @Param id path string true "Folder ID"
// @Param documentId path string true "Document ID"
// @Success 200 {object} utils.APIResponse
// @Router /folders/{id}/documents/{documentId} [delete]
func (f *FolderController) UnassignDocument(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	documentID, ok := pathID(c, "documentId")
	if !ok {
		return
	}

	if err := f.folderService.UnassignDocument(c.Request.Context(), userID, folderID, documentID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Document removed from folder")
}

// ListDocuments godoc
// @Summary Documents in a folder
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Folder ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=response_models.DocumentListResponse}
// @Router /folders/{id}/documents [get]
func (f *FolderController) ListDocuments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, err1 := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, err2 := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err1 != nil || err2 != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	docs, err := f.folderService.ListDocuments(c.Request.Context(), userID, folderID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, docs, "")
}
