package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/models/request_models"
	"quill/internal/services"
	"quill/pkg/utils"
)

type ComposeController struct {
	composeService services.ComposeServiceInterface
}

func NewComposeController(composeService services.ComposeServiceInterface) *ComposeController {
	return &ComposeController{composeService: composeService}
}

// Compose godoc
// @Summary Generate marketing copy
// @Description Signed in callers get the result saved as a document. Guests are
// @Description limited per X-Guest-Id (or client IP) and never saved.
// @Tags Compose
// @Accept json
// @Produce json
// @Param X-Guest-Id header string false "Stable guest identifier"
// @Param request body request_models.ComposeRequest true "Compose request"
// @Success 200 {object} utils.APIResponse{data=response_models.ComposeResponse}
// @Failure 403 {object} utils.APIResponse "Guest limit reached"
// @Failure 502 {object} utils.APIResponse
// @Router /compose [post]
func (cc *ComposeController) Compose(c *gin.Context) {
	var req request_models.ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := cc.composeService.Compose(c.Request.Context(), caller(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "")
}

// Rewrite godoc
// @Summary Rewrite a selection
// @Description Rewrites the selected passage and splices it back into the content
// @Tags Compose
// @Accept json
// @Produce json
// @Param X-Guest-Id header string false "Stable guest identifier"
// @Param request body request_models.RewriteRequest true "Rewrite request"
// @Success 200 {object} utils.APIResponse{data=response_models.RewriteResponse}
// @Failure 400 {object} utils.APIResponse "Selection not found in content"
// @Router /rewrite [post]
func (cc *ComposeController) Rewrite(c *gin.Context) {
	var req request_models.RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := cc.composeService.Rewrite(c.Request.Context(), caller(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "")
}
