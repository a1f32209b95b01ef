package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/models/request_models"
	"quill/internal/models/response_models"
	"quill/internal/services"
	"quill/pkg/utils"
)

type StyleController struct {
	styleService services.StyleServiceInterface
}

func NewStyleController(styleService services.StyleServiceInterface) *StyleController {
	return &StyleController{styleService: styleService}
}

// sseReporter forwards generation progress to the open event stream.
type sseReporter struct {
	c *gin.Context
}

func (r sseReporter) Progress(percent int, message string) {
	r.send("progress", response_models.ProgressEvent{Percent: percent, Message: message})
}

func (r sseReporter) Log(message string) {
	r.send("log", response_models.LogEvent{Message: message})
}

func (r sseReporter) send(event string, data interface{}) {
	r.c.SSEvent(event, data)
	r.c.Writer.Flush()
}

// Generate godoc
// @Summary Generate a writing style
// @Description Streams server sent events: progress and log while running,
// @Description then exactly one of complete or error.
// @Tags Styles
// @Accept json
// @Produce text/event-stream
// @Security BearerAuth
// @Param request body request_models.GenerateStyleRequest true "Writing sample"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} utils.APIResponse
// @Router /styles/generate [post]
func (s *StyleController) Generate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.GenerateStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	reporter := sseReporter{c: c}
	doc, err := s.styleService.Generate(c.Request.Context(), userID, req, reporter)
	if err != nil {
		code, message := utils.ErrorStatus(err)
		reporter.send("error", response_models.ErrorEvent{Code: code, Message: message})
		return
	}
	reporter.send("complete", response_models.CompleteEvent{Document: *doc})
}
