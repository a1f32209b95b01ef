package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quill/internal/services"
	"quill/pkg/middleware"
	"quill/pkg/utils"
)

const GuestIDHeader = "X-Guest-Id"

// pathID parses a uuid path parameter, answering 400 when malformed.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// currentUser returns the authenticated user id set by the auth middleware.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		utils.HandleServiceError(c, utils.ErrUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}

// caller describes a possibly anonymous requester; guests are keyed by the
// X-Guest-Id header, falling back to the client IP.
func caller(c *gin.Context) services.Caller {
	if id, ok := middleware.UserID(c); ok {
		return services.Caller{UserID: &id}
	}
	key := strings.TrimSpace(c.GetHeader(GuestIDHeader))
	if key == "" || len(key) > 128 {
		key = "ip:" + c.ClientIP()
	}
	return services.Caller{GuestKey: key}
}

// bindOptionalJSON binds a body that may be absent altogether.
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
