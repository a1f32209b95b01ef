package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quill/internal/api/controllers"
	"quill/pkg/middleware"
	"quill/pkg/utils"
)

type Controllers struct {
	Account  *controllers.AccountController
	Document *controllers.DocumentController
	Folder   *controllers.FolderController
	Persona  *controllers.PersonaController
	Compose  *controllers.ComposeController
	Style    *controllers.StyleController
	Export   *controllers.ExportController
	Payment  *controllers.PaymentController
}

// NewRouter builds the engine with the shared middleware stack and every route.
func NewRouter(log *zap.Logger, auth *middleware.Auth, corsOrigins []string, ctrl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(corsOrigins))

	RegisterRoutes(r, auth, ctrl)
	return r
}

func RegisterRoutes(r *gin.Engine, auth *middleware.Auth, ctrl Controllers) {
	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
	})
	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, "Route not found")
	})

	required := auth.Required()
	optional := auth.Optional()

	accounts := r.Group("/accounts")
	accounts.POST("/register", ctrl.Account.Register)
	accounts.POST("/login", ctrl.Account.Login)
	accounts.GET("/me", required, ctrl.Account.Me)
	accounts.PATCH("/me/brand", required, ctrl.Account.UpdateBrand)

	r.POST("/compose", optional, ctrl.Compose.Compose)
	r.POST("/rewrite", optional, ctrl.Compose.Rewrite)
	r.POST("/export", ctrl.Export.Export)
	r.POST("/convert/html-to-markdown", ctrl.Export.HTMLToMarkdown)
	r.POST("/convert/markdown-to-html", ctrl.Export.MarkdownToHTML)

	documents := r.Group("/documents", required)
	documents.GET("", ctrl.Document.List)
	documents.POST("", ctrl.Document.Create)
	documents.GET("/:id", ctrl.Document.Get)
	documents.PATCH("/:id", ctrl.Document.Update)
	documents.DELETE("/:id", ctrl.Document.Delete)
	documents.POST("/:id/pin", ctrl.Document.Pin)
	documents.GET("/:id/placeholders", ctrl.Document.Placeholders)
	documents.POST("/:id/resolve", ctrl.Document.Resolve)
	documents.GET("/:id/export", ctrl.Export.ExportDocument)
	documents.POST("/:id/export/archive", ctrl.Export.Archive)

	r.GET("/exports/*key", required, ctrl.Export.DownloadArchive)

	folders := r.Group("/folders", required)
	folders.GET("", ctrl.Folder.List)
	folders.POST("", ctrl.Folder.Create)
	folders.PATCH("/:id", ctrl.Folder.Update)
	folders.DELETE("/:id", ctrl.Folder.Delete)
	folders.GET("/:id/documents", ctrl.Folder.ListDocuments)
	folders.PUT("/:id/documents/:documentId", ctrl.Folder.AssignDocument)
	folders.DELETE("/:id/documents/:documentId", ctrl.Folder.UnassignDocument)

	personas := r.Group("/personas", required)
	personas.GET("", ctrl.Persona.List)
	personas.POST("", ctrl.Persona.Create)
	personas.DELETE("/active", ctrl.Persona.ClearActive)
	personas.PATCH("/:id", ctrl.Persona.Update)
	personas.DELETE("/:id", ctrl.Persona.Delete)
	personas.POST("/:id/activate", ctrl.Persona.Activate)
	personas.GET("/:id/key-messages", ctrl.Persona.ListKeyMessages)
	personas.POST("/:id/key-messages", ctrl.Persona.AddKeyMessage)
	personas.PATCH("/:id/key-messages/:messageId", ctrl.Persona.UpdateKeyMessage)
	personas.DELETE("/:id/key-messages/:messageId", ctrl.Persona.DeleteKeyMessage)

	r.POST("/styles/generate", required, ctrl.Style.Generate)

	payments := r.Group("/payments")
	payments.GET("/plans", ctrl.Payment.Plans)
	payments.POST("/checkout", required, ctrl.Payment.Checkout)
	payments.POST("/portal", required, ctrl.Payment.Portal)
	payments.GET("/subscription", required, ctrl.Payment.Subscription)
}
