package controllers_fx

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"quill/internal/api"
	"quill/internal/api/controllers"
	"quill/internal/config"
	"quill/pkg/middleware"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewDocumentController),
	fx.Provide(controllers.NewFolderController),
	fx.Provide(controllers.NewPersonaController),
	fx.Provide(controllers.NewComposeController),
	fx.Provide(controllers.NewStyleController),
	fx.Provide(controllers.NewExportController),
	fx.Provide(controllers.NewPaymentController),
	fx.Provide(ProvideRouter))

type routerParams struct {
	fx.In

	Config *config.Config
	Log    *zap.Logger
	Auth   *middleware.Auth

	Account  *controllers.AccountController
	Document *controllers.DocumentController
	Folder   *controllers.FolderController
	Persona  *controllers.PersonaController
	Compose  *controllers.ComposeController
	Style    *controllers.StyleController
	Export   *controllers.ExportController
	Payment  *controllers.PaymentController
}

func ProvideRouter(p routerParams) *gin.Engine {
	return api.NewRouter(p.Log, p.Auth, p.Config.CORSOrigins, api.Controllers{
		Account:  p.Account,
		Document: p.Document,
		Folder:   p.Folder,
		Persona:  p.Persona,
		Compose:  p.Compose,
		Style:    p.Style,
		Export:   p.Export,
		Payment:  p.Payment,
	})
}
