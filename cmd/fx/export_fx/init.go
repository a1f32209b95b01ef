package export_fx

import (
	"go.uber.org/fx"

	"quill/internal/services"
)

var Module = fx.Provide(services.NewExportService)
