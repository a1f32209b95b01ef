package persona_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"quill/internal/repositories"
	"quill/internal/services"
)

var Module = fx.Provide(
	providePersonaRepo,
	services.NewPersonaService)

func providePersonaRepo(db *gorm.DB) repositories.PersonaRepository {
	return repositories.NewPersonaRepository(db)
}
