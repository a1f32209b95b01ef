package document_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"quill/internal/repositories"
	"quill/internal/services"
)

var Module = fx.Provide(
	provideDocumentRepo,
	provideFolderRepo,
	services.NewDocumentService,
	services.NewFolderService)

func provideDocumentRepo(db *gorm.DB) repositories.DocumentRepository {
	return repositories.NewDocumentRepository(db)
}

func provideFolderRepo(db *gorm.DB) repositories.FolderRepository {
	return repositories.NewFolderRepository(db)
}
