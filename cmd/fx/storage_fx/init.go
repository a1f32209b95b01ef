package storage_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"quill/internal/config"
	"quill/pkg/storage"
)

var Module = fx.Provide(provideStorage)

func provideStorage(cfg *config.Config, log *zap.Logger) (storage.Storage, error) {
	store, err := storage.NewStorage(storage.StorageConfig{
		Type:         storage.StorageType(cfg.Storage.Type),
		LocalPath:    cfg.Storage.LocalPath,
		S3Bucket:     cfg.Storage.S3Bucket,
		S3Region:     cfg.Storage.S3Region,
		AWSAccessKey: cfg.Storage.AWSAccessKey,
		AWSSecretKey: cfg.Storage.AWSSecretKey,
	})
	if err != nil {
		return nil, err
	}
	log.Info("export storage ready", zap.String("type", cfg.Storage.Type))
	return store, nil
}
