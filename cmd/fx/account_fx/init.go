package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"quill/internal/config"
	"quill/internal/repositories"
	"quill/internal/services"
	"quill/pkg/middleware"
	"quill/pkg/utils"
)

var Module = fx.Provide(
	provideTokenIssuer,
	middleware.NewAuth,
	provideAccountService,
	provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideTokenIssuer(cfg *config.Config, log *zap.Logger) (*utils.TokenIssuer, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		generated, err := utils.GenerateSecureToken(32)
		if err != nil {
			return nil, err
		}
		secret = generated
		log.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}
	return utils.NewTokenIssuer(secret, cfg.JWTTTL), nil
}

func provideAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenIssuer, log *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, tokens, log)
}
