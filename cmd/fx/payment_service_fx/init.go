package payment_service_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"quill/internal/repositories"
	"quill/internal/services"
)

var Module = fx.Provide(
	services.NewPaymentConfig,
	provideGateway,
	providePaymentService,
)

func provideGateway(cfg services.PaymentConfig, log *zap.Logger) services.BillingGateway {
	gateway := services.NewStripeGateway(cfg)
	if gateway == nil {
		log.Warn("STRIPE_SECRET_KEY not set, payment endpoints are disabled")
	}
	return gateway
}

func providePaymentService(gateway services.BillingGateway, accountRepo repositories.AccountRepository, cfg services.PaymentConfig, log *zap.Logger) services.PaymentService {
	return services.NewPaymentService(gateway, accountRepo, cfg, log)
}
