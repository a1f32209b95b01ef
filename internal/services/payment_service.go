package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"quill/internal/config"
	"quill/internal/models/db_models"
	"quill/internal/models/response_models"
	"quill/internal/repositories"
	"quill/pkg/utils"
)

const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

type PaymentConfig struct {
	SecretKey    string // sk_live_... / sk_test_...; empty disables payments
	PriceMonthly string // price_... for the monthly plan
	PriceYearly  string // price_... for the yearly plan
	AppBaseURL   string // success / cancel / portal return links are built from it
}

func NewPaymentConfig(cfg *config.Config) PaymentConfig {
	return PaymentConfig{
		SecretKey:    cfg.Stripe.SecretKey,
		PriceMonthly: cfg.Stripe.PriceMonthly,
		PriceYearly:  cfg.Stripe.PriceYearly,
		AppBaseURL:   cfg.AppBaseURL,
	}
}

// BillingGateway is the slice of the Stripe API the service drives.
type BillingGateway interface {
	NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	NewPortalSession(params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error)
}

type stripeGateway struct {
	api *client.API
}

// NewStripeGateway returns nil when no secret key is configured.
func NewStripeGateway(cfg PaymentConfig) BillingGateway {
	if cfg.SecretKey == "" {
		return nil
	}
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &stripeGateway{api: api}
}

func (g *stripeGateway) NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return g.api.CheckoutSessions.New(params)
}

func (g *stripeGateway) NewPortalSession(params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error) {
	return g.api.BillingPortalSessions.New(params)
}

type PaymentService interface {
	Plans() ([]response_models.SubscriptionPlan, error)
	CreateCheckout(ctx context.Context, userID uuid.UUID, plan string) (*response_models.CheckoutResponse, error)
	CreatePortal(ctx context.Context, userID uuid.UUID) (*response_models.PortalResponse, error)
	Subscription(ctx context.Context, userID uuid.UUID) (*response_models.SubscriptionResponse, error)
}

type paymentService struct {
	gateway     BillingGateway
	accountRepo repositories.AccountRepository
	cfg         PaymentConfig
	log         *zap.Logger
}

func NewPaymentService(gateway BillingGateway, accountRepo repositories.AccountRepository, cfg PaymentConfig, log *zap.Logger) PaymentService {
	return &paymentService{
		gateway:     gateway,
		accountRepo: accountRepo,
		cfg:         cfg,
		log:         log,
	}
}

func (p *paymentService) plans() []response_models.SubscriptionPlan {
	var plans []response_models.SubscriptionPlan
	if p.cfg.PriceMonthly != "" {
		plans = append(plans, response_models.SubscriptionPlan{
			Code: PlanMonthly, Name: "Pro Monthly", Interval: "month", PriceID: p.cfg.PriceMonthly,
		})
	}
	if p.cfg.PriceYearly != "" {
		plans = append(plans, response_models.SubscriptionPlan{
			Code: PlanYearly, Name: "Pro Yearly", Interval: "year", PriceID: p.cfg.PriceYearly,
		})
	}
	return plans
}

func (p *paymentService) Plans() ([]response_models.SubscriptionPlan, error) {
	if p.gateway == nil {
		return nil, utils.ErrPaymentsUnavailable
	}
	plans := p.plans()
	if plans == nil {
		plans = []response_models.SubscriptionPlan{}
	}
	return plans, nil
}

func (p *paymentService) CreateCheckout(ctx context.Context, userID uuid.UUID, planCode string) (*response_models.CheckoutResponse, error) {
	if p.gateway == nil {
		return nil, utils.ErrPaymentsUnavailable
	}

	var plan *response_models.SubscriptionPlan
	for _, candidate := range p.plans() {
		if candidate.Code == planCode {
			c := candidate
			plan = &c
		}
	}
	if plan == nil {
		return nil, utils.ErrUnknownPlan
	}

	user, err := p.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(plan.PriceID), Quantity: stripe.Int64(1)},
		},
		ClientReferenceID: stripe.String(user.ID.String()),
		SuccessURL:        stripe.String(p.cfg.AppBaseURL + "/billing?checkout=success&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(p.cfg.AppBaseURL + "/billing?checkout=cancel"),
	}
	if id := user.Subscription.StripeCustomerID; id != nil && *id != "" {
		params.Customer = stripe.String(*id)
	} else {
		params.CustomerEmail = stripe.String(user.Email)
	}
	params.AddMetadata("user_id", user.ID.String())
	params.AddMetadata("plan", plan.Code)
	if err := setIdempotencyKey(&params.Params); err != nil {
		return nil, err
	}

	session, err := p.gateway.NewCheckoutSession(params)
	if err != nil {
		p.log.Error("stripe checkout failed", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	// The webhook is the source of truth for status; only the pending choice is kept here.
	sub := user.Subscription
	sub.Metadata = pendingCheckout(plan.Code, session.ID)
	if err := p.accountRepo.UpdateSubscription(ctx, userID, sub); err != nil {
		p.log.Warn("could not record pending checkout", zap.Error(err))
	}

	return &response_models.CheckoutResponse{SessionID: session.ID, URL: session.URL}, nil
}

func (p *paymentService) CreatePortal(ctx context.Context, userID uuid.UUID) (*response_models.PortalResponse, error) {
	if p.gateway == nil {
		return nil, utils.ErrPaymentsUnavailable
	}

	user, err := p.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	customerID := user.Subscription.StripeCustomerID
	if customerID == nil || *customerID == "" {
		return nil, utils.ErrNoBillingCustomer
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*customerID),
		ReturnURL: stripe.String(p.cfg.AppBaseURL + "/billing"),
	}
	if err := setIdempotencyKey(&params.Params); err != nil {
		return nil, err
	}

	session, err := p.gateway.NewPortalSession(params)
	if err != nil {
		p.log.Error("stripe portal failed", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("create portal session: %w", err)
	}
	return &response_models.PortalResponse{URL: session.URL}, nil
}

func (p *paymentService) Subscription(ctx context.Context, userID uuid.UUID) (*response_models.SubscriptionResponse, error) {
	user, err := p.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := response_models.NewSubscriptionResponse(user.Subscription, nowUnix())
	return &resp, nil
}

func (p *paymentService) findUser(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := p.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, dbError(err)
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}

func setIdempotencyKey(params *stripe.Params) error {
	key, err := utils.GenerateSecureToken(16)
	if err != nil {
		return err
	}
	params.SetIdempotencyKey(key)
	return nil
}

func pendingCheckout(plan, sessionID string) datatypes.JSON {
	raw, _ := json.Marshal(map[string]interface{}{
		"pending_plan":     plan,
		"checkout_session": sessionID,
		"requested_at":     nowUnix(),
	})
	return datatypes.JSON(raw)
}
