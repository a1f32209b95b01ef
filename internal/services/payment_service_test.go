package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"quill/internal/models/db_models"
	"quill/pkg/utils"
)

type fakeGateway struct {
	checkout *stripe.CheckoutSessionParams
	portal   *stripe.BillingPortalSessionParams
}

func (g *fakeGateway) NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	g.checkout = params
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
}

func (g *fakeGateway) NewPortalSession(params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error) {
	g.portal = params
	return &stripe.BillingPortalSession{URL: "https://billing.stripe.test/p_1"}, nil
}

var testPaymentConfig = PaymentConfig{
	SecretKey:    "sk_test",
	PriceMonthly: "price_month",
	PriceYearly:  "price_year",
	AppBaseURL:   "https://app.example.com",
}

func TestPaymentsDisabledWithoutKey(t *testing.T) {
	svc := NewPaymentService(nil, newFakeAccountRepo(), PaymentConfig{}, testLogger)

	_, err := svc.Plans()
	assert.ErrorIs(t, err, utils.ErrPaymentsUnavailable)
}

func TestCheckoutUsesConfiguredPrice(t *testing.T) {
	user := &db_models.User{Email: "buyer@example.com"}
	accounts := newFakeAccountRepo(user)
	gateway := &fakeGateway{}
	svc := NewPaymentService(gateway, accounts, testPaymentConfig, testLogger)

	got, err := svc.CreateCheckout(context.Background(), user.ID, PlanYearly)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.test/cs_test_1", got.URL)

	require.NotNil(t, gateway.checkout)
	assert.Equal(t, "price_year", *gateway.checkout.LineItems[0].Price)
	assert.Equal(t, user.ID.String(), *gateway.checkout.ClientReferenceID)
	assert.Equal(t, "buyer@example.com", *gateway.checkout.CustomerEmail)
	assert.Nil(t, gateway.checkout.Customer)
	assert.NotNil(t, gateway.checkout.IdempotencyKey)

	require.Len(t, accounts.subs, 1)
	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(accounts.subs[0].Metadata, &meta))
	assert.Equal(t, "yearly", meta["pending_plan"])
	assert.Equal(t, "cs_test_1", meta["checkout_session"])
}

func TestCheckoutReusesCustomer(t *testing.T) {
	customer := "cus_123"
	user := &db_models.User{Email: "buyer@example.com", Subscription: db_models.Subscription{StripeCustomerID: &customer}}
	gateway := &fakeGateway{}
	svc := NewPaymentService(gateway, newFakeAccountRepo(user), testPaymentConfig, testLogger)

	_, err := svc.CreateCheckout(context.Background(), user.ID, PlanMonthly)
	require.NoError(t, err)
	assert.Equal(t, "cus_123", *gateway.checkout.Customer)
	assert.Nil(t, gateway.checkout.CustomerEmail)
}

func TestCheckoutUnknownPlan(t *testing.T) {
	user := &db_models.User{Email: "buyer@example.com"}
	svc := NewPaymentService(&fakeGateway{}, newFakeAccountRepo(user), testPaymentConfig, testLogger)

	_, err := svc.CreateCheckout(context.Background(), user.ID, "lifetime")
	assert.ErrorIs(t, err, utils.ErrUnknownPlan)
}

func TestPortalRequiresCustomer(t *testing.T) {
	user := &db_models.User{Email: "buyer@example.com"}
	gateway := &fakeGateway{}
	svc := NewPaymentService(gateway, newFakeAccountRepo(user), testPaymentConfig, testLogger)

	_, err := svc.CreatePortal(context.Background(), user.ID)
	assert.ErrorIs(t, err, utils.ErrNoBillingCustomer)

	customer := "cus_9"
	user.Subscription.StripeCustomerID = &customer
	got, err := svc.CreatePortal(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://billing.stripe.test/p_1", got.URL)
	assert.Equal(t, "https://app.example.com/billing", *gateway.portal.ReturnURL)
}
