package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/models/request_models"
	"quill/pkg/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	accounts := newFakeAccountRepo()
	issuer := utils.NewTokenIssuer("test-secret", time.Hour)
	svc := NewAccountService(accounts, issuer, testLogger)
	ctx := context.Background()

	created, err := svc.CreateAccount(ctx, request_models.SignUpRequest{Name: "Sam", Email: " Sam@Example.com ", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", created.Email)
	assert.Equal(t, "inactive", created.Subscription.Status)

	_, err = svc.CreateAccount(ctx, request_models.SignUpRequest{Name: "Sam", Email: "sam@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	login, err := svc.Login(ctx, request_models.LoginRequest{Email: "sam@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.False(t, login.HasActiveSubscription)

	claims, err := issuer.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "sam@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestUpdateBrand(t *testing.T) {
	accounts := newFakeAccountRepo()
	svc := NewAccountService(accounts, utils.NewTokenIssuer("s", time.Hour), testLogger)
	ctx := context.Background()

	created, err := svc.CreateAccount(ctx, request_models.SignUpRequest{Name: "Sam", Email: "sam@example.com", Password: "hunter22"})
	require.NoError(t, err)

	name := " Acme "
	got, err := svc.UpdateBrand(ctx, mustParse(t, created.ID), request_models.UpdateBrandRequest{BrandName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.BrandName)
	assert.Empty(t, got.BrandInfo)
}
