package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quill/internal/models/db_models"
	"quill/internal/models/request_models"
	"quill/internal/models/response_models"
	"quill/internal/repositories"
	"quill/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.AccountResponse, error)
	UpdateBrand(ctx context.Context, userID uuid.UUID, request request_models.UpdateBrandRequest) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	tokens      *utils.TokenIssuer
	log         *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenIssuer, log *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
		log:         log,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, dbError(err)
	}
	if account == nil || account.PasswordHash == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(*account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(account.ID, account.Email)
	if err != nil {
		a.log.Error("token signing failed", zap.Error(err))
		return nil, err
	}

	return &response_models.AccountLoginResponse{
		Token:                 token,
		HasActiveSubscription: account.Subscription.IsActive(nowUnix()),
	}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	email := normalizeEmail(request.Email)

	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, dbError(err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	user := &db_models.User{
		Name:         strings.TrimSpace(request.Name),
		Email:        email,
		PasswordHash: &hashedPassword,
		Subscription: db_models.Subscription{Status: db_models.SubStatusInactive},
	}

	if err := a.accountRepo.Insert(ctx, user); err != nil {
		// a concurrent registration won the unique index
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, dbError(err)
	}

	resp := response_models.NewAccountResponse(user, nowUnix())
	return &resp, nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.AccountResponse, error) {
	user, err := a.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := response_models.NewAccountResponse(user, nowUnix())
	return &resp, nil
}

func (a *AccountService) UpdateBrand(ctx context.Context, userID uuid.UUID, request request_models.UpdateBrandRequest) (*response_models.AccountResponse, error) {
	user, err := a.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if request.BrandName != nil {
		user.BrandName = strings.TrimSpace(*request.BrandName)
		fields["brand_name"] = user.BrandName
	}
	if request.BrandInfo != nil {
		user.BrandInfo = strings.TrimSpace(*request.BrandInfo)
		fields["brand_info"] = user.BrandInfo
	}

	if err := a.accountRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, dbError(err)
	}

	resp := response_models.NewAccountResponse(user, nowUnix())
	return &resp, nil
}

func (a *AccountService) findUser(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := a.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, dbError(err)
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
