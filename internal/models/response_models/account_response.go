package response_models

import (
	"gorm.io/datatypes"

	"quill/internal/models/db_models"
)

type AccountLoginResponse struct {
	Token                 string `json:"token"`
	HasActiveSubscription bool   `json:"hasActiveSubscription"`
}

type AccountResponse struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Email           string               `json:"email"`
	BrandName       string               `json:"brandName,omitempty"`
	BrandInfo       string               `json:"brandInfo,omitempty"`
	ActivePersonaID *string              `json:"activePersonaId"`
	Subscription    SubscriptionResponse `json:"subscription"`
}

type SubscriptionResponse struct {
	Plan               string         `json:"plan,omitempty"`
	Status             string         `json:"status"`
	Active             bool           `json:"active"`
	CurrentPeriodStart int64          `json:"currentPeriodStart,omitempty"`
	CurrentPeriodEnd   int64          `json:"currentPeriodEnd,omitempty"`
	HasBillingAccount  bool           `json:"hasBillingAccount"`
	Metadata           datatypes.JSON `json:"metadata,omitempty"`
}

func NewSubscriptionResponse(s db_models.Subscription, now int64) SubscriptionResponse {
	status := string(s.Status)
	if status == "" {
		status = string(db_models.SubStatusInactive)
	}
	return SubscriptionResponse{
		Plan:               s.Plan,
		Status:             status,
		Active:             s.IsActive(now),
		CurrentPeriodStart: s.CurrentPeriodStart,
		CurrentPeriodEnd:   s.CurrentPeriodEnd,
		HasBillingAccount:  s.StripeCustomerID != nil && *s.StripeCustomerID != "",
		Metadata:           s.Metadata,
	}
}

func NewAccountResponse(u *db_models.User, now int64) AccountResponse {
	resp := AccountResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		BrandName:    u.BrandName,
		BrandInfo:    u.BrandInfo,
		Subscription: NewSubscriptionResponse(u.Subscription, now),
	}
	if u.ActivePersonaID != nil {
		id := u.ActivePersonaID.String()
		resp.ActivePersonaID = &id
	}
	return resp
}
