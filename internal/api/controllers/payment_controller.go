package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/models/request_models"
	"quill/internal/services"
	"quill/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// Plans godoc
// @Summary List subscription plans
// @Tags Payments
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.SubscriptionPlan}
// @Failure 503 {object} utils.APIResponse "Payments are not configured"
// @Router /payments/plans [get]
func (p *PaymentController) Plans(c *gin.Context) {
	plans, err := p.paymentService.Plans()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "")
}

// Checkout godoc
// @Summary Start a Stripe checkout for a plan
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CheckoutRequest true "Plan code"
// @Success 200 {object} utils.APIResponse{data=response_models.CheckoutResponse}
// @Router /payments/checkout [post]
func (p *PaymentController) Checkout(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	session, err := p.paymentService.CreateCheckout(c.Request.Context(), userID, req.Plan)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, session, "Checkout session created")
}

// Portal godoc
// @Summary Open the Stripe billing portal
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response_models.PortalResponse}
// @Router /payments/portal [post]
func (p *PaymentController) Portal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	portal, err := p.paymentService.CreatePortal(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, portal, "")
}

// Subscription godoc
// @Summary Current subscription state
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response_models.SubscriptionResponse}
// @Router /payments/subscription [get]
func (p *PaymentController) Subscription(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sub, err := p.paymentService.Subscription(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, sub, "")
}
