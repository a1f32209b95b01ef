package request_models

type CheckoutRequest struct {
	Plan string `json:"plan" binding:"required"`
}
