package response_models

type SubscriptionPlan struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Interval string `json:"interval"`
	PriceID  string `json:"priceId"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type PortalResponse struct {
	URL string `json:"url"`
}

type ArchiveResponse struct {
	Key         string `json:"key"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	DownloadURL string `json:"downloadUrl"`
}
