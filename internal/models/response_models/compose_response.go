package response_models

type ComposeResponse struct {
	Content  string            `json:"content"`
	Saved    bool              `json:"saved"`
	Document *DocumentResponse `json:"document,omitempty"`
	// Remaining guest generations, nil for signed in users.
	GuestRemaining *int `json:"guestRemaining,omitempty"`
}

type RewriteResponse struct {
	Rewritten      string            `json:"rewritten"`
	Content        string            `json:"content"`
	Saved          bool              `json:"saved"`
	Document       *DocumentResponse `json:"document,omitempty"`
	GuestRemaining *int              `json:"guestRemaining,omitempty"`
}

type ProgressEvent struct {
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

type LogEvent struct {
	Message string `json:"message"`
}

type ErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type CompleteEvent struct {
	Document DocumentResponse `json:"document"`
}
