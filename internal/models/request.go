package models

// ParseRequest is the body of a parse call. Network is optional; an empty
// Psbt is left to the parser, which reports it as a format error.
type ParseRequest struct {
	Psbt    string `json:"psbt"`
	Network string `json:"network,omitempty"`
}

// ErrorResponse is returned for any failed call
type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// InvokeResponse is written by the single-shot handler for every event
type InvokeResponse struct {
	StatusCode int `json:"status_code"`
	Body       any `json:"body"`
}
