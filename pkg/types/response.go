package types

// SuccessEnvelope wraps every 2xx payload served by the storefront API.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public shape of a coded error. Details are only present for
// codes whose metadata allows them.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope echoes the request id so clients can quote it when reporting
// a failed cart or checkout call.
type ErrorEnvelope struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"requestId,omitempty"`
}
