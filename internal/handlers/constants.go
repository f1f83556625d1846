package handlers

const (
	ErrInvalidJSON         = "Invalid request body"
	ErrInvalidCSRF         = "Invalid CSRF token"
	ErrTooManyRequests     = "Too many requests, please wait a moment"
	ErrInternalServerError = "Internal server error"
	ErrNotFound            = "Not found"
	ErrBusy                = "Please wait for the current action to finish"
	ErrNothingToSubmit     = "Nothing to submit"

	// maxBodyBytes caps JSON request bodies
	maxBodyBytes = 64 << 10
)
