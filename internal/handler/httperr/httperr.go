package httperr

// Response is the error envelope the error-handling middleware emits for
// deferred public errors and recovered panics.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}
