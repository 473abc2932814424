package http

const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-Id"
	HeaderCartSession = "X-Cart-Session"
	ValueJson         = "application/json"
)
