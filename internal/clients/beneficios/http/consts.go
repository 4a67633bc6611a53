package http

const (
	authorizationKey    = "Authorization"
	bearerPrefix        = "Bearer "
	contentTypeKey      = "Content-Type"
	applicationJSONType = "application/json"
	requestIDKey        = "X-Request-Id"
)
