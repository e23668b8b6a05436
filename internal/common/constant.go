// Package common contains shared constants and sentinel errors used across
// assocportal components.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound HTTP
	// requests.
	AuthorizationHeaderName = "Authorization"

	// AuthorizationMetadataKey is the gRPC metadata equivalent of
	// AuthorizationHeaderName (gRPC keys are lower-case).
	AuthorizationMetadataKey = "authorization"

	// BearerScheme prefixes the token value in the authorization header.
	BearerScheme = "Bearer"

	// RequestIDHeaderName correlates a client request with server logs.
	RequestIDHeaderName = "X-Request-ID"

	// AccessTokenMetadataKey is the name of the durable slot that holds the
	// current credential token on the client.
	AccessTokenMetadataKey = "access_token"

	// SessionHealthService is the gRPC health service name that only answers
	// callers presenting an accepted credential.
	SessionHealthService = "assocportal.session"
)

// BearerValue formats token as an Authorization header value.
func BearerValue(token string) string {
	return BearerScheme + " " + token
}
