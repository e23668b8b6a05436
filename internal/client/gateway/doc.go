// Package gateway is the single path every authenticated API call takes.
//
// A Gateway attaches the held credential to outgoing requests and inspects
// every response once. The inspection produces one of three outcomes:
//
//   - KindOK: the response is handed back untouched.
//   - KindUnauthorized: the server rejected the credential. The session is
//     cleared, the user is sent to the entry route exactly once, and a
//     *Failure is returned so the caller still observes the rejection.
//   - KindRequestFailed: anything else. The normalized {message, statusCode}
//     payload is extracted when the body carries one, otherwise the raw
//     transport or status error is kept. The session is not touched.
//
// The same policy is available for gRPC through UnaryClientInterceptor.
package gateway
