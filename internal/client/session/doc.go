// Package session owns the client's belief about who is logged in.
//
// A Store holds the current credential token and the identity decoded from
// it. The token lives in two places, a durable TokenSlot and memory, and the
// Store is the only code that writes either; both are updated under one lock
// so they never disagree.
//
// Lifecycle:
//
//	NewStore     -> Bootstrapping == true, anonymous
//	Bootstrap    -> restore from the slot (undecodable tokens are purged)
//	Establish    -> after a successful login/registration exchange
//	Clear        -> sign-out or an authorization failure seen by the gateway
//
// Token decoding is for display only. A token that decodes is not thereby
// valid; only the server accepting it on a live request is authoritative.
package session
