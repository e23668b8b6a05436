// Package cli provides the interactive assocportal command-line client.
//
// It wires configuration, the local credential store, the authorizing
// gateway and the typed API client behind a REPL. Typical flow: restore the
// previous session, prompt for credentials when there is none, start a
// background connectivity watcher, and execute user commands.
//
// The App also acts as the gateway's navigator. When the server rejects the
// credential the gateway clears the session and routes to the entry route;
// the REPL notices the pending route before the next prompt and asks the
// user to sign in again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Router, StartOnlineStatusWatcher and runREPL for details.
package cli
