// Package cli provides the interactive reeldesk admin client.
//
// It wires configuration, the local state database, the backend client and
// the auth services into a REPL that navigates between screens the way the
// web dashboard does. Every /dashboard screen is behind the route guard: a
// session restored from disk is confirmed with the backend before anything
// protected is shown.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
