// Package devapi is an in-memory stand-in for the reeldesk backend.
//
// It serves the auth and content endpoints the admin client talks to, with
// the same JSON envelope, so the client can be run and tested without the
// real API. Nothing is persisted; every start is a fresh seed.
package devapi
