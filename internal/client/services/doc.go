// Package services contains the application services of the reeldesk client.
//
// AuthService performs the network operations that change session truth and
// keeps the session store consistent with the backend. ResetFlow drives the
// security-question password recovery on top of it. ContentService reads the
// dashboard listings.
//
// Every call is bounded by the configured request timeout. Operations that
// mutate the session are serialized: at most one is in flight at a time, a
// second caller waits for the slot or gives up with ErrBusy when its context
// ends first.
package services
