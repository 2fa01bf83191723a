package guard

import "time"

// DefaultRedirect is where denied access is sent.
const DefaultRedirect = "/"

// Option configures a Guard.
type Option func(*Guard)

// WithRedirect sets the redirect target for denied access.
func WithRedirect(to string) Option {
	return func(g *Guard) {
		if to != "" {
			g.redirectTo = to
		}
	}
}

// WithLoading toggles the loading indicator shown while verifying.
func WithLoading(show bool) Option {
	return func(g *Guard) { g.showLoading = show }
}

// WithRetries sets how often a transient verification failure is retried
// and the pause between attempts. Zero retries gives up on the first
// failure of any kind.
func WithRetries(n int, delay time.Duration) Option {
	return func(g *Guard) {
		if n < 0 {
			n = 0
		}
		g.retries = uint64(n)
		g.retryDelay = delay
	}
}

// OnLoading is called when verification starts, if loading is shown.
func OnLoading(fn func()) Option {
	return func(g *Guard) { g.onLoading = fn }
}

// OnRedirect is called with the redirect target when access is denied.
func OnRedirect(fn func(to string)) Option {
	return func(g *Guard) { g.onRedirect = fn }
}

// OnTransition observes every state change.
func OnTransition(fn func(from, to Status)) Option {
	return func(g *Guard) { g.onTransition = fn }
}
