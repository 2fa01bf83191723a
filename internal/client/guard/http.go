package guard

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/reeldesk/internal/client/models"
)

type userKey struct{}

// UserFromContext returns the user admitted by Middleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey{}).(*models.User)
	return u, ok && u != nil
}

// Middleware gates next behind the guard. Denied requests are redirected
// with 302 Found; admitted ones carry the user in their context.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := g.Evaluate(r.Context())
		if !d.Allowed() {
			http.Redirect(w, r, d.RedirectTo, http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), userKey{}, d.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
