package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/reeldesk/internal/client/models"
)

type screen struct {
	title     string
	protected bool
	render    func(a *App, ctx context.Context) error
}

var screens map[string]screen

// Screens render through methods that navigate back into this table.
func init() {
	screens = map[string]screen{
		"/":      {title: "Home", render: (*App).renderHome},
		"/login": {title: "Login", render: (*App).renderLogin},

		"/dashboard":                       {title: "Dashboard", protected: true, render: (*App).renderDashboard},
		"/dashboard/reviews-with-video":    {title: "Reviews with video", protected: true, render: (*App).renderVideoReviews},
		"/dashboard/reviews-without-video": {title: "Reviews without video", protected: true, render: (*App).renderTextReviews},
		"/dashboard/faqs":                  {title: "FAQs", protected: true, render: (*App).renderFAQs},
		"/dashboard/settings":              {title: "Settings", protected: true, render: (*App).renderSettings},
		"/dashboard/video":                 {title: "Video showcase", protected: true, render: (*App).renderVideo},
	}
}

// dashboardCards is the order of the dashboard menu.
var dashboardCards = []string{
	"/dashboard/reviews-with-video",
	"/dashboard/reviews-without-video",
	"/dashboard/faqs",
	"/dashboard/settings",
	"/dashboard/video",
}

func cleanPath(p string) string {
	return "/" + strings.Trim(strings.TrimSpace(p), "/")
}

// Open navigates to path. Protected screens go through the guard; a denied
// visit lands on the guard's redirect target instead.
func (a *App) Open(ctx context.Context, path string) error {
	path = cleanPath(path)
	s, ok := screens[path]
	if !ok {
		fmt.Fprintf(a.out, "404: no screen at %s\n", path)
		return nil
	}
	if s.protected && !a.enter(ctx) {
		return a.redirect(ctx)
	}
	a.path = path
	fmt.Fprintf(a.out, "== %s ==\n", s.title)
	return s.render(a, ctx)
}

// enter runs the guard for a protected screen.
func (a *App) enter(ctx context.Context) bool {
	d := a.guard.Evaluate(ctx)
	if d.Allowed() {
		return true
	}
	if d.Err != nil {
		fmt.Fprintf(a.out, "Your session could not be confirmed: %s\n", d.Err.Error())
	} else {
		fmt.Fprintln(a.out, "Please log in first.")
	}
	return false
}

func (a *App) redirect(ctx context.Context) error {
	to := cleanPath(a.guard.RedirectTo())
	s, ok := screens[to]
	if !ok || s.protected {
		a.path = "/"
		return nil
	}
	a.path = to
	fmt.Fprintf(a.out, "== %s ==\n", s.title)
	return s.render(a, ctx)
}

func (a *App) renderHome(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Type 'dashboard' to manage the site content.")
	} else {
		fmt.Fprintln(a.out, "Type 'login' to sign in, or 'forgot' to recover your password.")
	}
	return nil
}

func (a *App) renderLogin(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Already logged in as %s.\n", a.auth.Session().User.DisplayName())
		return nil
	}
	return a.Login(ctx)
}

func (a *App) renderDashboard(ctx context.Context) error {
	fmt.Fprintf(a.out, "Welcome, %s\n", a.auth.Session().User.DisplayName())
	for _, p := range dashboardCards {
		fmt.Fprintf(a.out, "  %-36s %s\n", p, screens[p].title)
	}
	return nil
}

func (a *App) printReviews(reviews []models.Review) {
	if len(reviews) == 0 {
		fmt.Fprintln(a.out, "No reviews yet.")
		return
	}
	for _, r := range reviews {
		line := r.Name
		if r.Position != "" {
			line += ", " + r.Position
		}
		switch {
		case r.VideoURL != "":
			line += " | " + r.VideoURL
		case r.Quote != "":
			line += fmt.Sprintf(" | %q", r.Quote)
		}
		fmt.Fprintln(a.out, "- "+line)
	}
}

func (a *App) renderVideoReviews(ctx context.Context) error {
	reviews, err := a.content.ReviewsWithVideo(ctx)
	if err != nil {
		return err
	}
	a.printReviews(reviews)
	return nil
}

func (a *App) renderTextReviews(ctx context.Context) error {
	reviews, err := a.content.ReviewsWithoutVideo(ctx)
	if err != nil {
		return err
	}
	a.printReviews(reviews)
	return nil
}

func (a *App) renderFAQs(ctx context.Context) error {
	faqs, err := a.content.FAQs(ctx)
	if err != nil {
		return err
	}
	if len(faqs) == 0 {
		fmt.Fprintln(a.out, "No FAQs yet.")
	}
	for i, f := range faqs {
		fmt.Fprintf(a.out, "%d. %s\n   %s\n", i+1, f.Question, f.Answer)
	}
	return nil
}

func (a *App) renderSettings(ctx context.Context) error {
	u := a.auth.Session().User
	fmt.Fprintf(a.out, "Name:  %s\nEmail: %s\n", u.Name, u.Email)
	if u.HasSecurityQuestion() {
		fmt.Fprintf(a.out, "Security question: %s\n", u.SecurityQuestion.Question)
	} else {
		fmt.Fprintln(a.out, "Security question: not set (type 'setquestion' to add one)")
	}
	fmt.Fprintln(a.out, "Type 'passwd' to change your password.")
	return nil
}

func (a *App) renderVideo(ctx context.Context) error {
	overview, err := a.content.CapacityOverview(ctx)
	if err != nil {
		return err
	}
	for _, c := range overview {
		mark := ""
		if !c.CanAdd {
			mark = " (full)"
		}
		fmt.Fprintf(a.out, "  %-14s %s%s\n", c.Category.Value, c, mark)
	}
	fmt.Fprintln(a.out, "Type 'videos <category>' to list a category.")
	return nil
}

// Videos shows the showcase overview, or the reels of one category.
func (a *App) Videos(ctx context.Context, category string) error {
	if category == "" {
		return a.Open(ctx, "/dashboard/video")
	}
	if !a.enter(ctx) {
		return a.redirect(ctx)
	}
	a.path = "/dashboard/video"
	reels, err := a.content.VideoReels(ctx, category)
	if err != nil {
		return err
	}
	capacity, err := a.content.Capacity(ctx, category)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, capacity.String())
	for _, r := range reels {
		fmt.Fprintf(a.out, "- %s | %s\n", r.Title, r.VideoURL)
	}
	return nil
}
