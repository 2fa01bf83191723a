package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/reeldesk/internal/client/client"
	"github.com/dmitrijs2005/reeldesk/internal/client/services"
)

// Login prompts for credentials and opens the dashboard on success.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Already logged in as %s.\n", a.auth.Session().User.DisplayName())
		return nil
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", user.DisplayName())
	return a.Open(ctx, "/dashboard")
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	a.path = "/"
	return nil
}

// WhoAmI asks the backend for the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.auth.GetCurrentUser(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.DisplayName(), user.Email)
	return nil
}

// Forgot walks through the security-question reset. Any failed step can be
// retried; an empty answer abandons the flow.
func (a *App) Forgot(ctx context.Context) error {
	flow := services.NewResetFlow(a.auth)
	defer flow.Reset()

	for flow.Step() != services.StepComplete {
		var err error
		switch flow.Step() {
		case services.StepIdle:
			var email string
			if email, err = GetSimpleText(a.reader, "Account email", a.out); err != nil || email == "" {
				return err
			}
			_, err = flow.SubmitEmail(ctx, email)

		case services.StepEmailSubmitted:
			var answer string
			if answer, err = GetSimpleText(a.reader, flow.Question(), a.out); err != nil || answer == "" {
				return err
			}
			err = flow.SubmitAnswer(ctx, answer)

		case services.StepQuestionVerified:
			var pw, confirm string
			if pw, err = GetPassword("New password", a.out); err != nil {
				return err
			}
			if confirm, err = GetPassword("Confirm new password", a.out); err != nil {
				return err
			}
			err = flow.SubmitNewPassword(ctx, pw, confirm)

		case services.StepPasswordReset:
			err = flow.Finish()
		}

		if err != nil {
			fmt.Fprintln(a.out, "Error:", err.Error())
			if !errors.Is(err, services.ErrValidation) && !errors.Is(err, services.ErrPasswordMismatch) &&
				!errors.Is(err, client.ErrRejected) {
				return err
			}
		}
	}

	fmt.Fprintln(a.out, "Password has been reset. You can log in with the new password.")
	return nil
}

// SetQuestion sets the account's recovery question.
func (a *App) SetQuestion(ctx context.Context) error {
	if !a.enter(ctx) {
		return a.redirect(ctx)
	}
	question, err := GetSimpleText(a.reader, "Security question", a.out)
	if err != nil {
		return err
	}
	answer, err := GetSimpleText(a.reader, "Answer", a.out)
	if err != nil {
		return err
	}
	current, err := GetPassword("Current password", a.out)
	if err != nil {
		return err
	}
	if err := a.auth.SetSecurityQuestion(ctx, question, answer, current); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Security question saved.")
	return nil
}

// ChangePassword updates the account password.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.enter(ctx) {
		return a.redirect(ctx)
	}
	current, err := GetPassword("Current password", a.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword("New password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword("Confirm new password", a.out)
	if err != nil {
		return err
	}
	if pw != confirm {
		return services.ErrPasswordMismatch
	}
	if err := a.auth.UpdatePassword(ctx, current, pw); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password updated.")
	return nil
}
