package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Open(ctx context.Context, path string) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Forgot(ctx context.Context) error
	SetQuestion(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Videos(ctx context.Context, category string) error
}

// shortcuts map REPL commands to dashboard screens.
var shortcuts = map[string]string{
	"home":      "/",
	"dashboard": "/dashboard",
	"faqs":      "/dashboard/faqs",
	"settings":  "/dashboard/settings",
}

// runREPL starts a simple read–eval–print loop for the admin client.
//
// It reads a line, parses the first token as the command and dispatches to
// methods on 'a'. Unknown commands are reported back to the user. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Commands:
//
//	help                    show available commands
//	open <path>             navigate to a screen, e.g. open /dashboard/faqs
//	home | dashboard        shortcuts for / and /dashboard
//	faqs | settings         shortcuts for the dashboard screens
//	reviews [video|text]    review listings
//	videos [category]       showcase capacity, or the reels of one category
//	login | logout          start or end a session
//	whoami                  ask the backend who is logged in
//	forgot                  reset a password with the security question
//	setquestion | passwd    account settings (logged in)
//	exit | quit             leave the program
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("rd %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: open, dashboard, reviews, faqs, videos, settings, whoami, setquestion, passwd, logout, exit")
			} else {
				printlnFn("Available commands: open, login, forgot, exit")
			}

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <path>")
				continue
			}
			cmdErr = a.Open(ctx, args[0])

		case "home", "dashboard", "faqs", "settings":
			cmdErr = a.Open(ctx, shortcuts[cmd])

		case "reviews":
			path := "/dashboard/reviews-with-video"
			if len(args) > 0 && args[0] == "text" {
				path = "/dashboard/reviews-without-video"
			}
			cmdErr = a.Open(ctx, path)

		case "videos":
			category := ""
			if len(args) > 0 {
				category = args[0]
			}
			cmdErr = a.Videos(ctx, category)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "forgot":
			cmdErr = a.Forgot(ctx)

		case "setquestion":
			cmdErr = a.SetQuestion(ctx)

		case "passwd":
			cmdErr = a.ChangePassword(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr.Error())
		}
	}
}
