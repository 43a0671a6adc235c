package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgaraym/cardtrack/internal/common"
)

// Login prompts for an access code and, on success, stores the session
// token for subsequent commands.
func (a *App) Login(ctx context.Context) error {
	code, err := getPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}

	token, err := a.access.Login(ctx, string(code))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			fmt.Fprintln(a.out, "Wrong access code.")
		} else {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
		return err
	}

	a.sessionToken = token
	fmt.Fprintln(a.out, "Unlocked.")
	return nil
}

// Logout drops the current session token.
func (a *App) Logout(ctx context.Context) error {
	a.sessionToken = ""
	fmt.Fprintln(a.out, "Locked.")
	return nil
}

// ensureSession checks the stored session token and, when it is missing
// or no longer valid, runs an interactive login. Every protected command
// calls this first.
func (a *App) ensureSession(ctx context.Context) error {
	if a.sessionToken != "" {
		err := a.access.CheckSession(a.sessionToken)
		if err == nil {
			return nil
		}
		if errors.Is(err, common.ErrTokenExpired) {
			fmt.Fprintln(a.out, "Session expired, please log in again.")
		}
		a.sessionToken = ""
	}
	return a.Login(ctx)
}
