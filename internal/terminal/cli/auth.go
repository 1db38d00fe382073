package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the operator for credentials and authenticates against the
// central service. The session snapshot is cached locally by the auth
// service, so a successful login survives restarts and outages.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	session, err := a.auth.Login(ctx, userName, string(password))
	if err != nil {
		log.Printf("Login unsuccessfull: %s", err.Error())
		return err
	}

	a.userName = session.Username
	a.setMode(ModeOnline)
	fmt.Printf("Welcome %s %s (%s)\n", session.Name, session.Surname, session.HammamName)

	if err := a.catalog.Refresh(ctx); err != nil {
		log.Printf("Catalog refresh failed, selling from local snapshot: %s", err.Error())
	}
	return nil
}

// Logout revokes the session (best effort while offline) and clears the
// local cache.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	return nil
}

// restoreSession picks up a cached session after a restart, so an operator
// who logged in yesterday keeps selling without the network.
func (a *App) restoreSession(ctx context.Context) {
	session, err := a.auth.Current(ctx)
	if err != nil {
		return
	}
	a.userName = session.Username
	log.Printf("Restored session for %s (%s)", session.Username, session.HammamName)
}
