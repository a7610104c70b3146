package cli

import (
	"context"
	"log"
)

func (a *App) Login(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Username")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword("Password")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	challenge, err := GetSimpleText(a.reader, "Challenge token (optional)")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.api.Login(ctx, username, password, challenge); err != nil {
		log.Printf("Login failed: %v", err)
		return err
	}

	a.loggedIn = true
	printlnFn("Logged in.")
	return nil
}
