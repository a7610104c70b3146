package cli

import (
	"context"
	"log"
)

func (a *App) Register(ctx context.Context) error {

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

	if err := a.api.Register(ctx, username, password); err != nil {
		log.Printf("Register failed: %v", err)
		return err
	}

	printlnFn("Registered. You can now log in.")
	return nil
}
