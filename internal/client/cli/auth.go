package cli

import (
	"context"
	"log"
	"os"

	"github.com/mkraev/lockbox/internal/server/auth"
)

// Register creates an account. The password is scored locally and weak
// choices get a breakdown of the failed checks; "gen" asks for a generated
// one instead.
func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	var password string
	for {
		password, err = GetPassword(os.Stdout, "Enter password (or 'gen' for a generated one)")
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}

		if password == "gen" {
			password, err = auth.GeneratePassword(16)
			if err != nil {
				log.Printf("error: %v", err)
				return err
			}
			printlnFn("Generated password:", password)
			break
		}

		strength := auth.PasswordStrength(password)
		if strength.IsStrong {
			break
		}
		printlnFn("Password is weak:")
		printStrengthChecks(strength.Checks)
	}

	if err := a.client.Register(ctx, email, password); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Registration successful")
	return nil
}

// Login authenticates against the server and persists the session.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout, "Enter password")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.client.Login(ctx, email, password); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	return nil
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		log.Printf("Logout unsuccessful: %s", err.Error())
		return err
	}
	log.Printf("Logged out")
	return nil
}

func printStrengthChecks(c auth.StrengthChecks) {
	for _, check := range []struct {
		ok   bool
		name string
	}{
		{c.Length, "at least 8 characters"},
		{c.Uppercase, "an uppercase letter"},
		{c.Lowercase, "a lowercase letter"},
		{c.Numbers, "a digit"},
		{c.Special, "a special character"},
	} {
		mark := "ok"
		if !check.ok {
			mark = "missing"
		}
		printlnFn("  -", check.name+":", mark)
	}
}
