// Command createuser creates a single user account against the configured
// database, for bootstrapping the first account outside the HTTP surface.
//
// Usage:
//
//	createuser -email user@example.com [-password secret]
//
// When -password is omitted the password is read from the terminal without echo.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	sqliteadapter "github.com/ewallace/notekeep/internal/adapter/driven/sqlite"
	"github.com/ewallace/notekeep/internal/application"
	"github.com/ewallace/notekeep/internal/config"
	"github.com/ewallace/notekeep/internal/domain/port/driven"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	email := flag.String("email", "", "email for the new user (required)")
	password := flag.String("password", "", "password for the new user (prompted when omitted)")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		return errors.New("-email is required")
	}

	pw := *password
	if pw == "" {
		var err error
		pw, err = promptPassword()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	authSvc, err := application.NewAuthService(
		sqliteadapter.NewUserRepo(db), cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL, slog.Default(),
	)
	if err != nil {
		return err
	}

	user, err := authSvc.CreateUser(context.Background(), *email, pw)
	if err != nil {
		if errors.Is(err, driven.ErrDuplicateEmail) {
			return fmt.Errorf("email %s already registered", *email)
		}
		return err
	}

	fmt.Printf("user created: %d (%s)\n", user.ID, user.Email)
	return nil
}

// promptPassword reads the password twice from the terminal without echo and
// requires both entries to match.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Enter password: ")
	first, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if len(first) == 0 {
		return "", errors.New("password must not be empty")
	}

	return string(first), nil
}
