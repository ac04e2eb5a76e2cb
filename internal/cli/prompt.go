package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"

	"moortracker/internal/auth/models"
)

// Prompter asks the user for values missing from the command line.
// Fields already filled are left untouched.
type Prompter interface {
	SignIn(ctx context.Context, form *models.SignInForm) error
	Register(ctx context.Context, form *models.RegistrationForm) error
}

// HuhPrompter prompts on the terminal.
type HuhPrompter struct{}

func (HuhPrompter) SignIn(ctx context.Context, form *models.SignInForm) error {
	var fields []huh.Field
	if form.Email == "" {
		fields = append(fields, emailInput(&form.Email))
	}
	if form.Password == "" {
		fields = append(fields, passwordInput("Password", &form.Password))
	}
	return run(ctx, "Sign in", fields)
}

func (HuhPrompter) Register(ctx context.Context, form *models.RegistrationForm) error {
	var fields []huh.Field
	if form.Email == "" {
		fields = append(fields, emailInput(&form.Email))
	}
	if form.Password == "" {
		fields = append(fields, passwordInput("Password", &form.Password))
	}
	if form.ConfirmPassword == "" {
		fields = append(fields, passwordInput("Confirm password", &form.ConfirmPassword))
	}
	return run(ctx, "Create account", fields)
}

func emailInput(value *string) huh.Field {
	return huh.NewInput().
		Title("Email").
		Placeholder("you@example.com").
		Value(value)
}

func passwordInput(title string, value *string) huh.Field {
	return huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(value)
}

func run(ctx context.Context, title string, fields []huh.Field) error {
	if len(fields) == 0 {
		return nil
	}
	err := huh.NewForm(
		huh.NewGroup(fields...).Title(title),
	).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrFailed
	}
	return err
}
