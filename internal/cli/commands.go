package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"moortracker/internal/auth/models"
	"moortracker/internal/auth/session"
	dErrors "moortracker/pkg/domain-errors"
	s "moortracker/pkg/string"
	"moortracker/pkg/validation"
)

func newSignInCmd(app *App) *cobra.Command {
	var form models.SignInForm
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in with email and password",
		Long: `Sign in with email and password. Missing values are prompted for.

Examples:
  moorauth signin --email you@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if form.Email == "" || form.Password == "" {
				if err := app.deps.Prompter.SignIn(cmd.Context(), &form); err != nil {
					return err
				}
			}
			form.Email = s.NormalizeEmail(form.Email)
			if form.Email == "" || form.Password == "" {
				return report(cmd, "Error", dErrors.New(dErrors.CodeValidation, "Please fill in all fields"))
			}
			if err := validation.Validate(&form); err != nil {
				return report(cmd, "Error", err)
			}

			out := app.service.SignIn(cmd.Context(), form.Email, form.Password)
			if !out.Success {
				return reportOutcome(cmd, "Login Failed", out)
			}
			printSuccess(cmd, fmt.Sprintf("Signed in as %s", out.User.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func newSignUpCmd(app *App) *cobra.Command {
	var form models.RegistrationForm
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Long: `Create an account. The identity service may ask you to confirm your
email address before you can sign in.

Examples:
  moorauth signup --email you@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if form.Email == "" || form.Password == "" || form.ConfirmPassword == "" {
				if err := app.deps.Prompter.Register(cmd.Context(), &form); err != nil {
					return err
				}
			}
			form.Email = s.NormalizeEmail(form.Email)
			if err := validateRegistration(&form); err != nil {
				return report(cmd, "Error", err)
			}

			out := app.service.SignUp(cmd.Context(), form.Email, form.Password)
			if !out.Success {
				return reportOutcome(cmd, "Registration Failed", out)
			}
			if out.SignedIn {
				printSuccess(cmd, fmt.Sprintf("Account created. Signed in as %s", out.User.Email))
				return nil
			}
			printSuccess(cmd, "Account created! Please check your email to confirm your account.")
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "new password (prompted when omitted)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "repeat the new password")
	return cmd
}

// validateRegistration checks the form in the order the user fixes mistakes:
// completeness, matching passwords, then format rules.
func validateRegistration(form *models.RegistrationForm) error {
	if form.Email == "" || form.Password == "" || form.ConfirmPassword == "" {
		return dErrors.New(dErrors.CodeValidation, "Please fill in all fields")
	}
	if form.Password != form.ConfirmPassword {
		return dErrors.New(dErrors.CodeValidation, "Passwords do not match")
	}
	if len(form.Password) < 6 {
		return dErrors.New(dErrors.CodeValidation, "Password must be at least 6 characters")
	}
	return validation.Validate(form)
}

func newSignOutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := app.service.SignOut(cmd.Context())
			if !out.Success {
				return reportOutcome(cmd, "Sign Out Failed", out)
			}
			printSuccess(cmd, "Signed out")
			return nil
		},
	}
}

func newGoogleCmd(app *App) *cobra.Command {
	var creds models.IDTokenCredentials
	cmd := &cobra.Command{
		Use:   "google",
		Short: "Sign in with Google",
		Long: `Sign in with Google. Without flags a browser window opens and the
redirect is caught on a local address. With --id-token an identity token
obtained elsewhere is exchanged directly.

Examples:
  moorauth google
  moorauth google --id-token "$GOOGLE_ID_TOKEN"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s.TrimStrings(&creds.Token, &creds.AccessToken, &creds.Nonce)
			var out models.Outcome
			if creds.Token != "" {
				out = app.service.SignInWithIDToken(cmd.Context(), creds)
			} else {
				printInfo(cmd, "Opening your browser to continue with Google...")
				out = app.service.SignInWithGoogle(cmd.Context())
			}
			if !out.Success {
				return reportOutcome(cmd, "Google login failed", out)
			}
			printSuccess(cmd, fmt.Sprintf("Signed in as %s", out.User.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.Token, "id-token", "", "provider identity token to exchange")
	cmd.Flags().StringVar(&creds.AccessToken, "access-token", "", "provider access token sent with --id-token")
	cmd.Flags().StringVar(&creds.Nonce, "nonce", "", "nonce the identity token was issued for")
	return cmd
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := session.FromContext(cmd.Context()).State()
			printState(cmd, st)
			if st.Error != "" {
				return ErrFailed
			}
			return nil
		},
	}
}

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print session changes until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := session.FromContext(cmd.Context())
			printState(cmd, store.State())
			unsubscribe := store.Subscribe(func(st session.State) {
				printState(cmd, st)
			})
			defer unsubscribe()
			<-cmd.Context().Done()
			return nil
		},
	}
}
