package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"moortracker/internal/auth/models"
	"moortracker/internal/auth/session"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)
)

func printSuccess(cmd *cobra.Command, msg string) {
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ "+msg))
}

func printInfo(cmd *cobra.Command, msg string) {
	fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render(msg))
}

func printFailure(cmd *cobra.Command, title, msg string) {
	fmt.Fprintln(cmd.ErrOrStderr(), failureStyle.Render("✗ "+title+": ")+msg)
}

// report prints err and returns ErrFailed.
func report(cmd *cobra.Command, title string, err error) error {
	printFailure(cmd, title, err.Error())
	return ErrFailed
}

func reportOutcome(cmd *cobra.Command, title string, out models.Outcome) error {
	printFailure(cmd, title, out.Error)
	return ErrFailed
}

func printState(cmd *cobra.Command, st session.State) {
	w := cmd.OutOrStdout()
	switch {
	case st.Loading:
		fmt.Fprintln(w, infoStyle.Render("Checking session..."))
	case st.Error != "":
		printFailure(cmd, "Session unavailable", st.Error)
	case st.User == nil:
		fmt.Fprintln(w, infoStyle.Render("Not signed in"))
	default:
		u := st.User
		fmt.Fprintf(w, "%s %s\n", keyStyle.Render("Email:   "), u.Email)
		fmt.Fprintf(w, "%s %s\n", keyStyle.Render("User ID: "), u.ID.String())
		if p := u.Provider(); p != "" {
			fmt.Fprintf(w, "%s %s\n", keyStyle.Render("Provider:"), p)
		}
		confirmed := "no"
		if u.IsConfirmed() {
			confirmed = "yes"
		}
		fmt.Fprintf(w, "%s %s\n", keyStyle.Render("Verified:"), confirmed)
	}
}
