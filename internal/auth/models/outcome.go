package models

import (
	dErrors "moortracker/pkg/domain-errors"
)

const fallbackFailureMessage = "authentication failed"

// Outcome is the uniform result of an auth operation.
// Exactly one of User/Error is meaningful, selected by Success.
// Sign-out succeeds without a user. SignedIn reports whether the operation
// itself established a session.
type Outcome struct {
	Success  bool
	User     *User
	SignedIn bool
	Error    string
	Code     dErrors.Code
}

// Succeeded builds a successful outcome.
func Succeeded(user *User) Outcome {
	return Outcome{Success: true, User: user}
}

// Failed builds a failed outcome. The message is never empty.
func Failed(err error) Outcome {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = fallbackFailureMessage
	}
	return Outcome{
		Success: false,
		Error:   msg,
		Code:    dErrors.CodeOf(err, dErrors.CodeInternal),
	}
}
