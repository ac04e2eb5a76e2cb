// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "moortracker/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a ListenerID where a UserID is expected.
type (
	UserID     uuid.UUID
	ListenerID uuid.UUID
)

// ParseUserID parses identity-service user ids at trust boundaries.
func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

// NewListenerID returns a fresh id for a change-notification listener.
func NewListenerID() ListenerID {
	return ListenerID(uuid.New())
}

func (id UserID) String() string     { return uuid.UUID(id).String() }
func (id ListenerID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id ListenerID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets UserID travel in JSON and YAML documents as its canonical string.
func (id UserID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses the canonical string form.
func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return id, nil
}
