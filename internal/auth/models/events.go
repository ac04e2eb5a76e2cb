package models

// AuthEvent names a change notification pushed by the identity client.
type AuthEvent string

const (
	EventInitialSession AuthEvent = "INITIAL_SESSION"
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	EventUserUpdated    AuthEvent = "USER_UPDATED"
)

func (e AuthEvent) String() string {
	return string(e)
}

// AuthStateListener receives change notifications. Session is nil when signed out.
type AuthStateListener func(event AuthEvent, session *Session)
