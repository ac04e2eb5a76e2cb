package domain

// GrantType represents a token grant accepted by the identity service's token endpoint.
type GrantType string

const (
	GrantTypePassword     GrantType = "password"
	GrantTypePKCE         GrantType = "pkce"
	GrantTypeIDToken      GrantType = "id_token"
	GrantTypeRefreshToken GrantType = "refresh_token"
)

// IsValid returns true if the grant type is a known valid value.
func (g GrantType) IsValid() bool {
	switch g {
	case GrantTypePassword, GrantTypePKCE, GrantTypeIDToken, GrantTypeRefreshToken:
		return true
	}
	return false
}

// String returns the string representation of the grant type.
func (g GrantType) String() string {
	return string(g)
}

// Provider names an external OAuth identity provider.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderApple  Provider = "apple"
)

func (p Provider) String() string {
	return string(p)
}
