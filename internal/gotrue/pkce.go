package gotrue

import (
	"golang.org/x/oauth2"
)

const codeChallengeMethod = "s256"

// newPKCE returns a fresh code verifier and its S256 challenge.
func newPKCE() (verifier, challenge string) {
	verifier = oauth2.GenerateVerifier()
	return verifier, oauth2.S256ChallengeFromVerifier(verifier)
}

func (c *Client) verifierKey() string {
	return c.storageKey + "-code-verifier"
}
