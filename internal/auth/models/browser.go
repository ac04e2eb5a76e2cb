package models

// BrowserResultType mirrors the outcome kinds of an external auth browser session.
type BrowserResultType string

const (
	BrowserResultSuccess BrowserResultType = "success"
	BrowserResultCancel  BrowserResultType = "cancel"
	BrowserResultDismiss BrowserResultType = "dismiss"
)

// BrowserResult is returned when the external browser session ends.
// URL is the full callback URL and is only set on success.
type BrowserResult struct {
	Type BrowserResultType
	URL  string
}
