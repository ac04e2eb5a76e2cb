package gotrue

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	dErrors "moortracker/pkg/domain-errors"
)

// errorBody covers both error shapes the service emits:
// {"code","error_code","msg"} and the OAuth style {"error","error_description"}.
type errorBody struct {
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

var errorCodes = map[string]dErrors.Code{
	"invalid_credentials":          dErrors.CodeInvalidGrant,
	"invalid_grant":                dErrors.CodeInvalidGrant,
	"bad_code_verifier":            dErrors.CodeInvalidGrant,
	"flow_state_not_found":         dErrors.CodeInvalidGrant,
	"flow_state_expired":           dErrors.CodeInvalidGrant,
	"refresh_token_not_found":      dErrors.CodeInvalidGrant,
	"refresh_token_already_used":   dErrors.CodeInvalidGrant,
	"user_already_exists":          dErrors.CodeValidation,
	"email_exists":                 dErrors.CodeValidation,
	"weak_password":                dErrors.CodeValidation,
	"validation_failed":            dErrors.CodeValidation,
	"email_address_invalid":        dErrors.CodeValidation,
	"over_request_rate_limit":      dErrors.CodeRateLimited,
	"over_email_send_rate_limit":   dErrors.CodeRateLimited,
	"session_not_found":            dErrors.CodeUnauthorized,
	"bad_jwt":                      dErrors.CodeUnauthorized,
	"no_authorization":             dErrors.CodeUnauthorized,
	"email_not_confirmed":          dErrors.CodeAccessDenied,
	"provider_disabled":            dErrors.CodeAccessDenied,
	"signup_disabled":              dErrors.CodeAccessDenied,
	"access_denied":                dErrors.CodeAccessDenied,
	"invalid_request":              dErrors.CodeInvalidRequest,
	"unsupported_grant_type":       dErrors.CodeInvalidRequest,
	"request_timeout":              dErrors.CodeTimeout,
	"unexpected_failure":           dErrors.CodeRemote,
	"identity_already_exists":      dErrors.CodeValidation,
	"user_not_found":               dErrors.CodeUnauthorized,
	"otp_expired":                  dErrors.CodeInvalidGrant,
	"same_password":                dErrors.CodeValidation,
	"bad_oauth_callback":           dErrors.CodeMalformedRedirect,
	"bad_oauth_state":              dErrors.CodeMalformedRedirect,
	"oauth_provider_not_supported": dErrors.CodeAccessDenied,
}

// responseError converts a non-2xx response into a domain error with the
// service's message. The machine-readable error code wins over the status.
func responseError(status int, raw []byte) error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)

	code, ok := errorCodes[body.ErrorCode]
	if !ok {
		code, ok = errorCodes[body.Error]
	}
	if !ok {
		code = statusCode(status)
	}

	msg := firstNonEmpty(body.Msg, body.Message, body.ErrorDescription, body.Error, http.StatusText(status))
	if msg == "" {
		msg = "identity service request failed"
	}
	return &dErrors.Error{Code: code, Message: msg}
}

func statusCode(status int) dErrors.Code {
	switch {
	case status == http.StatusBadRequest:
		return dErrors.CodeBadRequest
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return dErrors.CodeUnauthorized
	case status == http.StatusUnprocessableEntity:
		return dErrors.CodeValidation
	case status == http.StatusTooManyRequests:
		return dErrors.CodeRateLimited
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return dErrors.CodeTimeout
	default:
		return dErrors.CodeRemote
	}
}

// transportError classifies failures that happened before a response arrived.
func transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeCancelled, "request cancelled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request timeout")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request timeout")
	}
	return dErrors.Wrap(err, dErrors.CodeRemote, "network request failed")
}

// isSessionGone reports whether the service no longer recognizes the session.
func isSessionGone(err error) bool {
	return dErrors.HasCode(err, dErrors.CodeUnauthorized) || dErrors.HasCode(err, dErrors.CodeInvalidGrant)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
