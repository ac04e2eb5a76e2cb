package string

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "confirm_password", ToSnakeCase("ConfirmPassword"))
	assert.Equal(t, "email", ToSnakeCase("Email"))
	assert.Equal(t, "api_url", ToSnakeCase("ApiURL"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.com "))
}

func TestTrimStrings(t *testing.T) {
	a, b := " x ", "y\n"
	TrimStrings(&a, &b)
	assert.Equal(t, "x", a)
	assert.Equal(t, "y", b)
}
