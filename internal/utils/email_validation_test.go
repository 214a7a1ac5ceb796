package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidEmailSyntax(t *testing.T) {
	valid := []string{"jane@example.com", "j.doe+credit@sub.example.co.uk"}
	invalid := []string{
		"",
		"plainaddress",
		"@nouser.com",
		"Jane <jane@example.com>",
		"user@",
	}

	for _, e := range valid {
		require.True(t, isValidEmailSyntax(e), e)
	}
	for _, e := range invalid {
		require.False(t, isValidEmailSyntax(e), e)
	}
}

func TestValidateEmailRejectsSyntaxWithoutLookup(t *testing.T) {
	ok, err := ValidateEmail(context.Background(), "", "not an email", true)
	require.NoError(t, err)
	require.False(t, ok)
}
