package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetPasswordTemplate(t *testing.T) {
	data := struct {
		Token    string
		ResetURL string
	}{
		Token:    "deadbeef",
		ResetURL: "http://localhost:3000/reset-password?token=deadbeef",
	}

	for _, name := range []string{"subject", "plainBody", "htmlBody"} {
		var buf bytes.Buffer
		require.NoError(t, resetPasswordTmpl.ExecuteTemplate(&buf, name, data), name)
		assert.NotEmpty(t, buf.String(), name)
	}

	var body bytes.Buffer
	require.NoError(t, resetPasswordTmpl.ExecuteTemplate(&body, "plainBody", data))
	assert.Contains(t, body.String(), data.ResetURL)
}
