package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemakit/schemakit/internal/errors"
)

func TestRunCheck(t *testing.T) {
	out, err := runCheck("struct<a:integer,b:map<string,double>>")
	require.NoError(t, err)
	assert.Equal(t, "OK: struct<a:integer,b:map<string,double>>", out)
}

func TestRunCheckMissingArgument(t *testing.T) {
	_, err := runCheck("")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeArgument))
}

func TestRunCheckInvalidDescriptor(t *testing.T) {
	tests := []string{
		"integr",
		"struct<a:integer,>",
		"map<integer,double>",
	}

	for _, descriptor := range tests {
		t.Run(descriptor, func(t *testing.T) {
			_, err := runCheck(descriptor)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
		})
	}
}
