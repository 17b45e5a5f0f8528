package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrFetch,
		ErrDecode,
		ErrRender,
		ErrBalance,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .lbdash.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "fetch error",
			code:       ErrFetch,
			message:    "Stats endpoint unreachable",
			suggestion: "Check that the balancer is running",
		},
		{
			name:       "decode error",
			code:       ErrDecode,
			message:    "Stats body is not valid JSON",
			suggestion: "",
		},
		{
			name:       "render error",
			code:       ErrRender,
			message:    "Table view not attached",
			suggestion: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name:          "basic error formatting",
			err:           New(ErrConfig, "Invalid configuration", "Check .lbdash.yaml syntax"),
			expectedParts: []string{"Invalid configuration", "Check .lbdash.yaml syntax"},
		},
		{
			name:          "error with failure symbol",
			err:           New(ErrFetch, "Connection refused", "Try again"),
			expectedParts: []string{"✗", "Connection refused"},
		},
		{
			name:          "error without suggestion",
			err:           New(ErrRender, "Chart area missing", ""),
			expectedParts: []string{"Chart area missing"},
			notExpected:   []string{"\n\n  \n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(cause, "Stats fetch failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrFetch, wrapped.Code, "Wrap should default to ErrFetch code")
	assert.Equal(t, "Stats fetch failed", wrapped.Message)
	assert.Equal(t, cause, wrapped.Cause)
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("unexpected EOF")
	wrapped := WrapWithCode(cause, ErrDecode, "Malformed stats body", "Check the endpoint output")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrDecode, wrapped.Code)
	assert.Equal(t, "Check the endpoint output", wrapped.Suggestion)
	assert.Contains(t, wrapped.Error(), "unexpected EOF")
	assert.True(t, errors.Is(wrapped, cause))
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrFetch))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))

	// Through fmt wrapping
	assert.True(t, IsCode(fmt.Errorf("cycle 3: %w", err), ErrConfig))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrDecode, CodeOf(New(ErrDecode, "x", "")))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("dial tcp 127.0.0.1:5000: connect: connection refused"),
		ErrFetch,
		"Cannot reach the stats endpoint",
		"Run: lbdash balance",
	)

	lines := strings.Split(err.Error(), "\n")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "✗"))
	assert.Contains(t, lines[0], "Cannot reach the stats endpoint")
}
