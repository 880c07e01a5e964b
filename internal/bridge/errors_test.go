package bridge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestionError_EncodesKey(t *testing.T) {
	err := Suggest("suggestion_check_url", errors.New("dial tcp: connection refused"))

	require.Equal(t, `{"suggestion":"suggestion_check_url"}`, err.Error())
}

func TestSuggestionError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Suggest("suggestion_check_url", cause)

	require.ErrorIs(t, err, cause)
}

func TestParseFault(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		kind       FaultKind
		suggestion string
	}{
		{
			name:       "suggestion json",
			message:    `{"suggestion":"suggestion_check_credentials"}`,
			kind:       FaultStructured,
			suggestion: "suggestion_check_credentials",
		},
		{
			name:    "plain text",
			message: "connection refused",
			kind:    FaultRaw,
		},
		{
			name:    "json without suggestion field",
			message: `{"error":"nope"}`,
			kind:    FaultRaw,
		},
		{
			name:    "json with empty suggestion",
			message: `{"suggestion":""}`,
			kind:    FaultRaw,
		},
		{
			name:    "malformed json stays raw",
			message: `{"suggestion":`,
			kind:    FaultRaw,
		},
		{
			name:    "empty message",
			message: "",
			kind:    FaultRaw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fault := ParseFault(tt.message)
			require.Equal(t, tt.kind, fault.Kind)
			require.Equal(t, tt.message, fault.Message)
			require.Equal(t, tt.suggestion, fault.Suggestion)
		})
	}
}

func TestFaultFrom(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		fault := FaultFrom(nil)
		require.Equal(t, Fault{}, fault)
	})

	t.Run("suggestion error round trip", func(t *testing.T) {
		err := Suggest("suggestion_file_missing", errors.New("404"))
		fault := FaultFrom(err)
		require.Equal(t, FaultStructured, fault.Kind)
		require.Equal(t, "suggestion_file_missing", fault.Suggestion)
	})

	t.Run("wrapped plain error", func(t *testing.T) {
		err := fmt.Errorf("upload failed: %w", errors.New("disk full"))
		fault := FaultFrom(err)
		require.Equal(t, FaultRaw, fault.Kind)
		require.Equal(t, "upload failed: disk full", fault.Message)
	})
}
