package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorKindAndRecoverability(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		kind        ErrorKind
		recoverable bool
	}{
		{"repo not found", NewRepositoryNotFound("/tmp/x"), RepositoryNotFoundError, false},
		{"invalid token", NewInvalidToken(errors.New("401")), InvalidTokenError, true},
		{"network", NewNetworkError(errors.New("refused")), NetworkError, true},
		{"validation", NewValidationError("bad limit"), ValidationError, false},
		{"resource", NewResourceError("git timed out", errors.New("signal")), ResourceError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.recoverable, IsRecoverable(tt.err))
			assert.NotEmpty(t, UserMessage(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewNetworkError(cause)
	assert.ErrorIs(t, err, cause)
}

func TestAppErrorThroughWrapping(t *testing.T) {
	// Kind survives fmt.Errorf %w wrapping.
	err := fmt.Errorf("context: %w", NewValidationError("nope"))
	assert.Equal(t, ValidationError, KindOf(err))
	assert.True(t, errors.As(err, new(*AppError)))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, AnalysisFailedError, KindOf(errors.New("plain")))
	assert.False(t, IsRecoverable(errors.New("plain")))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestErrPayloadTooLargeDetection(t *testing.T) {
	wrapped := fmt.Errorf("endpoint rejected request size: %w", ErrPayloadTooLarge)
	require.ErrorIs(t, wrapped, ErrPayloadTooLarge)
}
