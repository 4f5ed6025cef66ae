package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorClassification_IsRetryable(t *testing.T) {
	tests := []struct {
		name           string
		classification ErrorClassification
		want           bool
	}{
		{
			name:           "retryable classification",
			classification: ClassificationRetryable,
			want:           true,
		},
		{
			name:           "permanent classification",
			classification: ClassificationPermanent,
			want:           false,
		},
		{
			name:           "unknown classification",
			classification: ErrorClassification("SOMETIMES"),
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.classification.IsRetryable())
		})
	}
}

func TestGetDefaultClassification(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want ErrorClassification
	}{
		{code: CodeTimeout, want: ClassificationRetryable},
		{code: CodeNetwork, want: ClassificationRetryable},
		{code: CodeUnavailable, want: ClassificationRetryable},
		{code: CodeNotFound, want: ClassificationPermanent},
		{code: CodeConflict, want: ClassificationPermanent},
		{code: CodeDisposed, want: ClassificationPermanent},
		{code: CodeUnauthorized, want: ClassificationPermanent},
		{code: CodeFilesystem, want: ClassificationPermanent},
		{code: CodeInvalidConfig, want: ClassificationPermanent},
		{code: CodeExecutionFailed, want: ClassificationPermanent},
		{code: ErrorCode("NOT_A_CODE"), want: ClassificationPermanent},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			require.Equal(t, tt.want, getDefaultClassification(tt.code))
		})
	}
}
