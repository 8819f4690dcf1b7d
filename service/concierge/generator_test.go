package concierge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsRateLimited(t *testing.T) {
	exhausted, ok := apierror.FromError(status.Error(codes.ResourceExhausted, "out of tokens"))
	require.True(t, ok)
	unavailable, ok := apierror.FromError(status.Error(codes.Unavailable, "try later"))
	require.True(t, ok)

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"local budget", ErrRateLimited, true},
		{"wrapped local budget", fmt.Errorf("send: %w", ErrRateLimited), true},
		{"googleapi 429", &googleapi.Error{Code: 429}, true},
		{"googleapi 500", &googleapi.Error{Code: 500, Message: "boom"}, false},
		{"grpc resource exhausted", exhausted, true},
		{"grpc unavailable", unavailable, false},
		{"quota text", errors.New("Quota exceeded for model"), true},
		{"plain", errors.New("dial tcp: timeout"), false},
		{"not configured", ErrNotConfigured, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimited(tt.err))
		})
	}
}
