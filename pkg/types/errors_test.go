package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKindsSurviveWrapping(t *testing.T) {
	cause := errors.New("execution reverted")

	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"invalid input", InvalidInput("amount", "must be positive"), KindInvalidInput},
		{"codec", &CodecError{Method: "getAmountsOut", Err: cause}, KindCodecError},
		{"upstream", &UpstreamQuoteUnavailableError{Tiers: []FeeTier{FeeLow}, Err: cause}, KindUpstreamQuoteUnavailable},
		{"remote", &RemoteCallError{Method: "eth_gasPrice", Err: cause}, KindRemoteCallError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("estimate swap: %w", tt.err)

			var ke KindError
			require.True(t, errors.As(wrapped, &ke))
			assert.Equal(t, tt.kind, ke.Kind())
		})
	}
}

func TestUpstreamQuoteUnavailableMessage(t *testing.T) {
	err := &UpstreamQuoteUnavailableError{
		Tiers: []FeeTier{FeeLow, FeeMedium, FeeHigh},
		Err:   errors.New("pool not found"),
	}
	assert.Equal(t, "no quote available for fee tiers [500, 3000, 10000]: pool not found", err.Error())
	assert.ErrorContains(t, &UpstreamQuoteUnavailableError{Err: errors.New("x")}, "no quote available: x")
}

func TestFeeTierValid(t *testing.T) {
	for _, f := range []FeeTier{500, 3000, 10000} {
		assert.True(t, f.Valid(), f)
	}
	for _, f := range []FeeTier{0, 100, 2500, 10001} {
		assert.False(t, f.Valid(), f)
	}
	assert.Equal(t, "V2", V2.String())
	assert.Equal(t, "V3", V3.String())
}
