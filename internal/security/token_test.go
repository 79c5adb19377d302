package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zurichjs/rewards/internal/config"
	ierr "github.com/zurichjs/rewards/internal/errors"
)

func newTestCodec(t *testing.T, secret string) TokenCodec {
	cfg := config.GetDefaultConfig()
	cfg.Referral.TokenSecret = secret
	codec, err := NewTokenCodec(cfg)
	require.NoError(t, err)
	return codec
}

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := newTestCodec(t, "test-secret")

	token := codec.Encode("user_2abc")
	got, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", got)
}

func TestTokenCodecRejectsTampering(t *testing.T) {
	codec := newTestCodec(t, "test-secret")
	token := codec.Encode("user_2abc")

	t.Run("modified payload", func(t *testing.T) {
		parts := strings.SplitN(token, ".", 2)
		forged := codec.Encode("user_other")
		forgedPayload := strings.SplitN(forged, ".", 2)[0]
		_, err := codec.Decode(forgedPayload + "." + parts[1])
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("wrong key", func(t *testing.T) {
		other := newTestCodec(t, "another-secret")
		_, err := other.Decode(token)
		require.Error(t, err)
	})

	t.Run("missing signature", func(t *testing.T) {
		_, err := codec.Decode("bm9zaWc")
		require.Error(t, err)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := codec.Decode("!!!.???")
		require.Error(t, err)
	})
}

func TestNewTokenCodecRequiresSecret(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Referral.TokenSecret = ""
	_, err := NewTokenCodec(cfg)
	require.Error(t, err)
}
