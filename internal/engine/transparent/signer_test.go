package transparent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "986bfa2bec61479ca560dbaaec345820"

func TestSign(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "known vector",
			message: "d00d",
			want:    "790a4038fb9047889a767baadf8edc3e07b6e66b",
		},
		{
			name:    "one extra byte",
			message: "d00d2",
			want:    "943a9b3fa4e11fccb21956753e12858f4dc02ef9",
		},
		{
			name:    "nested query",
			message: "account[account_code]=123&transaction[amount]=10",
			want:    "4d018ab508b306e23b88d0eda0beff39e2b4a86e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sign([]byte(testKey), tt.message)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, SignatureLength)
		})
	}
}

func TestSign_Deterministic(t *testing.T) {
	first, err := Sign([]byte(testKey), "d00d")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Sign([]byte(testKey), "d00d")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	other, err := Sign([]byte(testKey), "d00d2")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestSign_KeySensitivity(t *testing.T) {
	a, err := Sign([]byte("key-a"), "message")
	require.NoError(t, err)
	b, err := Sign([]byte("key-b"), "message")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSign_EmptySecret(t *testing.T) {
	for _, secret := range [][]byte{nil, {}} {
		_, err := Sign(secret, "d00d")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingPrivateKey)
		assert.Equal(t, KindConfiguration, KindOf(err))
	}
}

func TestVerify(t *testing.T) {
	ok, err := Verify([]byte(testKey), "d00d", "790a4038fb9047889a767baadf8edc3e07b6e66b")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify([]byte(testKey), "d00d2", "790a4038fb9047889a767baadf8edc3e07b6e66b")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Verify(nil, "d00d", "790a4038fb9047889a767baadf8edc3e07b6e66b")
	assert.ErrorIs(t, err, ErrMissingPrivateKey)
}
