package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPlainVerifier(t *testing.T) {
	v := PlainVerifier{}

	sealed, err := v.Seal("hunter2")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", sealed)

	assert.True(t, v.Verify(sealed, "hunter2"))
	assert.False(t, v.Verify(sealed, "Hunter2"))
	assert.False(t, v.Verify(sealed, "hunter2 "))
}

func TestPasswordManager_SealAndVerify(t *testing.T) {
	pm := NewPasswordManagerWithCost(bcrypt.MinCost)

	sealed, err := pm.Seal("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", sealed)

	assert.True(t, pm.Verify(sealed, "correct horse"))
	assert.False(t, pm.Verify(sealed, "wrong horse"))
	assert.False(t, pm.Verify("not-a-hash", "correct horse"))
}

func TestNewPasswordManagerWithCost_Clamps(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewPasswordManagerWithCost(1).cost)
	assert.Equal(t, bcrypt.MaxCost, NewPasswordManagerWithCost(99).cost)
	assert.Equal(t, 12, NewPasswordManager().cost)
}

func TestNewVerifier(t *testing.T) {
	tests := []struct {
		name    string
		scheme  string
		want    CredentialVerifier
		wantErr bool
	}{
		{name: "empty defaults to plain", scheme: "", want: PlainVerifier{}},
		{name: "plain", scheme: "plain", want: PlainVerifier{}},
		{name: "bcrypt any case", scheme: " BCrypt ", want: &PasswordManager{cost: bcrypt.MinCost}},
		{name: "unknown", scheme: "argon2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVerifier(tt.scheme, bcrypt.MinCost)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownScheme)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}
