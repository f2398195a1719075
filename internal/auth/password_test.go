package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid", password: "correct horse battery"},
		{name: "too short", password: "short", wantErr: ErrPasswordTooShort},
		{name: "too long", password: strings.Repeat("a", 73), wantErr: ErrPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, bcrypt.MinCost)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, CheckPassword(tt.password, hash))
			assert.ErrorIs(t, CheckPassword("something else entirely", hash), ErrInvalidPassword)
		})
	}
}

func TestGenerateAPIToken(t *testing.T) {
	plain, hash, err := GenerateAPIToken()
	require.NoError(t, err)
	assert.Len(t, plain, 64)
	assert.Len(t, hash, 64)
	assert.Equal(t, HashToken(plain), hash)
	assert.NotEqual(t, plain, hash)

	other, _, err := GenerateAPIToken()
	require.NoError(t, err)
	assert.NotEqual(t, plain, other)
}
