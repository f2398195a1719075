package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/folio/internal/config"
	"github.com/mrlokans/folio/internal/database/dbtest"
	"github.com/mrlokans/folio/internal/database/users"
)

const testPassword = "correct horse battery"

func setupService(t *testing.T) *Service {
	db := dbtest.Open(t)
	return NewService(users.NewRepository(db), config.Auth{BcryptCost: bcrypt.MinCost})
}

func TestService_CreateUser(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, NewUser{Email: " Ann@Example.com ", Password: testPassword, FirstName: "Ann", LastName: "Lee"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.NotEqual(t, testPassword, user.PasswordHash)

	_, err = svc.CreateUser(ctx, NewUser{Email: "ann@example.com", Password: testPassword})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestService_CreateUser_Validation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		in      NewUser
		wantErr error
	}{
		{name: "missing email", in: NewUser{Password: testPassword}, wantErr: ErrEmailRequired},
		{name: "bad email", in: NewUser{Email: "not-an-email", Password: testPassword}, wantErr: ErrEmailInvalid},
		{name: "missing password", in: NewUser{Email: "a@example.com"}, wantErr: ErrPasswordRequired},
		{name: "short password", in: NewUser{Email: "a@example.com", Password: "short"}, wantErr: ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_IssueAndValidateToken(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	user, err := svc.CreateUser(ctx, NewUser{Email: "ann@example.com", Password: testPassword, FirstName: "Ann"})
	require.NoError(t, err)

	_, err = svc.IssueToken(ctx, "ann@example.com", "wrong password here")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.IssueToken(ctx, "nobody@example.com", testPassword)
	assert.ErrorIs(t, err, ErrBadCredentials)

	first, err := svc.IssueToken(ctx, "ANN@example.com", testPassword)
	require.NoError(t, err)

	resolved, err := svc.ValidateToken(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	second, err := svc.IssueToken(ctx, "ann@example.com", testPassword)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, first)
	assert.ErrorIs(t, err, ErrInvalidToken, "rotating the token revokes the previous one")

	_, err = svc.ValidateToken(ctx, second)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
