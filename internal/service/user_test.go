package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/healthwallet/healthwallet/internal/auth"
	"github.com/healthwallet/healthwallet/internal/repository/memory"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users, _, _ := newTestServices(t)

	user, token, err := users.Register(ctx, RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "a@x.com", user.Email)

	// The issued token decodes back to the user id.
	userID, err := auth.ParseToken(token, []byte("test-secret"))
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)

	got, token, err := users.Login(ctx, "a@x.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users, _, _ := newTestServices(t)

	first, _, err := users.Register(ctx, RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "pw-one",
	})
	require.NoError(t, err)

	_, _, err = users.Register(ctx, RegisterInput{
		Username: "mallory", Email: "a@x.com", Password: "pw-two",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	// The first account is unaffected and still logs in.
	got, _, err := users.Login(ctx, "a@x.com", "pw-one")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, "alice", got.Username)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	users, _, _ := newTestServices(t)

	for _, input := range []RegisterInput{
		{Username: "", Email: "a@x.com", Password: "pw"},
		{Username: "alice", Email: "", Password: "pw"},
		{Username: "alice", Email: "a@x.com", Password: ""},
		{Username: "   ", Email: "a@x.com", Password: "pw"},
	} {
		_, _, err := users.Register(ctx, input)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestLoginGenericFailure(t *testing.T) {
	ctx := context.Background()
	users, _, _ := newTestServices(t)

	_, _, err := users.Register(ctx, RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "correct horse",
	})
	require.NoError(t, err)

	// Unknown email and wrong password are indistinguishable.
	_, _, errUnknown := users.Login(ctx, "ghost@x.com", "whatever")
	_, _, errWrong := users.Login(ctx, "a@x.com", "wrong password")
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, ErrInvalidCredentials)
}

func TestStoredCredentialIsHashed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := NewUserService(store, []byte("test-secret"), time.Hour)

	_, _, err := users.Register(ctx, RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "correct horse",
	})
	require.NoError(t, err)

	stored, err := store.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse", stored.CredentialHash)
	require.True(t, auth.VerifyPassword("correct horse", stored.CredentialHash))
}
