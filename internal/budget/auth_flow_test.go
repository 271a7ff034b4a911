package budget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mindmoney/mindmoney/internal/auth"
	"github.com/mindmoney/mindmoney/internal/storage"
)

// End to end over the in-memory store: the same flows the HTTP handlers
// drive, without the wire layer.

func TestSignupDuplicateLeavesStoredHashUntouched(t *testing.T) {
	store := storage.NewInMemoryStorage()
	mm := NewMindMoney(store)
	ctx := context.Background()

	first := auth.NewUser{Email: "john@example.com", UserName: "john", PasswordPlain: "Or1g!nal0"}
	require.NoError(t, mm.SaveUser(ctx, first))

	second := auth.NewUser{Email: "john@example.com", UserName: "impostor", PasswordPlain: "Att4ck!er"}
	err := mm.SaveUser(ctx, second)
	require.ErrorContains(t, err, "Email already in use")

	// The original credential still logs in; the rejected one never took.
	_, _, err = mm.Login(ctx, auth.UserCredentialsPure{Email: "john@example.com", PasswordPlain: "Or1g!nal0"})
	require.NoError(t, err)

	_, _, err = mm.Login(ctx, auth.UserCredentialsPure{Email: "john@example.com", PasswordPlain: "Att4ck!er"})
	require.ErrorContains(t, err, "Invalid password")
}

func TestResetPasswordRoundTrip(t *testing.T) {
	store := storage.NewInMemoryStorage()
	mm := NewMindMoney(store)
	ctx := context.Background()

	require.NoError(t, mm.SaveUser(ctx, auth.NewUser{
		Email:         "john@example.com",
		UserName:      "john",
		PasswordPlain: "Old1!pass",
	}))

	require.NoError(t, mm.VerifyEmail(ctx, "john@example.com"))
	require.NoError(t, mm.ResetPassword(ctx, "john@example.com", "New1!pass"))

	_, _, err := mm.Login(ctx, auth.UserCredentialsPure{Email: "john@example.com", PasswordPlain: "New1!pass"})
	require.NoError(t, err)

	_, _, err = mm.Login(ctx, auth.UserCredentialsPure{Email: "john@example.com", PasswordPlain: "Old1!pass"})
	require.ErrorContains(t, err, "Invalid password")
}

func TestLoginSessionAuthorizesLedger(t *testing.T) {
	store := storage.NewInMemoryStorage()
	mm := NewMindMoney(store)
	ctx := context.Background()

	require.NoError(t, mm.SaveUser(ctx, auth.NewUser{
		Email:         "john@example.com",
		UserName:      "john",
		PasswordPlain: "Jo1!secret",
	}))

	_, token, err := mm.Login(ctx, auth.UserCredentialsPure{Email: "john@example.com", PasswordPlain: "Jo1!secret"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userId, err := mm.CheckSession(ctx, token)
	require.NoError(t, err)

	require.NoError(t, mm.SetSalary(userId, 50000))
	_, err = mm.AddExpense(userId, ExpenseRequest{Category: "Food", Amount: 1200})
	require.NoError(t, err)

	_, err = mm.CheckSession(ctx, "not-a-token")
	require.Error(t, err)
}
