package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	appErrors "github.com/mindmoney/mindmoney/customErrors"
	"github.com/mindmoney/mindmoney/internal/auth"
)

// Mocks

type MockStorage struct {
	savedUsers []auth.User
}

func (m *MockStorage) SaveUser(ctx context.Context, user auth.User) error {
	if user.Email == "taken@example.com" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrConflict,
			Message: "Email already in use",
		}
	}
	m.savedUsers = append(m.savedUsers, user)
	return nil
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	if email == "john@example.com" {
		hash, _ := auth.HashPassword("Jo1!secret")
		return auth.User{ID: "1234", Email: email, UserName: "john", PasswordHashed: hash}, nil
	}
	return auth.User{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "Email not found",
	}
}

func (m *MockStorage) UpdatePassword(ctx context.Context, email string, passwordHashed string) error {
	return nil
}

func (m *MockStorage) SaveSession(ctx context.Context, session auth.Session) error {
	return nil
}

func (m *MockStorage) GetSessionByToken(ctx context.Context, token string) (auth.Session, error) {
	if token == "tok-valid" {
		return auth.Session{
			ID:        "session-valid",
			Token:     "tok-valid",
			CreatedAt: time.Now().UTC(),
			ExpireAt:  time.Now().UTC().AddDate(0, 3, 0),
			UserID:    "1234",
		}, nil
	}
	return auth.Session{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrAuth,
		Message: "Session does not exist, please login.",
	}
}

func (m *MockStorage) CheckSession(ctx context.Context, token string) (string, error) {
	if token == "tok-valid" {
		return "1234", nil
	}
	return "", fmt.Errorf("session does not exist")
}

func (m *MockStorage) UpdateSession(ctx context.Context, userId string, expireAt time.Time) error {
	return nil
}

func (m *MockStorage) GetStorageType() string {
	return "mock"
}

// Tests

func TestSaveUser(t *testing.T) {
	mockStore := &MockStorage{}
	mm := NewMindMoney(mockStore)
	ctx := context.Background()

	tests := []struct {
		name        string
		input       auth.NewUser
		expectedMsg string
	}{
		{
			name:        "Fail - Empty Email",
			input:       auth.NewUser{Email: "", UserName: "john", PasswordPlain: "Aa1!aaaa"},
			expectedMsg: "Email cannot be empty!",
		},
		{
			name:        "Fail - Weak Password",
			input:       auth.NewUser{Email: "john@example.com", UserName: "john", PasswordPlain: "12345678"},
			expectedMsg: "Password is not strong enough.",
		},
		{
			name:        "Fail - Duplicate Email",
			input:       auth.NewUser{Email: "taken@example.com", UserName: "john", PasswordPlain: "Aa1!aaaa"},
			expectedMsg: "Email already in use",
		},
		{
			name:  "Success - Valid Registration",
			input: auth.NewUser{Email: "new@example.com", UserName: "john", PasswordPlain: "Aa1!aaaa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mm.SaveUser(ctx, tt.input)

			if tt.expectedMsg != "" {
				if err == nil {
					t.Fatalf("Expected error containing %q, but got nil", tt.expectedMsg)
				}
				if !strings.Contains(err.Error(), tt.expectedMsg) {
					t.Errorf("Error message mismatch:\n Got:  %q\n Want: %q", err.Error(), tt.expectedMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Expected success, but got error: %v", err)
			}
		})
	}
}

func TestSaveUserNeverStoresPlaintext(t *testing.T) {
	mockStore := &MockStorage{}
	mm := NewMindMoney(mockStore)
	ctx := context.Background()

	input := auth.NewUser{Email: "new@example.com", UserName: "john", PasswordPlain: "Aa1!aaaa"}
	if err := mm.SaveUser(ctx, input); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	if len(mockStore.savedUsers) != 1 {
		t.Fatalf("expected 1 saved user, got %d", len(mockStore.savedUsers))
	}
	saved := mockStore.savedUsers[0]
	if saved.PasswordHashed == input.PasswordPlain {
		t.Error("password was stored in plaintext")
	}
	if !auth.ComparePasswords(saved.PasswordHashed, input.PasswordPlain) {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestLogin(t *testing.T) {
	mockStore := &MockStorage{}
	mm := NewMindMoney(mockStore)
	ctx := context.Background()

	tests := []struct {
		name        string
		input       auth.UserCredentialsPure
		expectedMsg string
	}{
		{
			name:        "Fail - Empty fields",
			input:       auth.UserCredentialsPure{Email: "", PasswordPlain: ""},
			expectedMsg: "Please enter email and password",
		},
		{
			name:        "Fail - Unknown email",
			input:       auth.UserCredentialsPure{Email: "ghost@example.com", PasswordPlain: "Aa1!aaaa"},
			expectedMsg: "Email not found",
		},
		{
			name:        "Fail - Wrong password",
			input:       auth.UserCredentialsPure{Email: "john@example.com", PasswordPlain: "Wrong1!pw"},
			expectedMsg: "Invalid password",
		},
		{
			name:  "Success - Valid credentials",
			input: auth.UserCredentialsPure{Email: "john@example.com", PasswordPlain: "Jo1!secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := mm.Login(ctx, tt.input)

			if tt.expectedMsg != "" {
				if err == nil {
					t.Fatalf("Expected error containing %q, but got nil", tt.expectedMsg)
				}
				if !strings.Contains(err.Error(), tt.expectedMsg) {
					t.Errorf("Error message mismatch:\n Got:  %q\n Want: %q", err.Error(), tt.expectedMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Expected success, but got error: %v", err)
			}
			if user.UserName != "john" || user.Email != "john@example.com" {
				t.Errorf("unexpected user in response: %+v", user)
			}
			if token == "" {
				t.Error("expected a session token")
			}
		})
	}
}

func TestLoginWrongPasswordIsTagged(t *testing.T) {
	mockStore := &MockStorage{}
	mm := NewMindMoney(mockStore)
	ctx := context.Background()

	_, _, err := mm.Login(ctx, auth.UserCredentialsPure{Email: "john@example.com", PasswordPlain: "Almost1!right"})
	if err == nil {
		t.Fatal("expected wrong password to fail")
	}

	var appErr appErrors.ErrorResponse
	if !errors.As(err, &appErr) {
		t.Fatalf("expected ErrorResponse, got %T", err)
	}
	if appErr.Code != appErrors.ErrInvalidInput {
		t.Errorf("Code = %q, want %q", appErr.Code, appErrors.ErrInvalidInput)
	}
	// The message must not leak anything about the stored credential.
	if appErr.Message != "Invalid password" {
		t.Errorf("Message = %q, want %q", appErr.Message, "Invalid password")
	}
}

func TestCheckSession(t *testing.T) {
	mockStore := &MockStorage{}
	mm := NewMindMoney(mockStore)
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:    "unknown session",
			input:   "tok-unknown",
			wantErr: true,
		},
		{
			name:     "valid session",
			input:    "tok-valid",
			expected: "1234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userId, err := mm.CheckSession(ctx, tt.input)

			if userId != tt.expected {
				t.Errorf("userId mismatch: got %q, want %q", userId, tt.expected)
			}
			if tt.wantErr && err == nil {
				t.Error("expected an error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestVerifyEmail(t *testing.T) {
	mockStore := &MockStorage{}
	mm := NewMindMoney(mockStore)
	ctx := context.Background()

	if err := mm.VerifyEmail(ctx, "ghost@example.com"); err == nil {
		t.Error("expected unknown email to fail verification")
	}
	if err := mm.VerifyEmail(ctx, ""); err == nil {
		t.Error("expected empty email to be rejected")
	}
	if err := mm.VerifyEmail(ctx, "john@example.com"); err != nil {
		t.Errorf("expected success, got: %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	mockStore := &MockStorage{}
	mm := NewMindMoney(mockStore)
	ctx := context.Background()

	tests := []struct {
		name        string
		email       string
		password    string
		expectedMsg string
	}{
		{
			name:        "Fail - Unknown email",
			email:       "ghost@example.com",
			password:    "Aa1!aaaa",
			expectedMsg: "Email not found",
		},
		{
			name:        "Fail - Weak new password",
			email:       "john@example.com",
			password:    "weakpass",
			expectedMsg: "Password is not strong enough.",
		},
		{
			name:     "Success - Valid reset",
			email:    "john@example.com",
			password: "Aa1!aaaa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mm.ResetPassword(ctx, tt.email, tt.password)

			if tt.expectedMsg != "" {
				if err == nil {
					t.Fatalf("Expected error containing %q, but got nil", tt.expectedMsg)
				}
				if !strings.Contains(err.Error(), tt.expectedMsg) {
					t.Errorf("Error message mismatch:\n Got:  %q\n Want: %q", err.Error(), tt.expectedMsg)
				}
				return
			}

			if err != nil {
				t.Errorf("Expected success, but got error: %v", err)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	mockStore := &MockStorage{}
	mm := NewMindMoney(mockStore)
	userID := "1234"

	if err := mm.SetSalary(userID, 50000); err != nil {
		t.Fatalf("SetSalary failed: %v", err)
	}
	for _, expense := range []ExpenseRequest{
		{Category: "Food", Amount: 12000},
		{Category: "Travel", Amount: 8000},
		{Category: "Home", Amount: 20000},
	} {
		if _, err := mm.AddExpense(userID, expense); err != nil {
			t.Fatalf("AddExpense(%s) failed: %v", expense.Category, err)
		}
	}

	summary := mm.Summary(userID)
	if summary.TotalSpent != 40000 {
		t.Errorf("TotalSpent = %v, want 40000", summary.TotalSpent)
	}
	if summary.Savings != 10000 {
		t.Errorf("Savings = %v, want 10000", summary.Savings)
	}
	if summary.Net != 10000 {
		t.Errorf("Net = %v, want 10000", summary.Net)
	}
	if len(summary.Categories) != 3 {
		t.Fatalf("expected 3 category totals, got %d", len(summary.Categories))
	}
	// Sorted largest first.
	if summary.Categories[0].Category != CategoryHome {
		t.Errorf("largest category = %q, want %q", summary.Categories[0].Category, CategoryHome)
	}
}

func TestRecommendPlanFromLedger(t *testing.T) {
	mockStore := &MockStorage{}
	mm := NewMindMoney(mockStore)
	userID := "1234"

	// Empty ledger, no salary: the ratio is undefined.
	if _, err := mm.RecommendPlan(userID); err == nil {
		t.Error("expected zero-salary ledger to be rejected")
	}

	if err := mm.SetSalary(userID, 50000); err != nil {
		t.Fatalf("SetSalary failed: %v", err)
	}
	if _, err := mm.AddExpense(userID, ExpenseRequest{Category: "Home", Amount: 40000}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	// Savings ratio is exactly 0.20; the boundary is inclusive.
	recommendation, err := mm.RecommendPlan(userID)
	if err != nil {
		t.Fatalf("RecommendPlan failed: %v", err)
	}
	if recommendation.Recommended != 0 {
		t.Errorf("Recommended = %d, want 0 (50-30-20)", recommendation.Recommended)
	}
}
