package budget

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	appErrors "github.com/mindmoney/mindmoney/customErrors"
	"github.com/mindmoney/mindmoney/internal/auth"
)

// MindMoney is the application service: account operations over the
// Storage interface plus the in-memory session ledgers.
type MindMoney struct {
	storage     Storage
	ledgers     *LedgerStore
	StorageType string
}

func NewMindMoney(s Storage) MindMoney {
	return MindMoney{
		storage:     s,
		ledgers:     NewLedgerStore(),
		StorageType: s.GetStorageType(),
	}
}

type Storage interface {
	SaveUser(ctx context.Context, user auth.User) error
	GetUserByEmail(ctx context.Context, email string) (auth.User, error)
	UpdatePassword(ctx context.Context, email string, passwordHashed string) error
	SaveSession(ctx context.Context, session auth.Session) error
	GetSessionByToken(ctx context.Context, token string) (auth.Session, error)
	CheckSession(ctx context.Context, token string) (userId string, err error)
	UpdateSession(ctx context.Context, userId string, expireAt time.Time) error
	GetStorageType() string
}

// SaveUser registers a new account. Email uniqueness is not pre-checked
// here; the store's unique index decides the race and a duplicate insert
// comes back as a conflict.
func (mm *MindMoney) SaveUser(ctx context.Context, newUser auth.NewUser) error {
	if err := newUser.ValidateUserFields(); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(newUser.PasswordPlain)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := auth.User{
		ID:             uuid.New().String(),
		Email:          newUser.Email,
		UserName:       newUser.UserName,
		PasswordHashed: hashedPassword,
	}

	if err := mm.storage.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to registration: %w", err)
	}
	return nil
}

// Login validates credentials and opens a session. The email-unknown and
// wrong-password cases are reported separately, matching the original
// contract; the wrong-password message never hints how close the guess was.
func (mm *MindMoney) Login(ctx context.Context, credentials auth.UserCredentialsPure) (auth.User, string, error) {
	if credentials.Email == "" || credentials.PasswordPlain == "" {
		return auth.User{}, "", appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Please enter email and password",
		}
	}

	user, err := mm.storage.GetUserByEmail(ctx, credentials.Email)
	if err != nil {
		return auth.User{}, "", fmt.Errorf("%w", err)
	}

	if !auth.ComparePasswords(user.PasswordHashed, credentials.PasswordPlain) {
		return auth.User{}, "", appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Invalid password",
		}
	}

	token, err := mm.generateSession(ctx, user.ID)
	if err != nil {
		return auth.User{}, "", err
	}
	return user, token, nil
}

func (mm *MindMoney) generateSession(ctx context.Context, userID string) (string, error) {
	tokenByte := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, tokenByte); err != nil {
		return "", fmt.Errorf("failed to generate new session: %w", err)
	}
	token := hex.EncodeToString(tokenByte)

	now := time.Now().UTC()
	session := auth.Session{
		ID:        uuid.New().String(),
		Token:     token,
		CreatedAt: now,
		ExpireAt:  now.AddDate(0, 3, 0),
		UserID:    userID,
	}

	if err := mm.storage.SaveSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}

// CheckSession resolves a token to a user id and slides the expiry
// forward when the session is close to running out.
func (mm *MindMoney) CheckSession(ctx context.Context, token string) (string, error) {
	session, err := mm.storage.GetSessionByToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to get session by token: %w", err)
	}

	userId, err := mm.storage.CheckSession(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to check session: %w", err)
	}

	now := time.Now().UTC()
	daysUntilExpiry := int(session.ExpireAt.Sub(now).Hours() / 24)

	if daysUntilExpiry <= 5 {
		newExpireAt := now.AddDate(0, 1, 0)
		if err := mm.storage.UpdateSession(ctx, userId, newExpireAt); err != nil {
			return "", fmt.Errorf("failed to update session: %w", err)
		}
	}

	return userId, nil
}

// VerifyEmail is step one of the reset flow: confirm the address is
// registered. No reset token is issued or mailed; the original app never
// wired that up and this keeps its behavior.
func (mm *MindMoney) VerifyEmail(ctx context.Context, email string) error {
	if email == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Email cannot be empty!",
		}
	}
	if _, err := mm.storage.GetUserByEmail(ctx, email); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ResetPassword replaces the stored hash for the given email. It trusts
// the bare email with no proof of inbox ownership, same as the original.
func (mm *MindMoney) ResetPassword(ctx context.Context, email string, newPassword string) error {
	if email == "" {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Email cannot be empty!",
		}
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}

	if _, err := mm.storage.GetUserByEmail(ctx, email); err != nil {
		return fmt.Errorf("%w", err)
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := mm.storage.UpdatePassword(ctx, email, hashedPassword); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// --- LEDGER OPERATIONS --- //

func (mm *MindMoney) SetSalary(userID string, amount float64) error {
	return mm.ledgers.SetSalary(userID, amount)
}

func (mm *MindMoney) AddExpense(userID string, req ExpenseRequest) (ExpenseEntry, error) {
	return mm.ledgers.AddExpense(userID, req)
}

func (mm *MindMoney) DeleteExpense(userID string, entryID string) error {
	return mm.ledgers.RemoveExpense(userID, entryID)
}

func (mm *MindMoney) Expenses(userID string) []ExpenseEntry {
	return mm.ledgers.Snapshot(userID).Entries
}

// Summary derives every reported number from one ledger snapshot.
// Category percentages are shares of total spend, sorted largest first.
func (mm *MindMoney) Summary(userID string) Summary {
	ledger := mm.ledgers.Snapshot(userID)

	totalSpent := TotalSpent(ledger.Entries)
	totals := CategoryTotals(ledger.Entries)

	categories := make([]CategoryTotal, 0, len(totals))
	for category, amount := range totals {
		var percent float64
		if totalSpent > 0 {
			percent = amount / totalSpent * 100
		}
		categories = append(categories, CategoryTotal{
			Category: category,
			Amount:   amount,
			Percent:  percent,
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Amount != categories[j].Amount {
			return categories[i].Amount > categories[j].Amount
		}
		return categories[i].Category < categories[j].Category
	})

	return Summary{
		Salary:     ledger.Salary,
		TotalSpent: totalSpent,
		Savings:    Savings(ledger.Salary, totalSpent),
		Net:        Net(ledger.Salary, totalSpent),
		Categories: categories,
	}
}

func (mm *MindMoney) RecommendPlan(userID string) (Recommendation, error) {
	ledger := mm.ledgers.Snapshot(userID)
	totalSpent := TotalSpent(ledger.Entries)
	return RecommendPlan(ledger.Salary, Savings(ledger.Salary, totalSpent))
}

// DropLedger clears the user's session ledger.
func (mm *MindMoney) DropLedger(userID string) {
	mm.ledgers.Drop(userID)
}
