package budget

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	appErrors "github.com/mindmoney/mindmoney/customErrors"
)

// LedgerStore owns every live session ledger, keyed by user id. It is the
// single writer for ledger state; callers only ever see copies. Nothing
// in here touches persistent storage.
type LedgerStore struct {
	mu      sync.Mutex
	ledgers map[string]*Ledger
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		ledgers: make(map[string]*Ledger),
	}
}

// ledgerOf returns the ledger for a user, creating an empty one on first
// use. Caller must hold ls.mu.
func (ls *LedgerStore) ledgerOf(userID string) *Ledger {
	ledger, ok := ls.ledgers[userID]
	if !ok {
		ledger = &Ledger{}
		ls.ledgers[userID] = ledger
	}
	return ledger
}

func (ls *LedgerStore) SetSalary(userID string, amount float64) error {
	if amount < 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Salary cannot be negative.",
		}
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.ledgerOf(userID).Salary = amount
	return nil
}

func (ls *LedgerStore) AddExpense(userID string, req ExpenseRequest) (ExpenseEntry, error) {
	category, err := ParseCategory(req.Category)
	if err != nil {
		return ExpenseEntry{}, err
	}
	if req.Amount <= 0 {
		return ExpenseEntry{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Please enter a valid amount!",
		}
	}

	now := time.Now().UTC()
	date := req.Date
	if date == "" {
		date = now.Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return ExpenseEntry{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Invalid date: '%s', expected format: 2006-01-02", req.Date),
		}
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	ledger := ls.ledgerOf(userID)
	if ledger.Salary <= 0 {
		return ExpenseEntry{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Please enter your total salary!",
		}
	}
	for _, entry := range ledger.Entries {
		if entry.Category == category {
			return ExpenseEntry{}, appErrors.ErrorResponse{
				Code:    appErrors.ErrConflict,
				Message: fmt.Sprintf("%s already has an expense! Choose another category.", category),
			}
		}
	}

	entry := ExpenseEntry{
		ID:       uuid.New().String(),
		Category: category,
		Amount:   req.Amount,
		Date:     date,
		AddedAt:  now,
	}
	ledger.Entries = append(ledger.Entries, entry)
	return entry, nil
}

func (ls *LedgerStore) RemoveExpense(userID string, entryID string) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ledger := ls.ledgerOf(userID)
	for i, entry := range ledger.Entries {
		if entry.ID == entryID {
			ledger.Entries = append(ledger.Entries[:i], ledger.Entries[i+1:]...)
			return nil
		}
	}
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: fmt.Sprintf("No expense found with id: '%s'", entryID),
	}
}

// Snapshot copies the user's ledger so calculator functions can run on it
// without holding the lock.
func (ls *LedgerStore) Snapshot(userID string) Ledger {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ledger := ls.ledgerOf(userID)
	entries := make([]ExpenseEntry, len(ledger.Entries))
	copy(entries, ledger.Entries)
	return Ledger{
		Salary:  ledger.Salary,
		Entries: entries,
	}
}

// Drop discards a user's ledger. Used on logout; the ledger is session
// state and does not survive the session.
func (ls *LedgerStore) Drop(userID string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	delete(ls.ledgers, userID)
}
