package storage

import (
	"context"
	"sync"
	"time"

	appErrors "github.com/mindmoney/mindmoney/customErrors"
	authModel "github.com/mindmoney/mindmoney/internal/auth"
)

// InMemoryStorage keeps accounts and sessions in process memory. It backs
// tests and local development; semantics mirror the MySQL implementation,
// including the conditional insert on email.
type InMemoryStorage struct {
	mu       sync.Mutex
	users    []authModel.User
	sessions []authModel.Session
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{}
}

func (inMem *InMemoryStorage) GetStorageType() string {
	return "inmemory"
}

func (inMem *InMemoryStorage) SaveUser(ctx context.Context, newUser authModel.User) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for _, user := range inMem.users {
		if user.Email == newUser.Email {
			return appErrors.ErrorResponse{
				Code:    appErrors.ErrConflict,
				Message: "Email already in use",
			}
		}
	}
	inMem.users = append(inMem.users, newUser)
	return nil
}

func (inMem *InMemoryStorage) GetUserByEmail(ctx context.Context, email string) (authModel.User, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for _, user := range inMem.users {
		if user.Email == email {
			return user, nil
		}
	}
	return authModel.User{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "Email not found",
	}
}

func (inMem *InMemoryStorage) UpdatePassword(ctx context.Context, email string, passwordHashed string) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for i := range inMem.users {
		if inMem.users[i].Email == email {
			inMem.users[i].PasswordHashed = passwordHashed
			return nil
		}
	}
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrNotFound,
		Message: "Email not found",
	}
}

func (inMem *InMemoryStorage) SaveSession(ctx context.Context, session authModel.Session) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	inMem.sessions = append(inMem.sessions, session)
	return nil
}

func (inMem *InMemoryStorage) GetSessionByToken(ctx context.Context, token string) (authModel.Session, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for _, session := range inMem.sessions {
		if session.Token == token {
			return session, nil
		}
	}
	return authModel.Session{}, appErrors.ErrorResponse{
		Code:    appErrors.ErrAuth,
		Message: "Session does not exist, please login.",
	}
}

func (inMem *InMemoryStorage) CheckSession(ctx context.Context, token string) (string, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	for _, session := range inMem.sessions {
		if session.Token == token {
			if session.ExpireAt.After(time.Now().UTC()) {
				return session.UserID, nil
			}
			return "", appErrors.ErrorResponse{
				Code:    appErrors.ErrAuth,
				Message: "Your session expired, please login again.",
			}
		}
	}
	return "", appErrors.ErrorResponse{
		Code:    appErrors.ErrAuth,
		Message: "Session does not exist, please login.",
	}
}

func (inMem *InMemoryStorage) UpdateSession(ctx context.Context, userId string, expireAt time.Time) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	updated := false
	for i := range inMem.sessions {
		if inMem.sessions[i].UserID == userId {
			inMem.sessions[i].ExpireAt = expireAt
			updated = true
		}
	}
	if !updated {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Session does not exist, please login.",
		}
	}
	return nil
}
