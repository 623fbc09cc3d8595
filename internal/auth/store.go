package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/apperr"
	"github.com/EmpoweredVote/BloodBank-Backend/internal/db"
	"gorm.io/gorm"
)

// Bootstrap runs inside the registration transaction after the account row
// is inserted. An error rolls the account back.
type Bootstrap func(ctx context.Context, tx *gorm.DB, accountID string) error

// Store is the persistence the auth handlers need.
type Store interface {
	CreateAccount(ctx context.Context, acct *Account) error
	FindAccountByUsername(ctx context.Context, username string) (Account, error)
	FindAccountByID(ctx context.Context, id string) (Account, error)
	UpdatePassword(ctx context.Context, id, hashed string) error
	DeleteAccount(ctx context.Context, id string) error

	CreateSession(ctx context.Context, s *Session) error
	FindSession(ctx context.Context, id string) (Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

var errUsernameTaken = apperr.Field("username", "A user with that username already exists.")

type GormStore struct {
	db        *gorm.DB
	bootstrap Bootstrap
}

func NewGormStore(d *gorm.DB, bootstrap Bootstrap) *GormStore {
	return &GormStore{db: d, bootstrap: bootstrap}
}

// CreateAccount inserts the account and runs the bootstrap in one
// transaction.
func (s *GormStore) CreateAccount(ctx context.Context, acct *Account) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(acct).Error; err != nil {
			return err
		}
		if s.bootstrap != nil {
			if err := s.bootstrap(ctx, tx, acct.ID); err != nil {
				return fmt.Errorf("bootstrap account: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		err = db.Translate(err)
		if apperr.Is(err, apperr.KindConstraint) && strings.Contains(db.ConstraintName(err), "username") {
			return errUsernameTaken
		}
		return err
	}
	return nil
}

func (s *GormStore) FindAccountByUsername(ctx context.Context, username string) (Account, error) {
	var acct Account
	err := s.db.WithContext(ctx).First(&acct, "username = ?", username).Error
	return acct, db.Translate(err)
}

func (s *GormStore) FindAccountByID(ctx context.Context, id string) (Account, error) {
	var acct Account
	err := s.db.WithContext(ctx).First(&acct, "id = ?", id).Error
	return acct, db.Translate(err)
}

func (s *GormStore) UpdatePassword(ctx context.Context, id, hashed string) error {
	res := s.db.WithContext(ctx).Model(&Account{}).Where("id = ?", id).Update("hashed_password", hashed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("account not found")
	}
	return nil
}

// DeleteAccount removes the account; foreign keys cascade to everything it
// owns, sessions included.
func (s *GormStore) DeleteAccount(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Account{})
	if res.Error != nil {
		return db.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("account not found")
	}
	return nil
}

func (s *GormStore) CreateSession(ctx context.Context, sess *Session) error {
	return db.Translate(s.db.WithContext(ctx).Create(sess).Error)
}

func (s *GormStore) FindSession(ctx context.Context, id string) (Session, error) {
	var sess Session
	err := s.db.WithContext(ctx).First(&sess, "session_id = ?", id).Error
	return sess, db.Translate(err)
}

func (s *GormStore) DeleteSession(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("session_id = ?", id).Delete(&Session{}).Error
}

func (s *GormStore) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&Session{})
	return res.RowsAffected, res.Error
}

func isNotFound(err error) bool {
	return apperr.Is(err, apperr.KindNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
