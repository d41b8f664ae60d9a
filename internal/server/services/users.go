// Package services contains the server-side business logic. This file
// implements UserService, the sole authority over account records: creation
// with email uniqueness, lookups with identifier validation, partial updates,
// and deletion.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avmarques/accounts/internal/common"
	"github.com/avmarques/accounts/internal/dbx"
	"github.com/avmarques/accounts/internal/server/models"
	"github.com/avmarques/accounts/internal/server/repositories/repomanager"
)

// hashCost is the bcrypt work factor. A seam so tests can drop to the minimum
// cost instead of burning CPU on every hash.
var hashCost = bcrypt.DefaultCost

// CreateUserParams carries the fields of a new account. Password is the
// plaintext supplied by the caller; it is hashed before anything is persisted.
type CreateUserParams struct {
	Name      string
	Email     string
	Password  string
	CellPhone string
}

// UpdateUserParams carries a partial update. Nil fields are preserved from
// the existing record; a non-nil Password is re-hashed.
type UpdateUserParams struct {
	Name      *string
	Email     *string
	Password  *string
	CellPhone *string
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// validateUserID rejects identifiers that are not canonical hyphenated
// version-4 UUIDs before any storage is touched. The length check keeps out
// the braced, URN, and compact forms uuid.Parse would otherwise accept.
func validateUserID(id string) error {
	if len(id) != 36 {
		return common.ErrInvalidUserID
	}
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.Version() != 4 {
		return common.ErrInvalidUserID
	}
	return nil
}

func (p CreateUserParams) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if p.Email == "" {
		return fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if p.Password == "" {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	return nil
}

// Create hashes the password, assigns a fresh id, and persists the record.
// The email uniqueness pre-check runs in the same transaction as the insert,
// and the unique index on users.email backstops concurrent creates that slip
// past the check.
func (s *UserService) Create(ctx context.Context, params CreateUserParams) (*models.User, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), hashCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         params.Name,
		Email:        params.Email,
		CellPhone:    params.CellPhone,
		PasswordHash: hash,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, params.Email)
		if err == nil {
			return common.ErrEmailExists
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		_, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID returns the record for the given id.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := validateUserID(id); err != nil {
		return nil, err
	}
	repo := s.repomanager.Users(s.db)
	return repo.GetByID(ctx, id)
}

// GetByEmail returns the record for the given email, hash included. It serves
// both the uniqueness pre-check and the credential verification lookup;
// callers reinterpret common.ErrNotFound for their own flow.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.GetByEmail(ctx, email)
}

// List returns all records.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.List(ctx)
}

// Update merges the non-nil fields of params over the existing record and
// persists the result. The read-merge-write runs inside a transaction; between
// committed transactions the last write wins.
func (s *UserService) Update(ctx context.Context, id string, params UpdateUserParams) (*models.User, error) {
	if err := validateUserID(id); err != nil {
		return nil, err
	}

	var updated *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if params.Name != nil {
			if *params.Name == "" {
				return fmt.Errorf("%w: name is required", common.ErrValidation)
			}
			user.Name = *params.Name
		}
		if params.Email != nil {
			if *params.Email == "" {
				return fmt.Errorf("%w: email is required", common.ErrValidation)
			}
			user.Email = *params.Email
		}
		if params.CellPhone != nil {
			user.CellPhone = *params.CellPhone
		}
		if params.Password != nil {
			if *params.Password == "" {
				return fmt.Errorf("%w: password is required", common.ErrValidation)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), hashCost)
			if err != nil {
				return common.ErrInternal
			}
			user.PasswordHash = hash
		}

		updated, err = repo.Update(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the record permanently.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := validateUserID(id); err != nil {
		return err
	}
	repo := s.repomanager.Users(s.db)
	return repo.Delete(ctx, id)
}
