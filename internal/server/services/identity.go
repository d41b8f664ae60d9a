package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avmarques/accounts/internal/common"
	"github.com/avmarques/accounts/internal/server/auth"
	"github.com/avmarques/accounts/internal/server/config"
)

// Identity is the public projection of a verified account: the email only,
// never the id or the password hash.
type Identity struct {
	Email string
}

// IdentityService authenticates a claimed identity and mints session tokens.
// It never mutates records; all reads go through UserService.
type IdentityService struct {
	users         *UserService
	secretKey     []byte
	tokenValidity time.Duration
}

func NewIdentityService(users *UserService, cfg *config.Config) *IdentityService {
	return &IdentityService{
		users:         users,
		secretKey:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// dummyHash is a bcrypt digest compared against when the email is unknown, so
// that lookups for absent and present accounts cost roughly the same.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// VerifyCredentials looks up the record by email and compares the supplied
// password against the stored hash. Unknown email and wrong password collapse
// into the same common.ErrUnauthorized result.
func (s *IdentityService) VerifyCredentials(ctx context.Context, email, password string) (*Identity, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrUnauthorized
	}

	return &Identity{Email: user.Email}, nil
}

// IssueToken signs a session token for the account with the given email.
// The token subject is the record id and the email travels as a claim. The
// caller is expected to have verified the credentials already; no password
// check happens here.
func (s *IdentityService) IssueToken(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.secretKey, s.tokenValidity)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// Login is the strict two-step pipeline: verify, then issue. Issue is never
// reached when verification fails.
func (s *IdentityService) Login(ctx context.Context, email, password string) (string, error) {
	identity, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.IssueToken(ctx, identity.Email)
}
