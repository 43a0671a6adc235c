// Package services contains the business logic of the custody tracker.
// This file implements AccessService: the shared-secret gate in front of
// every protected operation.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dgaraym/cardtrack/internal/auth"
	"github.com/dgaraym/cardtrack/internal/common"
	"github.com/dgaraym/cardtrack/internal/config"
	"github.com/dgaraym/cardtrack/internal/dbx"
	"github.com/dgaraym/cardtrack/internal/logging"
	"github.com/dgaraym/cardtrack/internal/models"
	"github.com/dgaraym/cardtrack/internal/repositories/repomanager"
	"golang.org/x/crypto/argon2"
)

// DefaultAccessCodes are seeded on first startup when no codes exist yet.
// They are meant to be rotated through the code-management commands right
// after the first login.
var DefaultAccessCodes = []string{
	"cardtrack_admin_2025",
	"cardtrack_frontdesk_2025",
	"cardtrack_security_2025",
}

const accessCodeSaltSize = 16

// AccessService verifies shared access codes, manages their lifecycle,
// and mints session tokens for verified actors.
type AccessService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	log             logging.Logger
	secretKey       []byte
	sessionValidity time.Duration
}

// NewAccessService constructs an AccessService using repositories and
// application config.
func NewAccessService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger, cfg *config.Config) *AccessService {
	return &AccessService{
		db:              db,
		repomanager:     m,
		log:             log,
		secretKey:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// digestCode derives the salted one-way digest of a plaintext code.
func digestCode(plain string, salt []byte) []byte {
	return argon2.IDKey([]byte(plain), salt, 1, 64*1024, 4, 32)
}

// VerifyAccessCode reports whether plain matches any stored code digest.
// Comparison is constant-time per candidate.
func (s *AccessService) VerifyAccessCode(ctx context.Context, plain string) (bool, error) {
	repo := s.repomanager.AccessCodes(s.db)
	codes, err := repo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("error listing access codes: %w", err)
	}

	for _, c := range codes {
		if subtle.ConstantTimeCompare(digestCode(plain, c.Salt), c.Digest) == 1 {
			return true, nil
		}
	}
	return false, nil
}

// Login verifies the access code and, on success, returns a signed
// session token. A wrong code yields common.ErrorUnauthorized.
func (s *AccessService) Login(ctx context.Context, plain string) (string, error) {
	ok, err := s.VerifyAccessCode(ctx, plain)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateSessionToken(s.secretKey, s.sessionValidity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// CheckSession validates a previously issued session token.
func (s *AccessService) CheckSession(token string) error {
	return auth.ValidateSessionToken(token, s.secretKey)
}

// EnsureDefaultAccessCodes seeds DefaultAccessCodes when the store holds
// no codes at all. Running it again is a no-op, so startup can always
// call it.
func (s *AccessService) EnsureDefaultAccessCodes(ctx context.Context) error {
	repo := s.repomanager.AccessCodes(s.db)
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("error counting access codes: %w", err)
	}
	if n > 0 {
		return nil
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.AccessCodes(tx)
		for _, plain := range DefaultAccessCodes {
			salt := common.GenerateRandByteArray(accessCodeSaltSize)
			code := &models.AccessCode{Salt: salt, Digest: digestCode(plain, salt)}
			if _, err := repoTx.Create(ctx, code); err != nil {
				return fmt.Errorf("error seeding access code: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "seeded default access codes", "count", len(DefaultAccessCodes))
	return nil
}

// AddAccessCode stores a new code. Blank input is rejected with
// common.ErrorValidation.
func (s *AccessService) AddAccessCode(ctx context.Context, plain string) (*models.AccessCode, error) {
	if strings.TrimSpace(plain) == "" {
		return nil, fmt.Errorf("access code must not be empty: %w", common.ErrorValidation)
	}

	salt := common.GenerateRandByteArray(accessCodeSaltSize)
	code := &models.AccessCode{Salt: salt, Digest: digestCode(plain, salt)}

	repo := s.repomanager.AccessCodes(s.db)
	created, err := repo.Create(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("error creating access code: %w", err)
	}
	return created, nil
}

// RemoveAccessCode deletes a code by id; unknown ids yield
// common.ErrorNotFound.
func (s *AccessService) RemoveAccessCode(ctx context.Context, id int64) error {
	repo := s.repomanager.AccessCodes(s.db)
	return repo.Delete(ctx, id)
}

// ListAccessCodes returns the stored codes (digests only, there is
// nothing else to show).
func (s *AccessService) ListAccessCodes(ctx context.Context) ([]*models.AccessCode, error) {
	repo := s.repomanager.AccessCodes(s.db)
	return repo.List(ctx)
}
