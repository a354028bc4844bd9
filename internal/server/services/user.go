// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, token resolution and
// password changes.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// dummyPassword is hashed once and compared against when a login names an
// unknown email, so both failure paths pay for a bcrypt comparison.
const dummyPassword = "taskkeeper-dummy-Passw0rd!"

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *models.User
}

// UserService provides authentication-related operations:
// - Register: create users and issue a token
// - Login: verify credentials and issue a token
// - ResolveIdentity: map a bearer token to a user id
// - GetSelf / UpdatePassword: operations on the authenticated user
type UserService struct {
	db                          dbx.TxStarter
	handle                      dbx.DBTX
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
	logger                      logging.Logger

	now   func() time.Time
	newID func() string

	dummyOnce sync.Once
	dummyHash string
}

// Database is the handle services need: plain queries plus transactions.
// *sql.DB satisfies it.
type Database interface {
	dbx.DBTX
	dbx.TxStarter
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db Database, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                          db,
		handle:                      db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  cfg.BcryptCost,
		logger:                      logger.With("module", "user_service"),
		now:                         time.Now,
		newID:                       uuid.NewString,
	}
}

// Register validates the input, stores a new user with a salted hash of
// password and returns a token for it. A taken email yields
// common.ErrorAlreadyExists and leaves the store untouched.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	verr := &common.ValidationError{}
	if strings.TrimSpace(name) == "" {
		verr.Add("name", common.MsgNameRequired)
	}
	if strings.TrimSpace(email) == "" {
		verr.Add("email", common.MsgInvalidEmail)
	}
	if !auth.IsStrongPassword(password) {
		verr.Add("password", common.MsgWeakPassword)
	}
	if !verr.Empty() {
		return nil, verr
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			return common.ErrorAlreadyExists
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("error searching user: %w", err)
		}

		created, err = repo.Create(ctx, &models.User{
			ID:           s.newID(),
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    s.now().UTC(),
		})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return err
			}
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.issue(created)
}

// Login checks email and password. Unknown emails and wrong passwords both
// yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrorInvalidCredentials
	}

	repo := s.repomanager.Users(s.handle)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("error searching user: %w", err)
		}
		_, _ = auth.CheckPassword(s.getDummyHash(), password)
		return nil, common.ErrorInvalidCredentials
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrorInvalidCredentials
	}

	return s.issue(user)
}

// ResolveIdentity returns the user id a token was issued for. Every
// verification failure collapses to common.ErrorUnauthorized.
func (s *UserService) ResolveIdentity(ctx context.Context, token string) (string, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "reason", err.Error())
		return "", common.ErrorUnauthorized
	}
	return userID, nil
}

// GetSelf loads the user record behind an identity.
func (s *UserService) GetSelf(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.handle)
	user, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// UpdatePassword replaces the stored hash after re-verifying oldPassword.
// Tokens issued before the change stay valid until they expire.
func (s *UserService) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	verr := &common.ValidationError{}
	if oldPassword == "" {
		verr.Add("oldPassword", common.MsgOldPasswordRequired)
	}
	if !auth.IsStrongPassword(newPassword) {
		verr.Add("newPassword", common.MsgWeakPassword)
	}
	if !verr.Empty() {
		return verr
	}

	user, err := s.GetSelf(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := auth.CheckPassword(user.PasswordHash, oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrorIncorrectPassword
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	repo := s.repomanager.Users(s.handle)
	if err := repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error updating password: %w", err)
	}

	s.logger.Info(ctx, "password updated", "user_id", userID)
	return nil
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		hash, err := auth.HashPassword(dummyPassword, s.bcryptCost)
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
