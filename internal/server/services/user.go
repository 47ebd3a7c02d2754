// Package services implements the domain operations behind the REST API:
// credential handling and token issuance, and todo CRUD with attachment
// bookkeeping.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/dbx"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/repomanager"
)

// tokenByteLen is the number of random bytes behind each issued token,
// 32 bytes gives 256 bits of entropy.
const tokenByteLen = 32

// UserService verifies email/password pairs, issues opaque bearer tokens and
// resolves them back to users.
type UserService struct {
	db         *sql.DB
	repos      repomanager.RepositoryManager
	bcryptCost int
}

// NewUserService constructs a UserService on top of the given connection
// and repository manager.
func NewUserService(db *sql.DB, repos repomanager.RepositoryManager, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{db: db, repos: repos, bcryptCost: bcryptCost}
}

// issueToken creates a fresh opaque token for userID and stores it through tx.
// The raw token is returned to the caller exactly once.
func (s *UserService) issueToken(ctx context.Context, tx dbx.DBTX, userID int64) (string, error) {
	token, err := common.RandHex(tokenByteLen)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	if err := s.repos.Tokens(tx).Create(ctx, userID, token); err != nil {
		return "", err
	}
	return token, nil
}

// Register persists a new user with a bcrypt-hashed password and issues a
// bearer token, both inside one transaction. A duplicate email surfaces as
// common.ErrorEmailTaken.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	var user *models.User
	var token string

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repos.Users(tx).Create(ctx, &models.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
		})
		if err != nil {
			return err
		}

		token, err = s.issueToken(ctx, tx, u.ID)
		if err != nil {
			return err
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies the email/password pair and issues a new bearer token.
// Unknown email and password mismatch are indistinguishable to the caller,
// both yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {

	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.ErrorInvalidCredentials
	}

	token, err := s.issueToken(ctx, s.db, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Authenticate resolves a bearer token to its owning user. An absent or
// unknown token yields common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {

	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	authToken, err := s.repos.Tokens(s.db).Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, authToken.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	return user, nil
}
