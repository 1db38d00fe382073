package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/api"
	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/dbx"
	"github.com/dmitrijs2005/hammampos/internal/server/auth"
	sc "github.com/dmitrijs2005/hammampos/internal/server/config"
	"github.com/dmitrijs2005/hammampos/internal/server/models"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates operators and manages the rotating refresh
// token lifecycle.
type AuthService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	config *sc.Config
}

func NewAuthService(db *sql.DB, repos repomanager.RepositoryManager, config *sc.Config) *AuthService {
	return &AuthService{db: db, repos: repos, config: config}
}

// Login verifies the operator's credentials and returns an access/refresh
// token pair plus the site context snapshot the terminal caches for offline
// operation.
func (s *AuthService) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	employeeRepo := s.repos.Employees(s.db)

	employee, err := employeeRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrUnauthorized
	}

	hammam, err := employeeRepo.GetHammam(ctx, employee.HammamID)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, expiresAt, err := s.issueTokens(ctx, s.db, employee.ID)
	if err != nil {
		return nil, err
	}

	return &api.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		EmployeeID:   employee.ID,
		Username:     employee.Username,
		Name:         employee.Name,
		Surname:      employee.Surname,
		HammamID:     hammam.ID,
		HammamName:   hammam.Name,
		HammamNameAr: hammam.NameAr,
		TicketPrefix: hammam.TicketPrefix,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The old
// refresh token is consumed in the same transaction that stores the new one,
// so each token refreshes at most once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*api.RefreshResponse, error) {
	stored, err := s.repos.RefreshTokens(s.db).Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}

	if time.Now().After(stored.ExpiresAt) {
		return nil, common.ErrRefreshTokenExpired
	}

	var resp *api.RefreshResponse
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return err
		}
		accessToken, newRefreshToken, expiresAt, err := s.issueTokens(ctx, tx, stored.EmployeeID)
		if err != nil {
			return err
		}
		resp = &api.RefreshResponse{AccessToken: accessToken, RefreshToken: newRefreshToken, ExpiresAt: expiresAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Logout invalidates the given refresh token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.repos.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, db dbx.DBTX, employeeID string) (string, string, time.Time, error) {
	expiresAt := time.Now().Add(s.config.AccessTokenValidityDuration)

	accessToken, err := auth.GenerateToken(employeeID, []byte(s.config.SecretKey), s.config.AccessTokenValidityDuration)
	if err != nil {
		return "", "", time.Time{}, err
	}

	refreshToken := uuid.NewString()
	err = s.repos.RefreshTokens(db).Add(ctx, &models.RefreshToken{
		Token:      refreshToken,
		EmployeeID: employeeID,
		ExpiresAt:  time.Now().Add(s.config.RefreshTokenValidityDuration),
	})
	if err != nil {
		return "", "", time.Time{}, err
	}

	return accessToken, refreshToken, expiresAt, nil
}
