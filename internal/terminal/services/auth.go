// Package services contains the terminal application services: selling,
// operator auth with offline grace, catalog mirroring and remittances.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/dmitrijs2005/hammampos/internal/terminal/client"
	"github.com/dmitrijs2005/hammampos/internal/terminal/models"
	"github.com/dmitrijs2005/hammampos/internal/terminal/store"
	"github.com/google/uuid"
)

// AuthService manages the cached operator session. Login is the only
// operation that requires the network; everything else works off the local
// session row.
type AuthService struct {
	client      client.Client
	repos       *store.Repositories
	graceWindow time.Duration
	logger      logging.Logger
}

func NewAuthService(c client.Client, repos *store.Repositories, graceWindow time.Duration, logger logging.Logger) *AuthService {
	return &AuthService{client: c, repos: repos, graceWindow: graceWindow, logger: logger}
}

// Login authenticates against the central service and caches the session,
// including the site context snapshot needed for offline operation.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	resp, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:           uuid.NewString(),
		EmployeeID:   resp.EmployeeID,
		Username:     resp.Username,
		Name:         resp.Name,
		Surname:      resp.Surname,
		HammamID:     resp.HammamID,
		HammamName:   resp.HammamName,
		HammamNameAr: resp.HammamNameAr,
		TicketPrefix: resp.TicketPrefix,
		Token:        resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
		CreatedAt:    time.Now(),
	}
	if err := s.repos.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Current returns the cached session, expired or not.
func (s *AuthService) Current(ctx context.Context) (*models.Session, error) {
	return s.repos.Sessions.Current(ctx)
}

// ValidateForSale returns the session a sale may be recorded under. An
// expired token is still accepted within the grace window so connectivity
// loss never stops selling; past the window the terminal fails closed.
func (s *AuthService) ValidateForSale(ctx context.Context, now time.Time) (*models.Session, error) {
	session, err := s.repos.Sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}

	if now.After(session.ExpiresAt.Add(s.graceWindow)) {
		return nil, common.ErrSessionExpired
	}
	return session, nil
}

// RefreshAccessToken exchanges the stored refresh token for a new pair and
// persists it. When the server no longer accepts the refresh token the local
// session is cleared, forcing a fresh login.
func (s *AuthService) RefreshAccessToken(ctx context.Context) (string, error) {
	session, err := s.repos.Sessions.Current(ctx)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Refresh(ctx, session.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) || errors.Is(err, common.ErrRefreshTokenExpired) {
			s.logger.Warn(ctx, "refresh token no longer valid, clearing session")
			_ = s.repos.Sessions.Clear(ctx)
		}
		return "", err
	}

	if err := s.repos.Sessions.UpdateTokens(ctx, resp.AccessToken, resp.RefreshToken, resp.ExpiresAt.Unix()); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Logout revokes the refresh token server-side (best effort while offline)
// and clears the local session.
func (s *AuthService) Logout(ctx context.Context) error {
	session, err := s.repos.Sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.client.Logout(ctx, session.RefreshToken); err != nil {
		if !errors.Is(err, common.ErrTransport) {
			return err
		}
		s.logger.Warn(ctx, "offline logout, token revoked locally only")
	}

	return s.repos.Sessions.Clear(ctx)
}

// Ping probes server reachability.
func (s *AuthService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
