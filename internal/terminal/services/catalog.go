package services

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/api"
	"github.com/dmitrijs2005/hammampos/internal/dbx"
	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/dmitrijs2005/hammampos/internal/terminal/client"
	"github.com/dmitrijs2005/hammampos/internal/terminal/models"
	catalogrepo "github.com/dmitrijs2005/hammampos/internal/terminal/repositories/catalog"
	"github.com/dmitrijs2005/hammampos/internal/terminal/store"
)

const catalogRefreshedAtKey = "catalog_refreshed_at"

// CatalogService maintains the local mirror of the central catalog.
type CatalogService struct {
	client   client.Client
	repos    *store.Repositories
	auth     *AuthService
	imageDir string
	logger   logging.Logger
}

func NewCatalogService(c client.Client, repos *store.Repositories, auth *AuthService, imageDir string, logger logging.Logger) *CatalogService {
	return &CatalogService{client: c, repos: repos, auth: auth, imageDir: imageDir, logger: logger}
}

// List serves the snapshot from the local mirror; it never hits the network.
func (s *CatalogService) List(ctx context.Context) ([]*models.TicketType, error) {
	return s.repos.Catalog.List(ctx)
}

// Refresh replaces the local snapshot with the server's catalog. The swap
// happens only after a fully successful fetch; on any failure the previous
// snapshot stays in place and selling continues.
func (s *CatalogService) Refresh(ctx context.Context) error {
	session, err := s.auth.Current(ctx)
	if err != nil {
		return err
	}

	var resp *api.CatalogResponse
	err = client.DoWithRefresh(ctx, session.Token,
		func(ctx context.Context, token string) error {
			r, err := s.client.FetchCatalog(ctx, token)
			if err != nil {
				return err
			}
			resp = r
			return nil
		},
		s.RefreshAccessToken)
	if err != nil {
		return err
	}

	types := make([]*models.TicketType, 0, len(resp.Items))
	for _, item := range resp.Items {
		types = append(types, &models.TicketType{
			ID:        item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Color:     item.Color,
			Icon:      item.Icon,
			ImageURL:  item.ImageURL,
			SortOrder: item.SortOrder,
		})
	}

	err = dbx.WithTx(ctx, s.repos.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return catalogrepo.NewSQLiteRepository(tx).ReplaceAll(ctx, types)
	})
	if err != nil {
		return err
	}

	if err := s.repos.KV.Set(ctx, catalogRefreshedAtKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	s.downloadImages(ctx, types)
	return nil
}

// RefreshAccessToken adapts the auth service for DoWithRefresh.
func (s *CatalogService) RefreshAccessToken(ctx context.Context) (string, error) {
	return s.auth.RefreshAccessToken(ctx)
}

// downloadImages opportunistically caches type images locally. Failures are
// logged and skipped; the catalog stays usable without images.
func (s *CatalogService) downloadImages(ctx context.Context, types []*models.TicketType) {
	if err := os.MkdirAll(s.imageDir, 0o755); err != nil {
		s.logger.Warn(ctx, "cannot create image dir", "dir", s.imageDir, "error", err)
		return
	}

	for _, t := range types {
		if t.ImageURL == "" || t.LocalImagePath != "" {
			continue
		}

		data, err := s.client.DownloadImage(ctx, t.ImageURL)
		if err != nil {
			s.logger.Warn(ctx, "image download failed", "type", t.ID, "error", err)
			continue
		}

		path := filepath.Join(s.imageDir, t.ID+".png")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			s.logger.Warn(ctx, "image write failed", "type", t.ID, "error", err)
			continue
		}
		if err := s.repos.Catalog.SetLocalImagePath(ctx, t.ID, path); err != nil {
			s.logger.Warn(ctx, "image path update failed", "type", t.ID, "error", err)
		}
	}
}
