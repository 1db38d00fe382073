package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/terminal/repositories/kv"
	"github.com/google/uuid"
)

const deviceIDKey = "device_id"

// EnsureDeviceID resolves the terminal's stable device id. A configured id
// wins and is persisted; otherwise the stored one is reused, and a brand-new
// terminal generates one on first start.
func EnsureDeviceID(ctx context.Context, repo kv.Repository, configured string) (string, error) {
	if configured != "" {
		if err := repo.Set(ctx, deviceIDKey, configured); err != nil {
			return "", err
		}
		return configured, nil
	}

	stored, err := repo.Get(ctx, deviceIDKey)
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return "", err
	}

	id := uuid.NewString()
	if err := repo.Set(ctx, deviceIDKey, id); err != nil {
		return "", err
	}
	return id, nil
}
