package client

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/hammampos/internal/common"
)

// DoWithRefresh runs an authenticated request and, if it fails with an
// expired access token, refreshes credentials and retries exactly once. The
// policy is stateless and never recurses: a second expiry surfaces to the
// caller, which clears the session.
func DoWithRefresh(ctx context.Context,
	token string,
	do func(ctx context.Context, token string) error,
	refresh func(ctx context.Context) (string, error),
) error {
	err := do(ctx, token)
	if !errors.Is(err, common.ErrTokenExpired) {
		return err
	}

	newToken, err := refresh(ctx)
	if err != nil {
		return err
	}
	return do(ctx, newToken)
}
