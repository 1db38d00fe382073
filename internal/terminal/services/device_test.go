package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDeviceID_ConfiguredWins(t *testing.T) {
	repos := testStore(t)

	id, err := EnsureDeviceID(context.Background(), repos.KV, "kiosk-9")
	require.NoError(t, err)
	assert.Equal(t, "kiosk-9", id)

	stored, err := repos.KV.Get(context.Background(), "device_id")
	require.NoError(t, err)
	assert.Equal(t, "kiosk-9", stored)
}

func TestEnsureDeviceID_GeneratedOnceThenStable(t *testing.T) {
	repos := testStore(t)
	ctx := context.Background()

	first, err := EnsureDeviceID(ctx, repos.KV, "")
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := EnsureDeviceID(ctx, repos.KV, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
