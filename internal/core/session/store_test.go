package session

import (
	"context"
	"testing"
	"time"

	"chef-virtual/internal/infrastructure/config"
	"chef-virtual/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledStoreHandsOutFreshStates(t *testing.T) {
	store, err := NewStore(&config.SessionConfig{Enabled: false})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	state, err := store.Get(ctx, "59899123456")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingRecipe, state.State)
	assert.Nil(t, state.Orders)

	// Writes are accepted and dropped; the next read starts over.
	err = store.Set(ctx, "59899123456", &State{
		State:  StateChoosingRetailer,
		Orders: common.Order{common.RetailerDisco: &common.RetailerOrder{Retailer: common.RetailerDisco}},
	})
	require.NoError(t, err)

	state, err = store.Get(ctx, "59899123456")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingRecipe, state.State)
}

func TestNewStoreFailsFastOnUnreachableRedis(t *testing.T) {
	_, err := NewStore(&config.SessionConfig{
		Enabled:   true,
		RedisAddr: "127.0.0.1:1",
		TTL:       time.Minute,
	})
	assert.Error(t, err)
}

func TestSessionKey(t *testing.T) {
	store := &Store{config: &config.SessionConfig{}}
	assert.Equal(t, "usuario:59899123456", store.key("59899123456"))
}
