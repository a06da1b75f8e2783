package session

import (
	"context"
	"encoding/json"
	"fmt"

	"chef-virtual/internal/infrastructure/config"
	"chef-virtual/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// Conversation states of the ordering flow.
const (
	StateAwaitingRecipe    = "esperando_receta"
	StateChoosingRetailer  = "eligiendo_supermercado"
)

// State is one user's conversation state: where they are in the flow and
// the orders pending from their last recipe.
type State struct {
	State      string       `json:"estado"`
	Orders     common.Order `json:"productos,omitempty"`
	LastRecipe string       `json:"ultima_receta,omitempty"`
}

// Store keeps per-user conversation state in Redis.
type Store struct {
	client *redis.Client
	config *config.SessionConfig
}

// NewStore connects to Redis and verifies the connection. A disabled
// session config yields a store that only hands out fresh states.
func NewStore(cfg *config.SessionConfig) (*Store, error) {
	if !cfg.Enabled {
		return &Store{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{
		client: client,
		config: cfg,
	}, nil
}

// Get returns the user's state, starting a new conversation when none
// exists.
func (s *Store) Get(ctx context.Context, userNumber string) (*State, error) {
	if !s.config.Enabled || s.client == nil {
		return newState(), nil
	}

	data, err := s.client.Get(ctx, s.key(userNumber)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return newState(), nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &state, nil
}

// Set stores the user's state with the configured TTL.
func (s *Store) Set(ctx context.Context, userNumber string, state *State) error {
	if !s.config.Enabled || s.client == nil {
		return nil
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(userNumber), data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *Store) key(userNumber string) string {
	return fmt.Sprintf("usuario:%s", userNumber)
}

func newState() *State {
	return &State{State: StateAwaitingRecipe}
}
