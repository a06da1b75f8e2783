package users

import (
	"fmt"
	"sync"

	"chef-virtual/internal/pkg/common"

	"go.uber.org/zap"
)

// Registry maps phone numbers to display names. Unknown numbers are
// registered on first contact with their profile name, or with a generated
// placeholder when the channel did not supply one.
type Registry struct {
	mu    sync.Mutex
	names map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]string)}
}

// Resolve returns the name registered for the number, registering it first
// if needed.
func (r *Registry) Resolve(number, profileName string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name, ok := r.names[number]; ok {
		return name
	}

	name := profileName
	if name == "" {
		name = fmt.Sprintf("Usuario%d", len(r.names)+1)
	}
	r.names[number] = name

	common.LogInfo("new user registered",
		zap.String("number", number),
		zap.String("name", name),
	)
	return name
}
