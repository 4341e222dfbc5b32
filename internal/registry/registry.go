// Package registry provides a global registry for target selection policies.
// Policies register themselves in init() functions, allowing the planner
// and the CLI to look them up by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/drone-dodger/internal/core"
)

// Policy picks one free interval for the craft to head to.
type Policy interface {
	// Name returns the unique identifier used in configuration (e.g., "largest").
	Name() string

	// Description returns a one-line summary for display.
	Description() string

	// Select chooses a target among the free intervals.
	// craftCenter is the craft's current vertical center.
	// Returns false when zones is empty.
	Select(zones []core.Interval, craftCenter float64) (core.Interval, bool)
}

// PolicyInfo contains metadata about a registered policy.
type PolicyInfo struct {
	Name        string
	Description string
}

// Factory is a function that creates a new instance of a policy.
type Factory func() Policy

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a policy factory to the registry.
// Typically called from a policy's init() function.
// Panics if a policy with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: policy %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = f().Description()
}

// List returns information about all registered policies, sorted by name.
func List() []PolicyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PolicyInfo, 0, len(factories))
	for name := range factories {
		result = append(result, PolicyInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a policy by its name.
// Returns an error if the name is not registered.
func Create(name string) (Policy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown policy %q", name)
	}

	return f(), nil
}

// Exists checks if a policy with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
