package effect

import (
	"fmt"
	"strings"
)

// registry maps effect name → factory taking the effect magnitude.
var registry = map[string]func(magnitude float64) Effect{}

// Register registers an effect factory by name. Names are case-insensitive.
func Register(name string, factory func(magnitude float64) Effect) {
	registry[strings.ToLower(name)] = factory
}

// Create creates an effect by name using the registered factory.
// Returns error if name is not registered.
func Create(name string, magnitude float64) (Effect, error) {
	factory, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown effect type: %s", name)
	}
	return factory(magnitude), nil
}

func init() {
	Register("poison", func(m float64) Effect { return NewPoison(m) })
	Register("stun", func(float64) Effect { return NewStun() })
	Register("extra_defense", func(m float64) Effect { return NewExtraDefense(m) })
}
