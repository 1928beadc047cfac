package keymap

import "github.com/eleviewr/eleviewr/pkg/eleviewr/interaction"

// Bindings resolves canonical key names to the actions bound to them.
// A key can carry several actions; they are kept in binding order.
type Bindings struct {
	byKey    map[string][]interaction.Action
	byAction map[interaction.Action][]string
}

func (c *Config) Bindings() Bindings {
	b := Bindings{
		byKey:    make(map[string][]interaction.Action),
		byAction: make(map[interaction.Action][]string),
	}

	for _, binding := range c.actionBindings() {
		known, _ := splitKeys(binding.keys)
		for _, key := range known {
			if contains(b.byKey[key], binding.action) {
				continue
			}
			b.byKey[key] = append(b.byKey[key], binding.action)
			b.byAction[binding.action] = append(b.byAction[binding.action], key)
		}
	}
	return b
}

// DefaultBindings is the binding table of DefaultConfig.
func DefaultBindings() Bindings {
	return DefaultConfig().Bindings()
}

// Lookup returns the actions bound to a key name, which may be an SDL key
// name in any case or a config alias.
func (b Bindings) Lookup(name string) []interaction.Action {
	key, ok := Canonical(name)
	if !ok {
		return nil
	}
	return b.byKey[key]
}

// Keys returns the canonical key names bound to action in config order.
func (b Bindings) Keys(action interaction.Action) []string {
	return b.byAction[action]
}

// Hint is the display name of the first key bound to action, or "" if unbound.
func (b Bindings) Hint(action interaction.Action) string {
	keys := b.byAction[action]
	if len(keys) == 0 {
		return ""
	}
	return DisplayName(keys[0])
}

func contains(actions []interaction.Action, action interaction.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
