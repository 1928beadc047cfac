package keymap

import (
	"strings"
	"unicode"
)

// aliases maps shorthand names accepted in the config file to SDL key names.
var aliases = map[string]string{
	"esc":    "escape",
	"larrow": "left",
	"rarrow": "right",
	"uarrow": "up",
	"darrow": "down",
	"enter":  "return",
}

var namedKeys = map[string]struct{}{
	"escape":    {},
	"left":      {},
	"right":     {},
	"up":        {},
	"down":      {},
	"space":     {},
	"return":    {},
	"tab":       {},
	"backspace": {},
	"delete":    {},
	"home":      {},
	"end":       {},
	"pageup":    {},
	"pagedown":  {},
}

// Canonical lower-cases name, resolves aliases and reports whether the
// result is a key the viewer can bind. SDL key names such as "Left" or
// "PageUp" canonicalise to the same value as their config spelling.
func Canonical(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "")

	if alias, ok := aliases[key]; ok {
		key = alias
	}

	if _, ok := namedKeys[key]; ok {
		return key, true
	}

	if len(key) == 1 {
		r := rune(key[0])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return key, true
		}
	}

	if len(key) >= 2 && len(key) <= 3 && key[0] == 'f' {
		switch key[1:] {
		case "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12":
			return key, true
		}
	}

	return key, false
}

// DisplayName renders a canonical key name for on-screen hints.
func DisplayName(key string) string {
	switch key {
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "escape":
		return "Esc"
	case "pageup":
		return "PgUp"
	case "pagedown":
		return "PgDn"
	}

	if len(key) <= 3 {
		return strings.ToUpper(key)
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// splitKeys parses a comma separated key list, returning the canonical
// names that are known and the raw names that are not.
func splitKeys(list string) (known []string, unknown []string) {
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		key, ok := Canonical(part)
		if !ok {
			unknown = append(unknown, strings.TrimSpace(part))
			continue
		}
		known = append(known, key)
	}
	return known, unknown
}
