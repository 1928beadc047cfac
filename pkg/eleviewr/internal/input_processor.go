package internal

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/interaction"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/keymap"
)

// Processor turns keyboard events into the actions bound to the key.
type Processor struct {
	bindings keymap.Bindings
}

func NewInputProcessor(bindings keymap.Bindings) *Processor {
	return &Processor{bindings: bindings}
}

// ProcessKeyboardEvent returns the actions bound to a fresh key press.
// Releases and auto-repeats yield nil.
func (ip *Processor) ProcessKeyboardEvent(e *sdl.KeyboardEvent) []interaction.Action {
	if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
		return nil
	}

	logger := logging.GetInternalLogger()

	keyCode := e.Keysym.Sym
	keyName := sdl.GetKeyName(keyCode)

	actions := ip.bindings.Lookup(keyName)
	if len(actions) == 0 {
		logger.Debug("Keyboard input not mapped", "key_code", fmt.Sprintf("%s (%d)", keyName, keyCode))
		return nil
	}

	logger.Debug("Keyboard input mapped",
		"physical", keyName,
		"keyCode", fmt.Sprintf("%s (%d)", keyName, keyCode),
		"actions", actions)
	return actions
}
