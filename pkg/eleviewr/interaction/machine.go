// Package interaction resolves logical actions against the viewer's current
// mode. It holds no state of its own: callers thread State through Resolve.
package interaction

import "github.com/eleviewr/eleviewr/pkg/eleviewr/catalog"

// Action is a logical action name produced by the key bindings.
type Action string

const (
	ActionExit          Action = "exit"
	ActionNextImage     Action = "next_image"
	ActionPreviousImage Action = "previous_image"
	ActionSetWallpaper  Action = "set_wallpaper"
	ActionDeleteImage   Action = "delete_image"
	ActionConfirmDelete Action = "confirm_delete"
	ActionCancelDelete  Action = "cancel_delete"
	ActionAlwaysDelete  Action = "always_delete"
)

// Actions lists every action in binding order.
var Actions = []Action{
	ActionPreviousImage,
	ActionNextImage,
	ActionExit,
	ActionSetWallpaper,
	ActionDeleteImage,
	ActionConfirmDelete,
	ActionCancelDelete,
	ActionAlwaysDelete,
}

type Mode int

const (
	ModeNormal Mode = iota
	ModeDeleteConfirmation
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeDeleteConfirmation:
		return "delete_confirmation"
	default:
		return "unknown"
	}
}

// State is the session state consulted on each key press.
// SkipConfirm is set once by always_delete and never cleared.
type State struct {
	Mode        Mode
	SkipConfirm bool
}

type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectRequestExit
	EffectNavigate
	EffectSetWallpaper
	EffectDeleteNow
	EffectShowDeleteConfirmation
	EffectCancelDelete
)

func (k EffectKind) String() string {
	switch k {
	case EffectNone:
		return "none"
	case EffectRequestExit:
		return "request_exit"
	case EffectNavigate:
		return "navigate"
	case EffectSetWallpaper:
		return "set_wallpaper"
	case EffectDeleteNow:
		return "delete_now"
	case EffectShowDeleteConfirmation:
		return "show_delete_confirmation"
	case EffectCancelDelete:
		return "cancel_delete"
	default:
		return "unknown"
	}
}

// Effect is what the orchestrator must do after a resolution.
// Direction is only meaningful for EffectNavigate; SkipConfirmSet marks the
// always_delete transition.
type Effect struct {
	Kind           EffectKind
	Direction      catalog.Direction
	SkipConfirmSet bool
}

func (e Effect) IsNone() bool {
	return e.Kind == EffectNone
}

// Resolve maps (state, action) to the next state and an effect.
// Unknown combinations return the state unchanged and EffectNone.
func Resolve(state State, action Action) (State, Effect) {
	switch state.Mode {
	case ModeNormal:
		switch action {
		case ActionExit:
			return state, Effect{Kind: EffectRequestExit}
		case ActionNextImage:
			return state, Effect{Kind: EffectNavigate, Direction: catalog.Next}
		case ActionPreviousImage:
			return state, Effect{Kind: EffectNavigate, Direction: catalog.Previous}
		case ActionSetWallpaper:
			return state, Effect{Kind: EffectSetWallpaper}
		case ActionDeleteImage:
			if state.SkipConfirm {
				return state, Effect{Kind: EffectDeleteNow}
			}
			state.Mode = ModeDeleteConfirmation
			return state, Effect{Kind: EffectShowDeleteConfirmation}
		}

	case ModeDeleteConfirmation:
		switch action {
		case ActionConfirmDelete:
			state.Mode = ModeNormal
			return state, Effect{Kind: EffectDeleteNow}
		case ActionCancelDelete:
			state.Mode = ModeNormal
			return state, Effect{Kind: EffectCancelDelete}
		case ActionAlwaysDelete:
			state.Mode = ModeNormal
			state.SkipConfirm = true
			return state, Effect{Kind: EffectDeleteNow, SkipConfirmSet: true}
		}
	}

	return state, Effect{Kind: EffectNone}
}

// ResolveFirst resolves the actions bound to a single key in order and
// returns the first resolution that has an effect.
func ResolveFirst(state State, actions []Action) (State, Effect) {
	for _, action := range actions {
		next, effect := Resolve(state, action)
		if !effect.IsNone() {
			return next, effect
		}
	}
	return state, Effect{Kind: EffectNone}
}
