package eleviewr

import "github.com/eleviewr/eleviewr/pkg/eleviewr/i18n"

var (
	msgEmptyScreen   = &i18n.Message{ID: "empty_screen", Other: "No images"}
	msgModalTitle    = &i18n.Message{ID: "modal_title", Other: "DELETE CONFIRMATION"}
	msgModalQuestion = &i18n.Message{ID: "modal_question", Other: "Are you sure you want to delete this image?"}
	msgModalYes      = &i18n.Message{ID: "modal_yes", Other: "Yes"}
	msgModalNo       = &i18n.Message{ID: "modal_no", Other: "No"}
	msgModalAlways   = &i18n.Message{ID: "modal_always", Other: "Don't ask again"}
)

var (
	msgHintPrevious  = &i18n.Message{ID: "hint_previous", Other: "Previous"}
	msgHintNext      = &i18n.Message{ID: "hint_next", Other: "Next"}
	msgHintWallpaper = &i18n.Message{ID: "hint_wallpaper", Other: "Wallpaper"}
	msgHintDelete    = &i18n.Message{ID: "hint_delete", Other: "Delete"}
	msgHintExit      = &i18n.Message{ID: "hint_exit", Other: "Quit"}
)
