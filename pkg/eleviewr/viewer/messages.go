package viewer

import "github.com/eleviewr/eleviewr/pkg/eleviewr/i18n"

var (
	msgLoadingImage          = &i18n.Message{ID: "loading_image", Other: "Loading image: {{.Path}}"}
	msgNextImage             = &i18n.Message{ID: "next_image", Other: "Next image: {{.Title}}"}
	msgPreviousImage         = &i18n.Message{ID: "previous_image", Other: "Previous image: {{.Title}}"}
	msgLoadFailed            = &i18n.Message{ID: "load_failed", Other: "Failed to load image: {{.Error}}"}
	msgNoImageSelected       = &i18n.Message{ID: "no_image_selected", Other: "No image selected."}
	msgWallpaperSet          = &i18n.Message{ID: "wallpaper_set", Other: "Wallpaper set to: {{.Path}}"}
	msgWallpaperPreload      = &i18n.Message{ID: "wallpaper_preload_failed", Other: "Failed to preload image: {{.Detail}}"}
	msgWallpaperApply        = &i18n.Message{ID: "wallpaper_apply_failed", Other: "Failed to set wallpaper: {{.Detail}}"}
	msgWallpaperError        = &i18n.Message{ID: "wallpaper_error", Other: "Error setting wallpaper: {{.Error}}"}
	msgImageDeleted          = &i18n.Message{ID: "image_deleted", Other: "Deleted image: {{.Path}} ({{.Size}})"}
	msgDeleteFailed          = &i18n.Message{ID: "delete_failed", Other: "Failed to delete image: {{.Error}}"}
	msgDeletePrompt          = &i18n.Message{ID: "delete_prompt", Other: "Delete confirmation: {{.Confirm}}=Yes, {{.Cancel}}=No, {{.Always}}=Don't ask again"}
	msgDeleteCancelled       = &i18n.Message{ID: "delete_cancelled", Other: "Delete cancelled."}
	msgDeleteConfirmDisabled = &i18n.Message{ID: "delete_confirm_disabled", Other: "Delete confirmation disabled for this session."}
	msgCatalogEmpty          = &i18n.Message{ID: "catalog_empty", Other: "No images left in {{.Dir}}"}
	msgDirectoryRescanned    = &i18n.Message{
		ID:    "directory_rescanned",
		One:   "Directory changed: {{.Count}} image",
		Other: "Directory changed: {{.Count}} images",
	}
)
