package internal

import (
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
)

// FallbackFontEnvVar points at a TTF file used instead of the built-in Go font,
// for scripts the Go font does not cover.
const FallbackFontEnvVar = "FALLBACK_FONT"

type FontSizes struct {
	Title int
	Body  int
	Small int
}

// DefaultFontSizes are in logical pixels at a 1024 pixel wide window.
var DefaultFontSizes = FontSizes{
	Title: 18,
	Body:  14,
	Small: 12,
}

var Fonts fontsManager

type fontsManager struct {
	TitleFont *ttf.Font
	BodyFont  *ttf.Font
	SmallFont *ttf.Font
	KeyFont   *ttf.Font
}

// CalculateFontSizeForResolution scales baseSize with the window width,
// damping the growth above the 1024 pixel reference.
func CalculateFontSizeForResolution(baseSize int, screenWidth int32) int {
	return int(float32(baseSize) * scaleFor(screenWidth))
}

func scaleFor(screenWidth int32) float32 {
	const referenceWidth int32 = 1024
	scaleFactor := float32(screenWidth) / float32(referenceWidth)

	if screenWidth > referenceWidth {
		scaleFactor = 1.0 + (scaleFactor-1.0)*0.75
	}
	return max(scaleFactor, 0.75)
}

func initFonts(sizes FontSizes, screenWidth int32) error {
	fallback := os.Getenv(FallbackFontEnvVar)

	calcSize := func(base int) int {
		return CalculateFontSizeForResolution(base, screenWidth)
	}

	var err error
	load := func(data []byte, size int) *ttf.Font {
		if err != nil {
			return nil
		}
		var font *ttf.Font
		font, err = loadFont(fallback, data, calcSize(size))
		return font
	}

	Fonts = fontsManager{
		TitleFont: load(gobold.TTF, sizes.Title),
		BodyFont:  load(goregular.TTF, sizes.Body),
		SmallFont: load(goregular.TTF, sizes.Small),
		KeyFont:   load(gobold.TTF, sizes.Body),
	}
	return err
}

func loadFont(fallback string, embedded []byte, size int) (*ttf.Font, error) {
	if fallback != "" {
		font, err := ttf.OpenFont(fallback, size)
		if err == nil {
			return font, nil
		}
		logging.GetInternalLogger().Debug("Failed to load fallback font, using embedded font", "fallback", fallback, "error", err)
	}

	return loadEmbeddedFont(embedded, size)
}

func loadEmbeddedFont(data []byte, size int) (*ttf.Font, error) {
	rw, err := sdl.RWFromMem(data)
	if err != nil {
		return nil, fmt.Errorf("failed to create RW from embedded font: %w", err)
	}

	font, err := ttf.OpenFontRW(rw, 1, size)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded font at size %d: %w", size, err)
	}

	return font, nil
}

func closeFonts() {
	for _, font := range []*ttf.Font{Fonts.TitleFont, Fonts.BodyFont, Fonts.SmallFont, Fonts.KeyFont} {
		if font != nil {
			font.Close()
		}
	}
	Fonts = fontsManager{}
}
