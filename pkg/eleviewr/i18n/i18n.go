// Package i18n localises every user-facing string of the viewer.
//
// The English and Spanish message files are embedded; the bundle is built on
// first use so callers never need to initialise it explicitly.
package i18n

import (
	"embed"
	"encoding/json"
	"path"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.toml
var locales embed.FS

var (
	mu sync.RWMutex
	i  *I18N
)

type I18N struct {
	localizer *i18n.Localizer
	bundle    *i18n.Bundle
}

type MessageFile struct {
	Name    string
	Content []byte
}

// Message is an alias for i18n.Message so callers don't import go-i18n directly.
type Message = i18n.Message

func newBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	return bundle
}

func embeddedFiles() ([]MessageFile, error) {
	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, err
	}

	files := make([]MessageFile, 0, len(entries))
	for _, entry := range entries {
		content, err := locales.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, MessageFile{Name: entry.Name(), Content: content})
	}
	return files, nil
}

// Init builds the bundle from the embedded message files plus any extra
// files given, and selects the first language of langs that is available.
func Init(langs []string, extra ...MessageFile) error {
	files, err := embeddedFiles()
	if err != nil {
		return err
	}

	bundle := newBundle()
	for _, messageFile := range append(files, extra...) {
		if _, err := bundle.ParseMessageFileBytes(messageFile.Content, messageFile.Name); err != nil {
			return err
		}
	}

	mu.Lock()
	defer mu.Unlock()
	i = &I18N{
		localizer: i18n.NewLocalizer(bundle, append(langs, language.English.String())...),
		bundle:    bundle,
	}
	return nil
}

func current() *I18N {
	mu.RLock()
	loaded := i
	mu.RUnlock()

	if loaded != nil {
		return loaded
	}

	if err := Init(nil); err != nil {
		mu.Lock()
		defer mu.Unlock()
		if i == nil {
			bundle := newBundle()
			i = &I18N{localizer: i18n.NewLocalizer(bundle, language.English.String()), bundle: bundle}
		}
		return i
	}

	mu.RLock()
	defer mu.RUnlock()
	return i
}

func SetLanguage(lang language.Tag) {
	bundle := current().bundle

	mu.Lock()
	defer mu.Unlock()
	i = &I18N{localizer: i18n.NewLocalizer(bundle, lang.String(), language.English.String()), bundle: bundle}
}

func SetWithCode(code string) error {
	lang, err := language.Parse(code)
	if err != nil {
		return err
	}
	SetLanguage(lang)
	return nil
}

// Localize renders message in the active language, falling back to the
// message's own text when there is no translation.
func Localize(message *Message, templateData map[string]interface{}) string {
	if message == nil {
		return "I18N Error: nil message"
	}

	config := &i18n.LocalizeConfig{
		DefaultMessage: message,
	}

	if templateData != nil {
		config.TemplateData = templateData
	}

	msg, err := current().localizer.Localize(config)
	if err != nil {
		if message.Other != "" {
			return message.Other
		}
		return "I18N Error"
	}
	return msg
}

// LocalizePlural is Localize with a plural count.
func LocalizePlural(message *Message, count int, templateData map[string]interface{}) string {
	if message == nil {
		return "I18N Error: nil message"
	}

	config := &i18n.LocalizeConfig{
		DefaultMessage: message,
		PluralCount:    count,
	}

	if templateData != nil {
		config.TemplateData = templateData
	}

	msg, err := current().localizer.Localize(config)
	if err != nil {
		if message.Other != "" {
			return message.Other
		}
		return "I18N Error"
	}
	return msg
}
