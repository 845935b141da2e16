// Package i18n localises menu titles and widget labels. Until InitI18N or
// InitI18NFromBytes succeeds every lookup returns its fallback text, so menus
// work without message files.
package i18n

import (
	"encoding/json"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

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

// Message is an alias for i18n.Message so callers need not import go-i18n.
type Message = i18n.Message

func newBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

func install(bundle *i18n.Bundle, langs ...string) {
	mu.Lock()
	defer mu.Unlock()
	i = &I18N{localizer: i18n.NewLocalizer(bundle, langs...), bundle: bundle}
}

func InitI18N(messageFilePaths []string) error {
	bundle := newBundle()

	for _, messageFile := range messageFilePaths {
		if _, err := bundle.LoadMessageFile(messageFile); err != nil {
			return err
		}
	}

	install(bundle, language.English.String())
	return nil
}

func InitI18NFromBytes(messageFiles []MessageFile) error {
	bundle := newBundle()

	for _, messageFile := range messageFiles {
		if _, err := bundle.ParseMessageFileBytes(messageFile.Content, messageFile.Name); err != nil {
			return err
		}
	}

	install(bundle, language.English.String())
	return nil
}

// Reset drops the loaded bundle; lookups fall back to their keys again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	i = nil
}

func Initialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return i != nil
}

func SetLanguage(lang language.Tag) {
	mu.Lock()
	defer mu.Unlock()
	if i == nil {
		return
	}
	i = &I18N{localizer: i18n.NewLocalizer(i.bundle, lang.String(), language.English.String()), bundle: i.bundle}
}

func SetWithCode(code string) error {
	lang, err := language.Parse(code)
	if err != nil {
		return err
	}
	SetLanguage(lang)
	return nil
}

func current() *I18N {
	mu.RLock()
	defer mu.RUnlock()
	return i
}

// Translate looks key up as a message ID and returns key itself when there
// is no bundle or no translation. Widget labels go through here.
func Translate(key string) string {
	loc := current()
	if loc == nil || key == "" {
		return key
	}
	msg, err := loc.localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		return key
	}
	return msg
}

// GetStringWithData retrieves a localized string by key with template data.
func GetStringWithData(key string, templateData map[string]interface{}) string {
	loc := current()
	if loc == nil {
		return key
	}
	msg, err := loc.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData,
	})
	if err != nil {
		return key
	}
	return msg
}

// Localize resolves message in the current language, falling back to message.Other.
//
//	i18n.Localize(&i18n.Message{
//	    ID:    "difficulty",
//	    Other: "Difficulty ",
//	}, nil)
func Localize(message *Message, templateData map[string]interface{}) string {
	if message == nil {
		return ""
	}

	loc := current()
	if loc == nil {
		return message.Other
	}

	config := &i18n.LocalizeConfig{
		DefaultMessage: message,
	}
	if templateData != nil {
		config.TemplateData = templateData
	}

	msg, err := loc.localizer.Localize(config)
	if err != nil {
		return message.Other
	}
	return msg
}
