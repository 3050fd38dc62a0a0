// Package lang guesses the language of a short question from a closed set of
// supported languages, so answers and fallback messages match the asker.
package lang

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Detector classifies text into one of the supported language tags,
// defaulting to English when undetermined. Implementations are best-effort;
// the closed set and the default are the contract.
type Detector interface {
	Detect(text string) language.Tag
}

// Supported is the closed set of languages the assistant answers in.
var Supported = []language.Tag{language.English, language.Portuguese, language.Dutch}

// Name returns the English display name used in prompts ("Portuguese").
func Name(tag language.Tag) string {
	return display.English.Languages().Name(tag)
}

var ptAccents = regexp.MustCompile(`[áàâãéêíóôõúç]`)

var ptMarkers = wordSet("você", "vc", "quê", "qual", "quais", "onde", "quando", "porque", "não", "obrigado", "obrigada")

var nlMarkers = wordSet("waar", "hoe", "wat", "wanneer", "welke", "jij", "je", "niet", "alstublieft", "dank", "naar", "over")

type markerDetector struct{}

// NewMarkerDetector returns the marker-word/character-class heuristic
// detector. It is intentionally small; a model-based identifier can replace
// it behind the same interface.
func NewMarkerDetector() Detector {
	return markerDetector{}
}

func (markerDetector) Detect(text string) language.Tag {
	t := strings.ToLower(text)
	words := strings.FieldsFunc(t, func(r rune) bool { return !unicode.IsLetter(r) })

	if ptAccents.MatchString(t) {
		return language.Portuguese
	}
	for _, w := range words {
		if ptMarkers[w] {
			return language.Portuguese
		}
	}
	for _, w := range words {
		if nlMarkers[w] {
			return language.Dutch
		}
	}
	return language.English
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
