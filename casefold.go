package autonorm

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A Folder normalizes the case of words before they are
// matched against an embedding vocabulary.
//
// By default, a Folder lower-cases words using generic
// Unicode rules.
type Folder struct {
	// Language is a BCP 47 tag, such as "en" or "tr",
	// selecting language-specific casing rules.
	// Unknown tags fall back to the generic rules.
	Language string

	// PreserveCase, if true, indicates that words should
	// not be converted to lowercase.
	PreserveCase bool
}

// Fold produces the normalized form of each word.
func (f *Folder) Fold(words []string) []string {
	res := make([]string, len(words))
	if f.PreserveCase {
		copy(res, words)
		return res
	}
	caser := cases.Lower(f.tag())
	for i, w := range words {
		res[i] = caser.String(w)
	}
	return res
}

func (f *Folder) tag() language.Tag {
	if f.Language == "" {
		return language.Und
	}
	tag, err := language.Parse(f.Language)
	if err != nil {
		return language.Und
	}
	return tag
}
