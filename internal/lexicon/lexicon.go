// Package lexicon turns a raw dictionary record into a bounded display model.
package lexicon

import (
	"golang.org/x/text/cases"
)

// Display limits.
const (
	MaxDefinitions = 5
	MaxSynonyms    = 3
)

// Record is a dictionary entry as the lookup service returns it.
// Empty strings stand for absent optional fields.
type Record struct {
	Word      string     `json:"word"`
	Phonetic  string     `json:"phonetic,omitempty"`
	Phonetics []Phonetic `json:"phonetics,omitempty"`
	Meanings  []Meaning  `json:"meanings,omitempty"`
}

type Phonetic struct {
	Text  string `json:"text,omitempty"`
	Audio string `json:"audio,omitempty"`
}

type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms,omitempty"`
}

type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}

// Model is what gets shown for one lookup.
type Model struct {
	Title        string
	PhoneticText string
	Definitions  []Entry
	Synonyms     []string
	AudioURL     string
}

// Entry is one displayed definition.
type Entry struct {
	POS     string
	Text    string
	Example string
}

var posAbbreviations = map[string]string{
	"noun":         "n",
	"verb":         "v",
	"adjective":    "adj",
	"adverb":       "adv",
	"pronoun":      "pron",
	"preposition":  "prep",
	"conjunction":  "conj",
	"interjection": "interj",
	"article":      "art",
	"determiner":   "det",
}

// Abbreviate returns the short form of a part of speech, or pos unchanged
// when it is not in the table.
func Abbreviate(pos string) string {
	if short, ok := posAbbreviations[cases.Fold().String(pos)]; ok {
		return short
	}
	return pos
}

// Project builds the display model for rec. The first MaxDefinitions
// definitions are kept in source order; that is a brevity cut, not a ranking.
func Project(rec Record) Model {
	m := Model{
		Title:        rec.Word,
		PhoneticText: rec.Phonetic,
		AudioURL:     firstAudio(rec.Phonetics),
		Definitions:  []Entry{},
		Synonyms:     []string{},
	}

	for _, meaning := range rec.Meanings {
		pos := Abbreviate(meaning.PartOfSpeech)
		for _, def := range meaning.Definitions {
			if len(m.Definitions) == MaxDefinitions {
				break
			}
			m.Definitions = append(m.Definitions, Entry{
				POS:     pos,
				Text:    def.Definition,
				Example: def.Example,
			})
		}
	}

	seen := make(map[string]struct{})
	for _, meaning := range rec.Meanings {
		for _, syn := range meaning.Synonyms {
			if len(m.Synonyms) == MaxSynonyms {
				return m
			}
			if syn == "" {
				continue
			}
			if _, dup := seen[syn]; dup {
				continue
			}
			seen[syn] = struct{}{}
			m.Synonyms = append(m.Synonyms, syn)
		}
	}
	return m
}

func firstAudio(phonetics []Phonetic) string {
	for _, p := range phonetics {
		if p.Audio != "" {
			return p.Audio
		}
	}
	return ""
}
