package domain

import "strings"

// Persona selects the audience tone of generated text.
type Persona string

const (
	PersonaChild   Persona = "child"
	PersonaScholar Persona = "scholar"
	PersonaTourist Persona = "tourist"

	// DefaultPersona applies to empty or unrecognized persona values.
	DefaultPersona = PersonaTourist
)

// ParsePersona maps raw input onto a known persona, falling back to DefaultPersona.
func ParsePersona(s string) Persona {
	switch p := Persona(strings.ToLower(strings.TrimSpace(s))); p {
	case PersonaChild, PersonaScholar, PersonaTourist:
		return p
	default:
		return DefaultPersona
	}
}

// Style selects the voice of generated text.
type Style string

const (
	StylePersonified Style = "personified"
	StyleNarrator    Style = "narrator"

	// DefaultStyle applies to empty or unrecognized style values.
	DefaultStyle = StyleNarrator
)

// ParseStyle maps raw input onto a known style, falling back to DefaultStyle.
func ParseStyle(s string) Style {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case StylePersonified, StyleNarrator:
		return st
	default:
		return DefaultStyle
	}
}
