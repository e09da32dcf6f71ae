// Package models invokes the upstream text-generation providers selected by a
// closed set of model identifiers, retrying failed calls with exponential backoff.
package models

import "fmt"

// ID identifies a model and, through it, the provider that serves it.
type ID string

// Supported models. Any other identifier resolves to Default.
const (
	GPT4oMini     ID = "gpt-4o-mini"
	GPT4o         ID = "gpt-4o"
	Gemini15Flash ID = "gemini-1.5-flash"
	Gemini15Pro   ID = "gemini-1.5-pro"

	Default = GPT4oMini
)

// Provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var catalog = map[ID]string{
	GPT4oMini:     ProviderOpenAI,
	GPT4o:         ProviderOpenAI,
	Gemini15Flash: ProviderGemini,
	Gemini15Pro:   ProviderGemini,
}

// All returns the supported identifiers, lightweight tier first per provider.
func All() []ID {
	return []ID{GPT4oMini, GPT4o, Gemini15Flash, Gemini15Pro}
}

// Valid reports whether id is one of the supported models.
func (id ID) Valid() bool {
	_, ok := catalog[id]
	return ok
}

// Provider returns the provider name serving id, after fallback.
func (id ID) Provider() string {
	return catalog[Resolve(string(id))]
}

// Validate returns ErrUnknownModel for identifiers outside the enumeration.
func (id ID) Validate() error {
	if !id.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownModel, id)
	}
	return nil
}

// Resolve maps s onto a supported model, falling back to Default.
func Resolve(s string) ID {
	id := ID(s)
	if id.Valid() {
		return id
	}
	return Default
}
