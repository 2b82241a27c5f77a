package plugin

import "strings"

// Binder completes input against the autocomplete sets held by the registry.
type Binder struct {
	registry *Registry
}

// NewBinder creates a binder over the registry's autocomplete sets.
func NewBinder(registry *Registry) *Binder {
	return &Binder{registry: registry}
}

// Register replaces the candidate set under key.
func (b *Binder) Register(owner, key string, items []string) error {
	return b.registry.RegisterAutocomplete(owner, key, items)
}

// Complete returns the next candidate under key that starts with prefix.
// Repeated calls with the same prefix cycle through every match in a fixed
// order.
func (b *Binder) Complete(key, prefix string) (string, bool) {
	ac, ok := b.registry.autocomplete(key)
	if !ok {
		return "", false
	}
	return ac.Complete(prefix)
}

// CompleteLine completes an input line of the form "<key> <prefix>" against
// the set registered under key and returns the whole completed line.
func (b *Binder) CompleteLine(line string) (string, bool) {
	for _, key := range b.Keys() {
		if !strings.HasPrefix(line, key+" ") {
			continue
		}
		if match, ok := b.Complete(key, line[len(key)+1:]); ok {
			return key + " " + match, true
		}
	}
	return "", false
}

// Keys returns the registered keys, longest first.
func (b *Binder) Keys() []string {
	return b.registry.AutocompleteKeys()
}

// Reset restarts the rotation under key.
func (b *Binder) Reset(key string) {
	if ac, ok := b.registry.autocomplete(key); ok {
		ac.Reset()
	}
}

// ResetAll restarts every rotation. The host calls it whenever the input line
// is edited.
func (b *Binder) ResetAll() {
	for _, key := range b.registry.AutocompleteKeys() {
		b.Reset(key)
	}
}
