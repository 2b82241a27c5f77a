// Package autocomplete implements a rotating prefix completer over an ordered
// set of candidate strings.
//
// Repeated calls to Complete with the same prefix walk through every matching
// candidate in insertion order and then start again from the first match.
// Changing the prefix, or calling Reset, restarts the rotation.
package autocomplete

import "strings"

// Autocomplete holds an ordered, de-duplicated set of candidates plus the
// rotation state of the last search.
type Autocomplete struct {
	items []string
	index map[string]int

	searching  bool
	lastPrefix string
	lastMatch  int
}

// New creates an Autocomplete seeded with items.
func New(items ...string) *Autocomplete {
	ac := &Autocomplete{index: make(map[string]int)}
	for _, item := range items {
		ac.Add(item)
	}
	return ac
}

// Add appends item unless it is already present. Empty strings are ignored.
func (ac *Autocomplete) Add(item string) {
	if item == "" {
		return
	}
	if _, exists := ac.index[item]; exists {
		return
	}
	ac.index[item] = len(ac.items)
	ac.items = append(ac.items, item)
}

// Remove deletes item and resets the rotation.
func (ac *Autocomplete) Remove(item string) {
	pos, exists := ac.index[item]
	if !exists {
		return
	}
	ac.items = append(ac.items[:pos], ac.items[pos+1:]...)
	delete(ac.index, item)
	for i := pos; i < len(ac.items); i++ {
		ac.index[ac.items[i]] = i
	}
	ac.Reset()
}

// Replace swaps the whole candidate set and resets the rotation.
func (ac *Autocomplete) Replace(items []string) {
	ac.items = nil
	ac.index = make(map[string]int, len(items))
	for _, item := range items {
		ac.Add(item)
	}
	ac.Reset()
}

// Clear removes every candidate.
func (ac *Autocomplete) Clear() {
	ac.Replace(nil)
}

// Contains reports whether item is a candidate.
func (ac *Autocomplete) Contains(item string) bool {
	_, exists := ac.index[item]
	return exists
}

// Items returns a copy of the candidates in insertion order.
func (ac *Autocomplete) Items() []string {
	out := make([]string, len(ac.items))
	copy(out, ac.items)
	return out
}

// Len returns the number of candidates.
func (ac *Autocomplete) Len() int {
	return len(ac.items)
}

// Complete returns the next candidate starting with prefix. The second result
// is false when nothing matches.
func (ac *Autocomplete) Complete(prefix string) (string, bool) {
	n := len(ac.items)
	if n == 0 {
		return "", false
	}

	start := 0
	if ac.searching && ac.lastPrefix == prefix {
		start = ac.lastMatch + 1
	}

	for i := 0; i < n; i++ {
		pos := (start + i) % n
		if strings.HasPrefix(ac.items[pos], prefix) {
			ac.searching = true
			ac.lastPrefix = prefix
			ac.lastMatch = pos
			return ac.items[pos], true
		}
	}

	ac.Reset()
	return "", false
}

// Reset forgets the rotation position.
func (ac *Autocomplete) Reset() {
	ac.searching = false
	ac.lastPrefix = ""
	ac.lastMatch = 0
}
