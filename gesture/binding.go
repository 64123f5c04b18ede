package gesture

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// MinPatternLen and MaxPatternLen bound the number of direction
	// letters a binding pattern may have.
	MinPatternLen = 2
	MaxPatternLen = 5

	// Separator ends the pattern letters; everything after it is the
	// command text, taken verbatim.
	Separator = '-'
)

// Binding pairs an exact gesture pattern with the shell command it
// triggers. Bindings are created during startup parsing and never change
// afterwards.
type Binding struct {
	Pattern string `json:"pattern"`
	Command string `json:"command"`
}

// resolveCacheSize bounds the lookup cache. Gestures are at most
// MaxSlots letters over a four-letter alphabet, so this covers most of
// the reachable key space.
const resolveCacheSize = 256

// Table is the ordered binding collection. Entries are prepended as they
// are parsed, so the most recently declared binding is searched first and
// wins when two patterns are identical.
type Table struct {
	entries []Binding
	cache   *lru.Cache[string, int]
}

// NewTable returns an empty binding table.
func NewTable() *Table {
	cache, _ := lru.New[string, int](resolveCacheSize) // only fails for size <= 0
	return &Table{cache: cache}
}

// ParseBinding parses one configuration entry of the form
// <2-5 direction letters><separator><command>. The command may be empty.
func ParseBinding(entry string) (Binding, error) {
	for i := 0; i < len(entry); i++ {
		c := entry[i]
		if c == Separator {
			if i < MinPatternLen {
				return Binding{}, fmt.Errorf("binding %q: pattern needs at least %d direction letters", entry, MinPatternLen)
			}
			return Binding{Pattern: entry[:i], Command: entry[i+1:]}, nil
		}
		if i >= MaxPatternLen {
			return Binding{}, fmt.Errorf("binding %q: no %q separator within %d letters", entry, string(Separator), MaxPatternLen)
		}
		if _, ok := ZoneForLetter(c); !ok {
			return Binding{}, fmt.Errorf("binding %q: %q is not a direction letter", entry, string(c))
		}
	}
	return Binding{}, fmt.Errorf("binding %q: missing %q separator", entry, string(Separator))
}

// Add parses entry and prepends the binding to the table.
func (t *Table) Add(entry string) error {
	b, err := ParseBinding(entry)
	if err != nil {
		return err
	}
	t.entries = append([]Binding{b}, t.entries...)
	// the table only grows during startup, but a stale index would be
	// wrong the moment it does
	t.cache.Purge()
	return nil
}

// Len returns the number of bindings in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Bindings returns the table contents in search order, newest first.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, len(t.entries))
	copy(out, t.entries)
	return out
}

// Match returns the command of the first entry whose pattern equals the
// gesture exactly: same length, same zones, same order.
func (t *Table) Match(gesture []Zone) (string, bool) {
	return t.Resolve(Letters(gesture))
}

// Resolve matches a gesture given as its letter spelling.
func (t *Table) Resolve(letters string) (string, bool) {
	if idx, ok := t.cache.Get(letters); ok {
		if idx < 0 {
			return "", false
		}
		return t.entries[idx].Command, true
	}

	for i, b := range t.entries {
		if b.Pattern == letters {
			t.cache.Add(letters, i)
			return b.Command, true
		}
	}

	t.cache.Add(letters, -1)
	return "", false
}
