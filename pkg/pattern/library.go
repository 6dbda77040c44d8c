package pattern

import "fmt"

// Library holds named patterns, resolved by Reference at match time
// (spec.md §4.4).
type Library struct {
	patterns map[string]Pattern
}

// NewLibrary constructs an empty pattern library.
func NewLibrary() *Library {
	return &Library{patterns: make(map[string]Pattern)}
}

// Register adds or replaces a named pattern.
func (l *Library) Register(name string, p Pattern) {
	l.patterns[name] = p
}

// Get resolves a named pattern, reporting whether it was found.
func (l *Library) Get(name string) (Pattern, bool) {
	p, ok := l.patterns[name]
	return p, ok
}

// resolve looks up a Reference's target, panicking with a descriptive
// message on a dangling name — a Library configuration error, not a match
// failure, so it is not folded into the boolean match-failure path.
func (l *Library) resolve(name string) Pattern {
	p, ok := l.patterns[name]
	if !ok {
		panic(fmt.Sprintf("pattern: reference to unregistered pattern %q", name))
	}

	return p
}
