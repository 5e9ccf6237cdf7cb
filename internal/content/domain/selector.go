package domain

import "sync"

// Selector is a process-wide language cell for callers that hold one active
// language, such as the inquiry CLI. Request handlers pass the language
// explicitly instead.
type Selector struct {
	mu        sync.RWMutex
	current   Language
	observers []func(Language)
}

// NewSelector starts at initial, or Default when initial is unsupported.
func NewSelector(initial Language) *Selector {
	return &Selector{current: Normalize(initial)}
}

// Current returns the active language.
func (s *Selector) Current() Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set switches to lang and notifies observers when it changed.
func (s *Selector) Set(lang Language) Language {
	lang = Normalize(lang)
	return s.update(func(Language) Language { return lang })
}

// Toggle flips between the two languages and returns the new one.
func (s *Selector) Toggle() Language {
	return s.update(Language.Other)
}

func (s *Selector) update(next func(Language) Language) Language {
	s.mu.Lock()
	lang := next(s.current)
	if s.current == lang {
		s.mu.Unlock()
		return lang
	}
	s.current = lang
	observers := append([]func(Language){}, s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(lang)
	}
	return lang
}

// Subscribe registers fn to be called synchronously after each change.
func (s *Selector) Subscribe(fn func(Language)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}
