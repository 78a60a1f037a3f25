package iterator

import (
	"github.com/exeal/ascension/internal/unicode"
)

// Kind tags a CharacterIterator's concrete implementation so that Equals
// and Less can refuse to compare iterators over unrelated sequences
// instead of producing a meaningless answer.
type Kind uint8

const (
	KindString Kind = iota
	KindDocument
)

// CharacterIterator is a bidirectional cursor over Unicode scalar values.
// Current returns unicode.Done when there is no code point at the current
// position (the end of the iterated range).
type CharacterIterator interface {
	Kind() Kind
	Current() unicode.CodePoint
	HasNext() bool
	HasPrevious() bool
	Next()
	Previous()
	First()
	Last()
	Offset() int
	Clone() CharacterIterator
	Equals(other CharacterIterator) bool
	Less(other CharacterIterator) bool
}

// StringCharacterIterator walks the code points of a bounded UTF-16 buffer.
type StringCharacterIterator struct {
	it *unicode.UTF16Iterator
}

// NewStringCharacterIterator returns an iterator over seq, initially
// positioned at code-unit index pos.
func NewStringCharacterIterator(seq []unicode.Char, pos int) *StringCharacterIterator {
	return &StringCharacterIterator{it: unicode.NewUTF16Iterator(seq, pos)}
}

func (s *StringCharacterIterator) Kind() Kind { return KindString }

func (s *StringCharacterIterator) Current() unicode.CodePoint { return s.it.Current() }

func (s *StringCharacterIterator) HasNext() bool { return s.it.HasNext() }

func (s *StringCharacterIterator) HasPrevious() bool { return s.it.HasPrevious() }

func (s *StringCharacterIterator) Next() {
	if s.it.HasNext() {
		_ = s.it.Next()
	}
}

func (s *StringCharacterIterator) Previous() {
	if s.it.HasPrevious() {
		_ = s.it.Previous()
	}
}

func (s *StringCharacterIterator) First() { s.it.First() }

func (s *StringCharacterIterator) Last() { s.it.Last() }

// Offset returns the iterator's current UTF-16 code-unit index.
func (s *StringCharacterIterator) Offset() int { return s.it.Position() }

func (s *StringCharacterIterator) Clone() CharacterIterator {
	return &StringCharacterIterator{it: s.it.Clone()}
}

func (s *StringCharacterIterator) Equals(other CharacterIterator) bool {
	o, ok := other.(*StringCharacterIterator)
	if !ok {
		return false
	}
	return s.it.Equals(o.it)
}

func (s *StringCharacterIterator) Less(other CharacterIterator) bool {
	o, ok := other.(*StringCharacterIterator)
	if !ok {
		return false
	}
	return s.it.Less(o.it)
}
