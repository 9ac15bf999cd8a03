package state

import "sync/atomic"

// Token identifies one issued request.
type Token uint64

// Sequencer hands out monotonically increasing request tokens. A response is
// applied only if its token is still the newest one, so a slow, superseded
// request can never overwrite the result of a later one.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues a new token, superseding every earlier one.
func (s *Sequencer) Next() Token {
	return Token(s.latest.Add(1))
}

// IsCurrent reports whether t is the most recently issued token.
func (s *Sequencer) IsCurrent(t Token) bool {
	return uint64(t) == s.latest.Load()
}
