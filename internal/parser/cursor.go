package parser

// Cursor walks a classified token sequence with one token of look-ahead and
// supports backtracking to a saved position.
type Cursor struct {
	toks []Token
	pos  int
}

// NewCursor returns a cursor positioned at the first token.
func NewCursor(toks []Token) *Cursor {
	return &Cursor{toks: toks}
}

// Done reports whether every token has been consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.toks)
}

// Peek returns the next token without consuming it.
func (c *Cursor) Peek() (Token, bool) {
	if c.Done() {
		return Token{}, false
	}
	return c.toks[c.pos], true
}

// PeekKind reports whether the next token has one of the given kinds.
func (c *Cursor) PeekKind(kinds ...Kind) bool {
	tok, ok := c.Peek()
	if !ok {
		return false
	}
	for _, k := range kinds {
		if tok.Kind == k {
			return true
		}
	}
	return false
}

// Next consumes and returns the next token.
func (c *Cursor) Next() (Token, bool) {
	tok, ok := c.Peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

// Accept consumes the next token if it has one of the given kinds.
func (c *Cursor) Accept(kinds ...Kind) (Token, bool) {
	if !c.PeekKind(kinds...) {
		return Token{}, false
	}
	return c.Next()
}

// Mark returns the current position for a later Reset.
func (c *Cursor) Mark() int {
	return c.pos
}

// Reset rewinds the cursor to a position returned by Mark.
func (c *Cursor) Reset(mark int) {
	c.pos = mark
}

// Rest returns the unconsumed tokens.
func (c *Cursor) Rest() []Token {
	if c.Done() {
		return nil
	}
	return c.toks[c.pos:]
}
