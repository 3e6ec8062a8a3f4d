package grammar

// Cursor threads an Input through a fixed sequence of field parsers and
// remembers the first error, so record parsers can read fields one after
// another and check for failure once at the end:
//
//	c := grammar.NewCursor(in)
//	x := grammar.Take(c, grammar.Number("x"))
//	y := grammar.Take(c, grammar.Number("y"))
//	rest, err := c.Done()
//
// After the first error every further Take is a no-op returning the zero value.
type Cursor struct {
	start Input
	in    Input
	err   error
}

// NewCursor creates a cursor positioned at in.
func NewCursor(in Input) *Cursor {
	return &Cursor{start: in, in: in}
}

// Take runs p at the cursor position and advances past what it consumed.
func Take[T any](c *Cursor, p Parser[T]) T {
	var zero T
	if c.err != nil {
		return zero
	}
	v, rest, err := p(c.in)
	if err != nil {
		c.err = err
		return zero
	}
	c.in = rest
	return v
}

// Err returns the first error encountered, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Done returns the remaining input, or the starting input and the first
// error if any field failed.
func (c *Cursor) Done() (Input, error) {
	if c.err != nil {
		return c.start, c.err
	}
	return c.in, nil
}

// Record builds a parser from a function that reads a fixed sequence of
// fields through a Cursor. Trailing whitespace after the record is consumed.
func Record[T any](build func(c *Cursor) T) Parser[T] {
	return func(in Input) (T, Input, error) {
		c := NewCursor(in)
		v := build(c)
		rest, err := c.Done()
		if err != nil {
			var zero T
			return zero, in, err
		}
		return v, rest.SkipSpace(), nil
	}
}
