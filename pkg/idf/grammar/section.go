package grammar

import (
	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
)

// Section returns a parser for a delimited section:
//
//	.KEYWORD
//	<inner>
//	.END_KEYWORD
//
// Surrounding whitespace is consumed. A missing start keyword is a syntax
// error raised at the first token, which repetitions treat as "no more
// sections". A failure inside inner propagates unchanged. A missing end
// keyword after a successful inner is an unterminated-section error.
func Section[T any](keyword string, inner Parser[T]) Parser[T] {
	start := "." + keyword
	end := ".END_" + keyword

	return func(in Input) (T, Input, error) {
		var zero T

		at := in.SkipSpace()
		tok, body, ok := at.peekToken()
		if !ok || tok != start {
			err := failf(idfErrors.ErrorTypeSyntax, at,
				"section %s not found, got %s", start, describe(tok, ok))
			err.Section = keyword
			if ok && IsKeyword(tok) {
				err.Suggestion = idfErrors.SuggestSection(tok, keyword)
			}
			return zero, in, err
		}

		v, rest, err := inner(body)
		if err != nil {
			return zero, in, withSection(err, keyword)
		}

		closing := rest.SkipSpace()
		tok, after, ok := closing.peekToken()
		if !ok || tok != end {
			err := failf(idfErrors.ErrorTypeUnterminated, closing,
				"section %s is not terminated: expected %s, got %s", start, end, describe(tok, ok))
			err.Section = keyword
			return zero, in, err
		}

		return v, after.SkipSpace(), nil
	}
}

// One requires exactly one match of p. If p does not match at all, the
// result is a multiplicity error naming what; any other failure propagates.
func One[T any](what string, p Parser[T]) Parser[T] {
	return func(in Input) (T, Input, error) {
		v, rest, err := p(in)
		if err == nil {
			return v, rest, nil
		}
		if isNoMatch(err, in) {
			return v, in, multiplicity(err, in, "required %s is missing", what)
		}
		return v, in, err
	}
}

// ZeroOrOne matches p at most once. If p does not match, the zero value of
// T is returned. A second consecutive match is a multiplicity error.
func ZeroOrOne[T any](what string, p Parser[T]) Parser[T] {
	return func(in Input) (T, Input, error) {
		var zero T
		v, rest, err := p(in)
		if err != nil {
			if isNoMatch(err, in) {
				return zero, in, nil
			}
			return zero, in, err
		}

		if _, _, again := p(rest); again == nil || !isNoMatch(again, rest) {
			return zero, in, failf(idfErrors.ErrorTypeMultiplicity, rest.SkipSpace(),
				"%s may appear at most once", what)
		}
		return v, rest, nil
	}
}

// Many matches p zero or more times. It stops at the first attempt that
// fails on its first token; a failure after that point propagates.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(in Input) ([]T, Input, error) {
		items := make([]T, 0)
		cur := in
		for {
			v, rest, err := p(cur)
			if err != nil {
				if isNoMatch(err, cur) {
					return items, cur, nil
				}
				return nil, in, err
			}
			if rest.Offset() == cur.Offset() {
				// p matched without consuming input; stop rather than spin.
				return items, cur, nil
			}
			items = append(items, v)
			cur = rest
		}
	}
}

// Many1 is Many that requires at least one match. Zero matches is a
// multiplicity error naming what.
func Many1[T any](what string, p Parser[T]) Parser[[]T] {
	many := Many(p)
	return func(in Input) ([]T, Input, error) {
		items, rest, err := many(in)
		if err != nil {
			return nil, in, err
		}
		if len(items) == 0 {
			_, _, first := p(in)
			return nil, in, multiplicity(first, in, "expected at least one %s", what)
		}
		return items, rest, nil
	}
}

// multiplicity converts a no-match failure into a multiplicity error at the
// same position, keeping the original message as context.
func multiplicity(cause error, in Input, format string, args ...any) *idfErrors.Error {
	err := failf(idfErrors.ErrorTypeMultiplicity, in.SkipSpace(), format, args...)
	if e, ok := cause.(*idfErrors.Error); ok {
		err.Section = e.Section
		err.Suggestion = e.Suggestion
		if e.Message != "" {
			err.Message += " (" + e.Message + ")"
		}
	}
	return err
}

// withSection records the innermost section name on an error that does not
// have one yet.
func withSection(err error, keyword string) error {
	if e, ok := err.(*idfErrors.Error); ok && e.Section == "" {
		e.Section = keyword
	}
	return err
}
