package grammar

import (
	"strings"

	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
)

// Map transforms the result of p with f.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(in Input) (U, Input, error) {
		v, rest, err := p(in)
		if err != nil {
			var zero U
			return zero, in, err
		}
		return f(v), rest, nil
	}
}

// Alt tries each alternative in order and returns the first match. An
// alternative that fails after its first token ends the search with that
// failure. If no alternative matches, the error lists what was expected.
func Alt[T any](expected []string, alternatives ...Parser[T]) Parser[T] {
	return func(in Input) (T, Input, error) {
		var zero T
		for _, p := range alternatives {
			v, rest, err := p(in)
			if err == nil {
				return v, rest, nil
			}
			if !isNoMatch(err, in) {
				return zero, in, err
			}
		}

		at := in.SkipSpace()
		tok, _, ok := at.peekToken()
		err := failf(idfErrors.ErrorTypeSyntax, at,
			"expected one of %s, got %s", strings.Join(expected, ", "), describe(tok, ok))
		if ok && IsKeyword(tok) {
			err.Suggestion = idfErrors.SuggestKeyword(tok, expected)
		}
		return zero, in, err
	}
}

// End succeeds only if nothing but whitespace remains.
func End(in Input) (struct{}, Input, error) {
	at := in.SkipSpace()
	if !at.AtEnd() {
		tok, _, _ := at.peekToken()
		return struct{}{}, in, failf(idfErrors.ErrorTypeTrailingData, at,
			"unexpected data after end of document: %s", describe(tok, true))
	}
	return struct{}{}, at, nil
}
