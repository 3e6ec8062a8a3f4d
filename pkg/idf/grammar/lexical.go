package grammar

import (
	stderrors "errors"
	"strconv"
	"strings"

	idfErrors "mercator-hq/idfcheck/pkg/idf/errors"
)

// Parser consumes a prefix of the input and returns the parsed value and
// the remaining input, or an error positioned where matching failed.
// On error the returned Input is the one passed in.
type Parser[T any] func(Input) (T, Input, error)

// WS wraps p so that whitespace (including newlines) before and after it
// is consumed.
func WS[T any](p Parser[T]) Parser[T] {
	return func(in Input) (T, Input, error) {
		v, rest, err := p(in.SkipSpace())
		if err != nil {
			return v, in, err
		}
		return v, rest.SkipSpace(), nil
	}
}

// Literal matches the exact whitespace-delimited token lit.
func Literal(lit string) Parser[string] {
	return func(in Input) (string, Input, error) {
		at := in.SkipSpace()
		tok, rest, ok := at.peekToken()
		if !ok || tok != lit {
			return "", in, failf(idfErrors.ErrorTypeSyntax, at,
				"expected %q, got %s", lit, describe(tok, ok))
		}
		return tok, rest, nil
	}
}

// Number parses a decimal floating-point field: optional sign, digits with
// an optional fractional part, and an optional exponent.
func Number(field string) Parser[float32] {
	return func(in Input) (float32, Input, error) {
		at := in.SkipSpace()
		n := scanDecimal(at.Rest())
		if n == 0 || !at.advance(n).atBoundary() {
			tok, _, ok := at.peekToken()
			return 0, in, failf(idfErrors.ErrorTypeSyntax, at,
				"%s: expected a number, got %s", field, describe(tok, ok))
		}

		lit := at.Rest()[:n]
		v, err := strconv.ParseFloat(lit, 32)
		if err != nil {
			var numErr *strconv.NumError
			if stderrors.As(err, &numErr) && stderrors.Is(numErr.Err, strconv.ErrRange) {
				return 0, in, failf(idfErrors.ErrorTypeSyntax, at,
					"%s: %s is out of range", field, lit)
			}
			return 0, in, failf(idfErrors.ErrorTypeSyntax, at,
				"%s: invalid number %q", field, lit)
		}
		return float32(v), at.advance(n), nil
	}
}

// Integer parses an unsigned decimal integer field.
func Integer(field string) Parser[uint32] {
	return func(in Input) (uint32, Input, error) {
		at := in.SkipSpace()
		tok, rest, ok := at.peekToken()
		if !ok {
			return 0, in, failf(idfErrors.ErrorTypeSyntax, at,
				"%s: expected an integer, got end of input", field)
		}
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return 0, in, failf(idfErrors.ErrorTypeSyntax, at,
				"%s: expected an integer, got %s", field, describe(tok, ok))
		}
		return uint32(v), rest, nil
	}
}

// String parses a string field: either a double-quoted string, which may
// contain spaces and ends at the closing quote, or a bare run of
// non-whitespace characters. A bare token that looks like a section keyword
// (".NAME") is rejected so that record repetitions stop at section ends.
func String(field string) Parser[string] {
	return func(in Input) (string, Input, error) {
		at := in.SkipSpace()
		if at.AtEnd() {
			return "", in, failf(idfErrors.ErrorTypeSyntax, at,
				"%s: expected a string, got end of input", field)
		}

		if at.Rest()[0] == '"' {
			body := at.Rest()[1:]
			end := strings.IndexByte(body, '"')
			if end < 0 {
				return "", in, failf(idfErrors.ErrorTypeSyntax, at,
					"%s: unterminated quoted string", field)
			}
			return body[:end], at.advance(end + 2), nil
		}

		tok, rest, _ := at.peekToken()
		if IsKeyword(tok) {
			return "", in, failf(idfErrors.ErrorTypeSyntax, at,
				"%s: expected a string, got section keyword %q", field, tok)
		}
		return tok, rest, nil
	}
}

// Keyword parses an enumerated keyword field. Alternatives are tried in
// order and the first one equal to the next token is returned.
func Keyword[T ~string](field string, allowed ...T) Parser[T] {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}

	return func(in Input) (T, Input, error) {
		var zero T
		at := in.SkipSpace()
		tok, rest, ok := at.peekToken()
		if ok {
			for _, a := range allowed {
				if tok == string(a) {
					return a, rest, nil
				}
			}
		}

		err := failf(idfErrors.ErrorTypeSyntax, at,
			"%s: expected one of %s, got %s", field, strings.Join(names, ", "), describe(tok, ok))
		if ok {
			err.Suggestion = idfErrors.SuggestKeyword(tok, names)
		}
		return zero, in, err
	}
}

// IsKeyword returns true if tok has the shape of a section keyword: a dot
// followed by a letter.
func IsKeyword(tok string) bool {
	if len(tok) < 2 || tok[0] != '.' {
		return false
	}
	c := tok[1]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

// scanDecimal returns the length of the decimal literal at the start of s,
// or 0 if s does not start with one.
func scanDecimal(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	intDigits := countDigits(s[i:])
	i += intDigits

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		fracDigits = countDigits(s[i+1:])
		if intDigits == 0 && fracDigits == 0 {
			return 0
		}
		i += 1 + fracDigits
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if expDigits := countDigits(s[j:]); expDigits > 0 {
			i = j + expDigits
		}
	}

	return i
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
