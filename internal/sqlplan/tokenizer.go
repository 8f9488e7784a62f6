// Package sqlplan is a reference recursive-descent parser and planner for
// the DDL/DML subset spec §6 names: CREATE EXTERNAL TABLE and a SELECT
// with WHERE/GROUP BY/LIMIT. It exists to exercise planner.Planner and
// logicalplan end to end; it is intentionally thin, not a general SQL
// frontend. Tokenisation follows the teacher's query/expr/tokeniser.go
// shape (a flat tokenType enum plus a keyword table), since that file is
// complete and idiomatic, unlike the teacher's parser.go, which is a
// stub that defers to go/parser.
package sqlplan

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kokes/colexec/internal/errs"
)

type tokenType uint8

const (
	tokInvalid tokenType = iota
	tokIdent
	tokLiteralInt
	tokLiteralFloat
	tokLiteralString
	tokStar
	tokComma
	tokDot
	tokLparen
	tokRparen
	tokPlus
	tokMinus
	tokSlash
	tokPercent
	tokEq
	tokNeq
	tokLt
	tokLte
	tokGt
	tokGte
	// keywords
	tokSelect
	tokFrom
	tokWhere
	tokGroup
	tokBy
	tokLimit
	tokAs
	tokAnd
	tokOr
	tokIs
	tokNot
	tokNull
	tokCast
	tokCreate
	tokExternal
	tokTable
	tokStored
	tokWith
	tokWithout
	tokHeader
	tokRow
	tokLocation
	tokEOF
)

var keywords = map[string]tokenType{
	"select":   tokSelect,
	"from":     tokFrom,
	"where":    tokWhere,
	"group":    tokGroup,
	"by":       tokBy,
	"limit":    tokLimit,
	"as":       tokAs,
	"and":      tokAnd,
	"or":       tokOr,
	"is":       tokIs,
	"not":      tokNot,
	"null":     tokNull,
	"cast":     tokCast,
	"create":   tokCreate,
	"external": tokExternal,
	"table":    tokTable,
	"stored":   tokStored,
	"with":     tokWith,
	"without":  tokWithout,
	"header":   tokHeader,
	"row":      tokRow,
	"location": tokLocation,
}

type token struct {
	typ   tokenType
	value string
}

// tokenize lowers s into a flat token slice, terminated by tokEOF.
// Identifiers and keywords are matched case-insensitively; keywords are
// normalized to lower case in comparisons only, never in the stored
// value, so identifiers and string literals keep their case.
func tokenize(s string) ([]token, error) {
	var toks []token
	i := 0
	n := len(s)
	for i < n {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '*':
			toks = append(toks, token{tokStar, "*"})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ","})
			i++
		case c == '.':
			toks = append(toks, token{tokDot, "."})
			i++
		case c == '(':
			toks = append(toks, token{tokLparen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRparen, ")"})
			i++
		case c == '+':
			toks = append(toks, token{tokPlus, "+"})
			i++
		case c == '-':
			toks = append(toks, token{tokMinus, "-"})
			i++
		case c == '/':
			toks = append(toks, token{tokSlash, "/"})
			i++
		case c == '%':
			toks = append(toks, token{tokPercent, "%"})
			i++
		case c == '=':
			toks = append(toks, token{tokEq, "="})
			i++
		case c == '!' && i+1 < n && s[i+1] == '=':
			toks = append(toks, token{tokNeq, "!="})
			i += 2
		case c == '<' && i+1 < n && s[i+1] == '=':
			toks = append(toks, token{tokLte, "<="})
			i += 2
		case c == '<' && i+1 < n && s[i+1] == '>':
			toks = append(toks, token{tokNeq, "<>"})
			i += 2
		case c == '<':
			toks = append(toks, token{tokLt, "<"})
			i++
		case c == '>' && i+1 < n && s[i+1] == '=':
			toks = append(toks, token{tokGte, ">="})
			i += 2
		case c == '>':
			toks = append(toks, token{tokGt, ">"})
			i++

		case c == '\'':
			lit, adv, err := scanString(s[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{tokLiteralString, lit})
			i += adv

		case c >= '0' && c <= '9':
			lit, typ, adv := scanNumber(s[i:])
			toks = append(toks, token{typ, lit})
			i += adv

		case isIdentStart(rune(c)):
			lit, adv := scanIdent(s[i:])
			i += adv
			lower := strings.ToLower(lit)
			if kw, ok := keywords[lower]; ok {
				toks = append(toks, token{kw, lit})
			} else {
				toks = append(toks, token{tokIdent, lit})
			}

		default:
			return nil, errs.Parsef("unexpected character %q at position %d", c, i)
		}
	}
	toks = append(toks, token{tokEOF, ""})
	return toks, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func scanIdent(s string) (string, int) {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isIdentCont(r) {
			break
		}
		i += size
	}
	return s[:i], i
}

func scanNumber(s string) (string, tokenType, int) {
	i := 0
	typ := tokLiteralInt
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i < len(s) && s[i] == '.' {
		typ = tokLiteralFloat
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	return s[:i], typ, i
}

// scanString reads a single-quoted string literal starting at s[0] == '\''.
// A doubled quote ('') is an escaped literal quote, matching SQL's
// standard string-literal escaping.
func scanString(s string) (string, int, error) {
	var sb strings.Builder
	i := 1
	for {
		if i >= len(s) {
			return "", 0, errs.Parsef("unterminated string literal")
		}
		if s[i] == '\'' {
			if i+1 < len(s) && s[i+1] == '\'' {
				sb.WriteByte('\'')
				i += 2
				continue
			}
			return sb.String(), i + 1, nil
		}
		sb.WriteByte(s[i])
		i++
	}
}

func parseIntLiteral(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sqlplan: invalid integer literal %q: %w", s, err)
	}
	return v, nil
}

func parseFloatLiteral(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("sqlplan: invalid float literal %q: %w", s, err)
	}
	return v, nil
}
