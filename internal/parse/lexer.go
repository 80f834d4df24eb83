// Package parse turns MyLang source text into the value.* trees the
// evaluator consumes directly -- value.StatementList, value.Args,
// value.Dict, value.Array, value.Path, value.Operation -- with no
// intermediate AST package, mirroring how the teacher's own two-stage
// tokenize-then-parse pipeline fed straight into its value.Value tree.
package parse

import (
	"strings"
	"unicode"

	"github.com/arion-lang/mylang/internal/verror"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokUnquoted
	tokEscaped
	tokSingle
	tokBool
	tokNull
	tokUndefined
	tokOp       // == - + * > >= < <= ! $ & =
	tokLParen   // (
	tokRParen   // )
	tokLBrace   // {
	tokRBrace   // }
	tokLBracket // [
	tokRBracket // ]
	tokDot      // .
	tokComma    // ,
	tokNewline  // statement separator
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// isWordStart/isWordChar delimit UNQUOTED_STRING: MyLang words may start
// with any letter, underscore or non-ASCII rune, and continue with those
// plus digits. Operator glyphs, brackets, dot, comma and quotes are never
// part of a word, so words and operators never need backtracking to tell
// apart.
func isWordStart(r rune) bool {
	switch r {
	case '(', ')', '{', '}', '[', ']', '.', ',', '"', '\'', '=', '!', '$', '&', '>', '<', '+', '-', '*', '#':
		return false
	}
	return !unicode.IsSpace(r)
}

func isWordChar(r rune) bool {
	return isWordStart(r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// tokenize scans src into a flat token slice. Line comments run from `#`
// to end of line; MyLang has no block comments.
func tokenize(src string) ([]token, error) {
	var tokens []token
	runes := []rune(src)
	n := len(runes)
	pos := 0

	for pos < n {
		r := runes[pos]

		if r == '#' {
			for pos < n && runes[pos] != '\n' {
				pos++
			}
			continue
		}

		if r == '\n' {
			tokens = append(tokens, token{tokNewline, "\n", pos})
			pos++
			continue
		}

		if unicode.IsSpace(r) {
			pos++
			continue
		}

		if r == ';' {
			tokens = append(tokens, token{tokNewline, ";", pos})
			pos++
			continue
		}

		switch r {
		case '(':
			tokens = append(tokens, token{tokLParen, "(", pos})
			pos++
			continue
		case ')':
			tokens = append(tokens, token{tokRParen, ")", pos})
			pos++
			continue
		case '{':
			tokens = append(tokens, token{tokLBrace, "{", pos})
			pos++
			continue
		case '}':
			tokens = append(tokens, token{tokRBrace, "}", pos})
			pos++
			continue
		case '[':
			tokens = append(tokens, token{tokLBracket, "[", pos})
			pos++
			continue
		case ']':
			tokens = append(tokens, token{tokRBracket, "]", pos})
			pos++
			continue
		case ',':
			tokens = append(tokens, token{tokComma, ",", pos})
			pos++
			continue
		}

		if r == '.' {
			// A dot followed by a digit, when the previous significant
			// token is not itself a number/word/closer, starts a number
			// like `.5`; otherwise it is always the path/dots separator.
			// Numbers with a leading digit already consume their own
			// fractional dot below, so a bare `.` here is structural.
			if pos+1 < n && isDigit(runes[pos+1]) && !precededByOperand(tokens) {
				num, next := scanNumber(runes, pos)
				tokens = append(tokens, token{tokNumber, num, pos})
				pos = next
				continue
			}
			tokens = append(tokens, token{tokDot, ".", pos})
			pos++
			continue
		}

		if r == '"' {
			start := pos
			var b strings.Builder
			pos++
			for pos < n && runes[pos] != '"' {
				c := runes[pos]
				if c == '\\' && pos+1 < n {
					esc, adv, err := decodeEscape(runes, pos+1)
					if err != nil {
						return nil, err
					}
					b.WriteRune(esc)
					pos += 1 + adv
					continue
				}
				b.WriteRune(c)
				pos++
			}
			if pos >= n {
				return nil, verror.Parse(verror.IDUnclosedBlock, `"`).WithNear(snippet(runes, start))
			}
			pos++ // closing quote
			tokens = append(tokens, token{tokEscaped, b.String(), start})
			continue
		}

		if r == '\'' {
			start := pos
			pos++
			var b strings.Builder
			for pos < n && runes[pos] != '\'' {
				b.WriteRune(runes[pos])
				pos++
			}
			if pos >= n {
				return nil, verror.Parse(verror.IDUnclosedBlock, "'").WithNear(snippet(runes, start))
			}
			pos++
			tokens = append(tokens, token{tokSingle, b.String(), start})
			continue
		}

		if isDigit(r) {
			num, next := scanNumber(runes, pos)
			tokens = append(tokens, token{tokNumber, num, pos})
			pos = next
			continue
		}

		// Operator glyphs. `-` is ambiguous with a leading-digit number,
		// already handled above by scanNumber's own sign check; a bare
		// `-` that reaches here is the subtract/negate operator.
		switch r {
		case '=':
			if pos+1 < n && runes[pos+1] == '=' {
				tokens = append(tokens, token{tokOp, "==", pos})
				pos += 2
				continue
			}
			tokens = append(tokens, token{tokOp, "=", pos})
			pos++
			continue
		case '>':
			if pos+1 < n && runes[pos+1] == '=' {
				tokens = append(tokens, token{tokOp, ">=", pos})
				pos += 2
				continue
			}
			tokens = append(tokens, token{tokOp, ">", pos})
			pos++
			continue
		case '<':
			if pos+1 < n && runes[pos+1] == '=' {
				tokens = append(tokens, token{tokOp, "<=", pos})
				pos += 2
				continue
			}
			tokens = append(tokens, token{tokOp, "<", pos})
			pos++
			continue
		case '+', '*', '!', '$', '&':
			tokens = append(tokens, token{tokOp, string(r), pos})
			pos++
			continue
		case '-':
			if pos+1 < n && isDigit(runes[pos+1]) && !precededByOperand(tokens) {
				num, next := scanNumber(runes, pos)
				tokens = append(tokens, token{tokNumber, num, pos})
				pos = next
				continue
			}
			tokens = append(tokens, token{tokOp, "-", pos})
			pos++
			continue
		}

		if isWordStart(r) {
			start := pos
			pos++
			for pos < n && isWordChar(runes[pos]) {
				pos++
			}
			word := string(runes[start:pos])
			tokens = append(tokens, classifyWord(word, start)...)
			continue
		}

		return nil, verror.Parse(verror.IDInvalidSyntax, string(r)).WithNear(snippet(runes, pos))
	}

	return tokens, nil
}

// classifyWord resolves keyword literals (true/false/null/undefined) from
// a scanned bare word; anything else is a plain UNQUOTED_STRING.
func classifyWord(word string, pos int) []token {
	switch word {
	case "true", "false":
		return []token{{tokBool, word, pos}}
	case "null":
		return []token{{tokNull, word, pos}}
	case "undefined":
		return []token{{tokUndefined, word, pos}}
	default:
		return []token{{tokUnquoted, word, pos}}
	}
}

// precededByOperand reports whether the most recent significant token
// could end an operand (so a following `-` or `.` must be the subtract
// operator / path separator rather than the start of a negative number or
// fractional literal).
func precededByOperand(tokens []token) bool {
	if len(tokens) == 0 {
		return false
	}
	switch tokens[len(tokens)-1].kind {
	case tokNumber, tokUnquoted, tokEscaped, tokSingle, tokBool, tokNull, tokUndefined,
		tokRParen, tokRBrace, tokRBracket:
		return true
	default:
		return false
	}
}

// scanNumber consumes a SIGNED_NUMBER terminal starting at pos (already
// known to be a digit, a leading `-digit`, or a leading `.digit`).
func scanNumber(runes []rune, pos int) (string, int) {
	n := len(runes)
	start := pos
	if runes[pos] == '-' {
		pos++
	}
	for pos < n && isDigit(runes[pos]) {
		pos++
	}
	if pos < n && runes[pos] == '.' && pos+1 < n && isDigit(runes[pos+1]) {
		pos++
		for pos < n && isDigit(runes[pos]) {
			pos++
		}
	} else if pos < n && runes[pos] == '.' && pos == start+1 && runes[start] == '-' {
		// `-.5` form: leading dot directly after the sign.
		pos++
		for pos < n && isDigit(runes[pos]) {
			pos++
		}
	}
	if pos < n && (runes[pos] == 'e' || runes[pos] == 'E') {
		look := pos + 1
		if look < n && (runes[look] == '+' || runes[look] == '-') {
			look++
		}
		if look < n && isDigit(runes[look]) {
			pos = look
			for pos < n && isDigit(runes[pos]) {
				pos++
			}
		}
	}
	return string(runes[start:pos]), pos
}

// decodeEscape decodes one escape sequence starting right after the
// backslash at runes[at]. Returns the decoded rune and how many runes
// (beyond the backslash itself) were consumed.
func decodeEscape(runes []rune, at int) (rune, int, error) {
	n := len(runes)
	if at >= n {
		return 0, 0, verror.Parse(verror.IDInvalidLiteral, "dangling escape")
	}
	switch runes[at] {
	case 'n':
		return '\n', 1, nil
	case 't':
		return '\t', 1, nil
	case 'r':
		return '\r', 1, nil
	case 'f':
		return '\f', 1, nil
	case 'b':
		return '\b', 1, nil
	case '\\':
		return '\\', 1, nil
	case '\'':
		return '\'', 1, nil
	case '"':
		return '"', 1, nil
	case 'u':
		if at+4 >= n {
			return 0, 0, verror.Parse(verror.IDInvalidLiteral, `\u escape`)
		}
		hex := string(runes[at+1 : at+5])
		var code rune
		for _, c := range hex {
			code <<= 4
			switch {
			case c >= '0' && c <= '9':
				code |= c - '0'
			case c >= 'a' && c <= 'f':
				code |= c - 'a' + 10
			case c >= 'A' && c <= 'F':
				code |= c - 'A' + 10
			default:
				return 0, 0, verror.Parse(verror.IDInvalidLiteral, `\u escape`)
			}
		}
		return code, 5, nil
	default:
		return runes[at], 1, nil
	}
}

func snippet(runes []rune, pos int) string {
	if len(runes) == 0 {
		return ""
	}
	if pos >= len(runes) {
		pos = len(runes) - 1
	}
	window := 12
	start := pos - window
	if start < 0 {
		start = 0
	}
	end := pos + window + 1
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}
