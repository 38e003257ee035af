package syntax

import (
	"strings"
	"unicode"
)

// Lexer converts source text into a flat stream of tokens.  The lexer is
// lenient: characters it does not recognize are skipped and unterminated
// literals run to the end of the input.
type Lexer struct {
	src []rune
	pos int

	line int
	col  int

	tokBuilder strings.Builder
}

// NewLexer creates a lexer for the given source text
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

// Tokenize lexes a whole source text.  The returned slice always ends with an
// EOF token.
func Tokenize(src string) []*Token {
	l := NewLexer(src)

	var toks []*Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)

		if tok.Kind == EOF {
			return toks
		}
	}
}

// NextToken reads a single token from the source.  Once the end of the input
// is reached, it returns EOF tokens indefinitely.
func (l *Lexer) NextToken() *Token {
	for {
		c, ok := l.peek()
		if !ok {
			return &Token{Kind: EOF, Line: l.line, Col: l.col}
		}

		// record the position of the first character of the token
		line, col := l.line, l.col
		l.tokBuilder.Reset()

		var tok *Token
		switch {
		case unicode.IsSpace(c):
			l.skipNext()
			continue
		case c == '#':
			l.skipLineComment()
			continue
		case c == '"':
			l.skipNext()
			tok = &Token{Kind: STRINGLIT, Value: l.readQuoted('"')}
		case c == '\'':
			l.skipNext()
			tok = &Token{Kind: CHARLIT, Value: l.readQuoted('\'')}
		case IsDigit(c):
			tok = l.readNumber()
		case unicode.IsLetter(c):
			tok = l.readWord()
		default:
			if kind, ok := symbolPatterns[string(c)]; ok {
				l.readNext()

				// all compound tokens begin with valid single tokens so keep
				// reading as long as the lookahead extends a valid pattern
				for ahead, more := l.peek(); more; ahead, more = l.peek() {
					if skind, ok := symbolPatterns[l.tokBuilder.String()+string(ahead)]; ok {
						kind = skind
						l.readNext()
					} else {
						break
					}
				}

				tok = &Token{Kind: kind, Value: l.tokBuilder.String()}
			} else {
				// unknown characters are dropped
				l.skipNext()
				continue
			}
		}

		tok.Line, tok.Col = line, col
		return tok
	}
}

// -----------------------------------------------------------------------------

// IsDigit tests if a rune is an ASCII digit
func IsDigit(r rune) bool {
	return r > '/' && r < ':'
}

// peek returns the current rune without consuming it
func (l *Lexer) peek() (rune, bool) {
	if l.pos < len(l.src) {
		return l.src[l.pos], true
	}

	return 0, false
}

// skipNext consumes the current rune updating the line and column counters.
func (l *Lexer) skipNext() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}

	r := l.src[l.pos]
	l.pos++

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r, true
}

// readNext consumes the current rune into the token builder
func (l *Lexer) readNext() bool {
	r, ok := l.skipNext()
	if ok {
		l.tokBuilder.WriteRune(r)
	}

	return ok
}

// skipLineComment skips everything up to and including the next newline
func (l *Lexer) skipLineComment() {
	for r, ok := l.skipNext(); ok && r != '\n'; r, ok = l.skipNext() {
	}
}

// readWord reads an identifier or a keyword
func (l *Lexer) readWord() *Token {
	for c, more := l.peek(); more && (unicode.IsLetter(c) || IsDigit(c) || c == '_'); c, more = l.peek() {
		l.readNext()
	}

	word := l.tokBuilder.String()
	if kind, ok := keywordPatterns[word]; ok {
		return &Token{Kind: kind, Value: word}
	}

	return &Token{Kind: IDENTIFIER, Value: word}
}

// readNumber reads a decimal number literal: any run of digits and dots.  The
// parser is responsible for rejecting malformed numbers such as `1.2.3`.
func (l *Lexer) readNumber() *Token {
	for c, more := l.peek(); more && (IsDigit(c) || c == '.'); c, more = l.peek() {
		l.readNext()
	}

	return &Token{Kind: NUMLIT, Value: l.tokBuilder.String()}
}

// readQuoted reads the body of a string or char literal whose opening quote
// has already been consumed.  The closing quote is consumed but not included.
func (l *Lexer) readQuoted(quote rune) string {
	var sb strings.Builder

	for {
		c, ok := l.skipNext()
		if !ok || c == quote {
			break
		}

		if c == '\\' {
			esc, ok := l.skipNext()
			if !ok {
				break
			}

			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 'r':
				sb.WriteRune('\r')
			case 't':
				sb.WriteRune('\t')
			case '0':
				sb.WriteRune(0)
			default:
				// `\"`, `\'`, `\\` and unknown escapes all yield the escaped
				// character itself
				sb.WriteRune(esc)
			}
		} else {
			sb.WriteRune(c)
		}
	}

	return sb.String()
}
