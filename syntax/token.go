package syntax

import "cfgs/logging"

// Token represents a token read in by the lexer
type Token struct {
	Kind  int
	Value string

	// Line is line number starting at 1
	Line int

	// Col is the column number of the first character starting at 1
	Col int
}

// Position returns the text position of the token.  Tokens whose value differs
// from their source text (string literals, EOF) report a single-column span.
func (t *Token) Position() *logging.TextPosition {
	width := len(t.Value)
	if width == 0 || t.Kind == STRINGLIT || t.Kind == CHARLIT {
		width = 1
	}

	return &logging.TextPosition{StartLn: t.Line, StartCol: t.Col, EndLn: t.Line, EndCol: t.Col + width}
}

// The various kinds of a tokens supported by the lexer
const (
	// statements
	PRINT = iota
	PRINTC
	IMPORT
	FUNC
	RETURN
	DELETE

	// control flow
	IF
	ELSE
	WHILE
	BREAK
	CONTINUE
	MATCH
	CASE
	DEFAULT

	// exceptions
	TRY
	CATCH
	FINALLY
	THROW

	// type definitions
	STRUCT
	ENUM
	NEW

	// arithmetic operators
	PLUS
	MINUS
	STAR
	DIVIDE
	MOD
	POWER
	INCREM
	DECREM

	// boolean operators
	LT
	GT
	LTEQ
	GTEQ
	EQ
	NEQ
	NOT
	AND
	OR

	// bitwise operators
	AMP
	PIPE
	BXOR
	LSHIFT
	RSHIFT

	ASSIGN

	// punctuation
	DOT
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	SEMICOLON
	COLON

	// literals (and identifiers)
	IDENTIFIER
	STRINGLIT
	NUMLIT
	CHARLIT
	BOOLLIT
	NULL

	EOF
)

// token patterns (matching strings) for keywords
var keywordPatterns = map[string]int{
	"print":    PRINT,
	"printc":   PRINTC,
	"import":   IMPORT,
	"func":     FUNC,
	"return":   RETURN,
	"delete":   DELETE,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"break":    BREAK,
	"continue": CONTINUE,
	"match":    MATCH,
	"case":     CASE,
	"default":  DEFAULT,
	"try":      TRY,
	"catch":    CATCH,
	"finally":  FINALLY,
	"throw":    THROW,
	"struct":   STRUCT,
	"enum":     ENUM,
	"new":      NEW,
	"true":     BOOLLIT,
	"false":    BOOLLIT,
	"null":     NULL,
}

// token patterns for symbolic items - longest match wins
var symbolPatterns = map[string]int{
	"+":  PLUS,
	"++": INCREM,
	"-":  MINUS,
	"--": DECREM,
	"*":  STAR,
	"**": POWER,
	"/":  DIVIDE,
	"%":  MOD,
	"<":  LT,
	">":  GT,
	"<=": LTEQ,
	">=": GTEQ,
	"==": EQ,
	"!=": NEQ,
	"!":  NOT,
	"&&": AND,
	"||": OR,
	"&":  AMP,
	"|":  PIPE,
	"^":  BXOR,
	"<<": LSHIFT,
	">>": RSHIFT,
	"=":  ASSIGN,
	".":  DOT,
	"(":  LPAREN,
	")":  RPAREN,
	"{":  LBRACE,
	"}":  RBRACE,
	"[":  LBRACKET,
	"]":  RBRACKET,
	",":  COMMA,
	";":  SEMICOLON,
	":":  COLON,
}

// kindNames is used to name token kinds in syntax errors
var kindNames = map[int]string{
	IDENTIFIER: "identifier",
	STRINGLIT:  "string",
	NUMLIT:     "number",
	CHARLIT:    "char",
	BOOLLIT:    "boolean",
	EOF:        "end of input",
}

func init() {
	for pattern, kind := range keywordPatterns {
		if _, ok := kindNames[kind]; !ok {
			kindNames[kind] = "`" + pattern + "`"
		}
	}

	for pattern, kind := range symbolPatterns {
		kindNames[kind] = "`" + pattern + "`"
	}
}

// KindName returns the display name of a token kind
func KindName(kind int) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}

	return "unknown token"
}
