package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota

	IDENT // domain or binding name
	INT   // multiplicity or numeric binding

	// Keywords
	TOEHOLD
	ENZYMES
	NICK

	// Strand delimiters
	LANGLE   // <
	RANGLE   // >
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]
	LPAREN   // (
	RPAREN   // )

	// Joins and separators
	COLON     // :   lower-edge join
	DCOLON    // ::  upper-edge join
	PIPE      // |
	SEMICOLON // ;
	COMMA     // ,

	// Site modifiers
	CARET // ^
	STAR  // *
	BANG  // !
)

var tokenNames = map[TokenType]string{
	EOF:       "end of input",
	IDENT:     "identifier",
	INT:       "integer",
	TOEHOLD:   "toehold",
	ENZYMES:   "enzymes",
	NICK:      "nick",
	LANGLE:    "<",
	RANGLE:    ">",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	LPAREN:    "(",
	RPAREN:    ")",
	COLON:     ":",
	DCOLON:    "::",
	PIPE:      "|",
	SEMICOLON: ";",
	COMMA:     ",",
	CARET:     "^",
	STAR:      "*",
	BANG:      "!",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

var keywords = map[string]TokenType{
	"toehold": TOEHOLD,
	"enzymes": ENZYMES,
	"nick":    NICK,
}

// Token is a single lexeme with its 1-based source position.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
}
