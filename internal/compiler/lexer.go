package compiler

import (
	"unicode"
)

// Lexer holds the mutable state of one scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // 1-based
	col  int // 1-based column of the next rune
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) errorf(line, col int, msg string) error {
	return &SyntaxError{Line: line, Column: col, Msg: msg}
}

// skipTrivia discards whitespace, "// ..." line comments and "(* ... *)" block comments.
func (l *Lexer) skipTrivia() error {
	for l.pos < len(l.src) {
		r := l.peek()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '/' && l.peek2() == '/':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		case r == '(' && l.peek2() == '*':
			line, col := l.line, l.col
			l.advance()
			l.advance()
			closed := false
			for l.pos < len(l.src) {
				if l.peek() == '*' && l.peek2() == ')' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return l.errorf(line, col, "unterminated comment")
			}
		default:
			return nil
		}
	}
	return nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\''
}

var punctuation = map[rune]TokenType{
	'<': LANGLE,
	'>': RANGLE,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	'(': LPAREN,
	')': RPAREN,
	'|': PIPE,
	';': SEMICOLON,
	',': COMMA,
	'^': CARET,
	'*': STAR,
	'!': BANG,
}

// Tokenize scans the whole source. The last token is always EOF.
func Tokenize(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token

	for {
		if err := l.skipTrivia(); err != nil {
			return nil, err
		}
		line, col := l.line, l.col
		if l.pos >= len(l.src) {
			tokens = append(tokens, Token{Type: EOF, Line: line, Column: col})
			return tokens, nil
		}

		r := l.peek()
		switch {
		case isIdentStart(r):
			start := l.pos
			for l.pos < len(l.src) && isIdentPart(l.peek()) {
				l.advance()
			}
			lexeme := string(l.src[start:l.pos])
			tt := IDENT
			if kw, ok := keywords[lexeme]; ok {
				tt = kw
			}
			tokens = append(tokens, Token{Type: tt, Lexeme: lexeme, Line: line, Column: col})

		case unicode.IsDigit(r):
			start := l.pos
			for l.pos < len(l.src) && unicode.IsDigit(l.peek()) {
				l.advance()
			}
			if l.pos < len(l.src) && isIdentStart(l.peek()) {
				return nil, l.errorf(line, col, "identifiers must not start with a digit")
			}
			tokens = append(tokens, Token{Type: INT, Lexeme: string(l.src[start:l.pos]), Line: line, Column: col})

		case r == ':':
			l.advance()
			if l.peek() == ':' {
				l.advance()
				tokens = append(tokens, Token{Type: DCOLON, Lexeme: "::", Line: line, Column: col})
			} else {
				tokens = append(tokens, Token{Type: COLON, Lexeme: ":", Line: line, Column: col})
			}

		default:
			tt, ok := punctuation[r]
			if !ok {
				return nil, l.errorf(line, col, "unexpected character "+quoteRune(r))
			}
			l.advance()
			tokens = append(tokens, Token{Type: tt, Lexeme: string(r), Line: line, Column: col})
		}
	}
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}
