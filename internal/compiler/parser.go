package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/gatefold/pkg/domain"
)

// Parser converts source text into a domain.SourceModel.
//
// Grammar:
//
//	model     = ("toehold" IDENT+)* enzymes? entry ("|" entry)* EOF
//	enzymes   = "enzymes" "[" nick (";" nick)* ";"? "]"
//	nick      = "nick" "(" domain* "," domain* ")"
//	entry     = INT? "[" species ("|" species)* "]"   (when "[" is followed by < { or [)
//	          | INT? species
//	species   = strand | segment ((":" | "::") segment)*
//	strand    = "<" site* ">" | "{" site* "}"
//	segment   = arms "[" site* "]" arms
//	arms      = (("<" | "{") site* (">" | "}"))*
//	site      = domain ("!" (IDENT | INT))?
//	domain    = IDENT "^"? "*"?
//
// An arm "<...}" is a left hairpin loop and "{...>" a right one.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes source text into a source model.
func (p *Parser) Parse(data []byte) (*domain.SourceModel, error) {
	return Parse(string(data))
}

// Parse decodes source text into a source model.
func Parse(src string) (*domain.SourceModel, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, withSnippet(err, src)
	}
	s := &parseState{tokens: tokens}
	model, err := s.parseModel()
	if err != nil {
		return nil, withSnippet(err, src)
	}
	return model, nil
}

func withSnippet(err error, src string) error {
	serr, ok := err.(*SyntaxError)
	if !ok {
		return err
	}
	lines := strings.Split(src, "\n")
	if serr.Line >= 1 && serr.Line <= len(lines) {
		serr.Snippet = strings.TrimSpace(lines[serr.Line-1])
	}
	return serr
}

type parseState struct {
	tokens []Token
	pos    int
}

func (s *parseState) peek() Token {
	return s.peekAt(0)
}

func (s *parseState) peekAt(offset int) Token {
	if s.pos+offset >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[s.pos+offset]
}

func (s *parseState) advance() Token {
	tok := s.peek()
	if s.pos < len(s.tokens) {
		s.pos++
	}
	return tok
}

func (s *parseState) errorf(tok Token, format string, args ...any) error {
	return &SyntaxError{Line: tok.Line, Column: tok.Column, Msg: fmt.Sprintf(format, args...)}
}

func (s *parseState) expect(tt TokenType) (Token, error) {
	tok := s.advance()
	if tok.Type != tt {
		return tok, s.errorf(tok, "expected %s, got %s", tt, describe(tok))
	}
	return tok, nil
}

func describe(tok Token) string {
	if tok.Type == EOF || tok.Lexeme == "" {
		return tok.Type.String()
	}
	return fmt.Sprintf("%q", tok.Lexeme)
}

func (s *parseState) parseModel() (*domain.SourceModel, error) {
	model := &domain.SourceModel{}

	for s.peek().Type == TOEHOLD {
		kw := s.advance()
		if s.peek().Type != IDENT {
			return nil, s.errorf(kw, "toehold declaration needs at least one name")
		}
		for s.peek().Type == IDENT {
			model.Toeholds = append(model.Toeholds, s.advance().Lexeme)
		}
	}

	if s.peek().Type == ENZYMES {
		nicks, err := s.parseEnzymes()
		if err != nil {
			return nil, err
		}
		model.Nicks = nicks
	}

	if s.peek().Type == EOF {
		return nil, s.errorf(s.peek(), "expected at least one species")
	}

	for {
		c, err := s.parseEntry()
		if err != nil {
			return nil, err
		}
		model.Complexes = append(model.Complexes, c)
		if s.peek().Type != PIPE {
			break
		}
		s.advance()
	}

	if _, err := s.expect(EOF); err != nil {
		return nil, err
	}
	return model, nil
}

func (s *parseState) parseEnzymes() ([]domain.Nick, error) {
	if _, err := s.expect(ENZYMES); err != nil {
		return nil, err
	}
	if _, err := s.expect(LBRACKET); err != nil {
		return nil, err
	}

	var nicks []domain.Nick
	for s.peek().Type == NICK {
		n, err := s.parseNick()
		if err != nil {
			return nil, err
		}
		nicks = append(nicks, n)
		if s.peek().Type != SEMICOLON {
			break
		}
		s.advance()
	}

	if _, err := s.expect(RBRACKET); err != nil {
		return nil, err
	}
	return nicks, nil
}

func (s *parseState) parseNick() (domain.Nick, error) {
	var n domain.Nick
	if _, err := s.expect(NICK); err != nil {
		return n, err
	}
	if _, err := s.expect(LPAREN); err != nil {
		return n, err
	}
	for s.peek().Type == IDENT {
		d, err := s.parseDomain()
		if err != nil {
			return n, err
		}
		n.Left = append(n.Left, d)
	}
	if _, err := s.expect(COMMA); err != nil {
		return n, err
	}
	for s.peek().Type == IDENT {
		d, err := s.parseDomain()
		if err != nil {
			return n, err
		}
		n.Right = append(n.Right, d)
	}
	if _, err := s.expect(RPAREN); err != nil {
		return n, err
	}
	return n, nil
}

func (s *parseState) parseEntry() (domain.SourceComplex, error) {
	c := domain.SourceComplex{Multiplicity: 1}

	if tok := s.peek(); tok.Type == INT {
		n, err := strconv.Atoi(tok.Lexeme)
		if err != nil || n < 1 {
			return c, s.errorf(tok, "multiplicity must be a positive integer, got %s", tok.Lexeme)
		}
		c.Multiplicity = n
		s.advance()
	}

	if s.peek().Type == LBRACKET && opensSpecies(s.peekAt(1).Type) {
		s.advance()
		for {
			sp, err := s.parseSpecies()
			if err != nil {
				return c, err
			}
			c.Species = append(c.Species, sp)
			if s.peek().Type != PIPE {
				break
			}
			s.advance()
		}
		if _, err := s.expect(RBRACKET); err != nil {
			return c, err
		}
		return c, nil
	}

	sp, err := s.parseSpecies()
	if err != nil {
		return c, err
	}
	c.Species = []domain.Species{sp}
	return c, nil
}

// opensSpecies reports whether a token following "[" starts a species, which
// makes the bracket a complex wrapper rather than a double-stranded region.
func opensSpecies(tt TokenType) bool {
	return tt == LANGLE || tt == LBRACE || tt == LBRACKET
}

func (s *parseState) parseSpecies() (domain.Species, error) {
	seg, lone, err := s.parseSegment(true)
	if err != nil {
		return domain.Species{}, err
	}
	if lone != nil {
		return domain.StrandSpecies(lone), nil
	}

	g := domain.Singleton(seg)
	for {
		op := s.peek().Type
		if op != COLON && op != DCOLON {
			break
		}
		s.advance()
		next, _, err := s.parseSegment(false)
		if err != nil {
			return domain.Species{}, err
		}
		if op == COLON {
			g = domain.JoinLower(g, domain.Singleton(next))
		} else {
			g = domain.JoinUpper(g, domain.Singleton(next))
		}
	}
	return domain.GateSpecies(g), nil
}

type armKind int

const (
	armUpper        armKind = iota // <...>
	armLower                       // {...}
	armHairpinLeft                 // <...}
	armHairpinRight                // {...>
)

type arm struct {
	kind  armKind
	sites domain.Strand
	tok   Token
}

func (s *parseState) parseArms() ([]arm, error) {
	var arms []arm
	for {
		open := s.peek()
		if open.Type != LANGLE && open.Type != LBRACE {
			return arms, nil
		}
		s.advance()
		sites, err := s.parseSites()
		if err != nil {
			return nil, err
		}
		closing := s.advance()
		a := arm{sites: sites, tok: open}
		switch {
		case open.Type == LANGLE && closing.Type == RANGLE:
			a.kind = armUpper
		case open.Type == LBRACE && closing.Type == RBRACE:
			a.kind = armLower
		case open.Type == LANGLE && closing.Type == RBRACE:
			a.kind = armHairpinLeft
		case open.Type == LBRACE && closing.Type == RANGLE:
			a.kind = armHairpinRight
		default:
			return nil, s.errorf(closing, "expected '>' or '}' to close strand, got %s", describe(closing))
		}
		arms = append(arms, a)
	}
}

// parseSegment reads one segment. When allowLone is set and the input is a
// single upper or lower strand with no double-stranded region, that strand is
// returned instead.
func (s *parseState) parseSegment(allowLone bool) (domain.Segment, domain.Strand, error) {
	pre, err := s.parseArms()
	if err != nil {
		return domain.Segment{}, nil, err
	}

	if s.peek().Type != LBRACKET {
		next := s.peek().Type
		if allowLone && len(pre) == 1 && next != COLON && next != DCOLON {
			switch pre[0].kind {
			case armUpper:
				return domain.Segment{}, nonNil(pre[0].sites), nil
			case armLower:
				return domain.Segment{}, nonNil(pre[0].sites.Reverse()), nil
			}
			return domain.Segment{}, nil, s.errorf(pre[0].tok, "hairpin arm without a double-stranded region")
		}
		return domain.Segment{}, nil, s.errorf(s.peek(), "expected '[' to open a double-stranded region, got %s", describe(s.peek()))
	}
	s.advance()

	middle, err := s.parseSites()
	if err != nil {
		return domain.Segment{}, nil, err
	}
	if _, err := s.expect(RBRACKET); err != nil {
		return domain.Segment{}, nil, err
	}

	post, err := s.parseArms()
	if err != nil {
		return domain.Segment{}, nil, err
	}

	return s.buildSegment(pre, middle, post)
}

func nonNil(s domain.Strand) domain.Strand {
	if s == nil {
		return domain.Strand{}
	}
	return s
}

func (s *parseState) buildSegment(pre []arm, middle domain.Strand, post []arm) (domain.Segment, domain.Strand, error) {
	var loopLeft, loopRight *arm
	var upperLeft, lowerLeft, upperRight, lowerRight *arm

	for i := range pre {
		a := &pre[i]
		switch a.kind {
		case armHairpinLeft:
			if len(pre) != 1 {
				return domain.Segment{}, nil, s.errorf(a.tok, "a left hairpin arm cannot be combined with overhangs")
			}
			loopLeft = a
		case armHairpinRight:
			return domain.Segment{}, nil, s.errorf(a.tok, "a right hairpin arm must follow the double-stranded region")
		case armUpper:
			if upperLeft != nil {
				return domain.Segment{}, nil, s.errorf(a.tok, "duplicate upper overhang")
			}
			upperLeft = a
		case armLower:
			if lowerLeft != nil {
				return domain.Segment{}, nil, s.errorf(a.tok, "duplicate lower overhang")
			}
			lowerLeft = a
		}
	}

	for i := range post {
		a := &post[i]
		switch a.kind {
		case armHairpinRight:
			if len(post) != 1 {
				return domain.Segment{}, nil, s.errorf(a.tok, "a right hairpin arm cannot be combined with overhangs")
			}
			loopRight = a
		case armHairpinLeft:
			return domain.Segment{}, nil, s.errorf(a.tok, "a left hairpin arm must precede the double-stranded region")
		case armUpper:
			if upperRight != nil {
				return domain.Segment{}, nil, s.errorf(a.tok, "duplicate upper overhang")
			}
			upperRight = a
		case armLower:
			if lowerRight != nil {
				return domain.Segment{}, nil, s.errorf(a.tok, "duplicate lower overhang")
			}
			lowerRight = a
		}
	}

	sites := func(a *arm) domain.Strand {
		if a == nil {
			return nil
		}
		return a.sites
	}

	switch {
	case loopLeft != nil && loopRight != nil:
		return domain.Segment{}, nil, s.errorf(loopRight.tok, "a segment cannot be closed by hairpins on both sides")
	case loopLeft != nil:
		return domain.HairpinLeft(loopLeft.sites, middle, sites(upperRight), sites(lowerRight)), nil, nil
	case loopRight != nil:
		return domain.HairpinRight(loopRight.sites, middle, sites(upperLeft), sites(lowerLeft)), nil, nil
	}
	return domain.MiddleSegment(sites(upperLeft), sites(lowerLeft), middle, sites(upperRight), sites(lowerRight)), nil, nil
}

func (s *parseState) parseSites() (domain.Strand, error) {
	var out domain.Strand
	for s.peek().Type == IDENT {
		site, err := s.parseSite()
		if err != nil {
			return nil, err
		}
		out = append(out, site)
	}
	return out, nil
}

func (s *parseState) parseSite() (domain.Site, error) {
	d, err := s.parseDomain()
	if err != nil {
		return domain.Site{}, err
	}
	site := domain.Site{Domain: d}
	if s.peek().Type == BANG {
		s.advance()
		tok := s.advance()
		if tok.Type != IDENT && tok.Type != INT {
			return domain.Site{}, s.errorf(tok, "expected binding name after '!', got %s", describe(tok))
		}
		site.Binding = domain.Binding(tok.Lexeme)
	}
	return site, nil
}

func (s *parseState) parseDomain() (domain.Domain, error) {
	tok, err := s.expect(IDENT)
	if err != nil {
		return domain.Domain{}, err
	}
	d := domain.Domain{Name: tok.Lexeme}
	if s.peek().Type == CARET {
		s.advance()
		d.Toehold = true
	}
	if s.peek().Type == STAR {
		s.advance()
		d.Complement = true
	}
	return d, nil
}
