package syntax

// ParseOptions configures the parser: a small struct of knobs plus a
// recursion-depth guard, with a DefaultParseOptions constructor.
type ParseOptions struct {
	// DotNewline determines whether '.' matches '\n'. DefaultParseOptions
	// sets this true, so '.' matches any byte including a newline by
	// default.
	DotNewline bool

	// MaxRecursionDepth limits parser recursion to prevent stack overflow
	// on deeply nested patterns (e.g. "((((((...))))))"). Default: 1000.
	MaxRecursionDepth int
}

// DefaultParseOptions returns sensible defaults for ParseOptions.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		DotNewline:        true,
		MaxRecursionDepth: 1000,
	}
}

// Parse parses pattern using the default options and returns its AST plus
// the number of capture groups found (group 0, the implicit whole match,
// is not counted here; groups are numbered left-to-right by opening
// paren order, starting at 1).
func Parse(pattern string) (Term, int, error) {
	return ParseWithOptions(pattern, DefaultParseOptions())
}

// ParseWithOptions parses pattern with explicit options.
func ParseWithOptions(pattern string, opts ParseOptions) (Term, int, error) {
	if opts.MaxRecursionDepth <= 0 {
		opts.MaxRecursionDepth = 1000
	}
	p := &parser{pattern: pattern, opts: opts}
	term, err := p.parseAlt(0)
	if err != nil {
		return Term{}, 0, err
	}
	if p.pos != len(pattern) {
		return Term{}, 0, newSyntaxError(pattern, p.pos, "unexpected %q", pattern[p.pos])
	}
	return term, p.groupCount, nil
}

// parser is a recursive-descent parser over the surface grammar: a
// config struct plus a recursion-depth guard threaded through the
// recursive parse methods.
type parser struct {
	pattern    string
	pos        int
	groupCount int
	opts       ParseOptions
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return newSyntaxError(p.pattern, p.pos, format, args...)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.pattern)
}

func (p *parser) peek() byte {
	return p.pattern[p.pos]
}

func (p *parser) advance() byte {
	c := p.pattern[p.pos]
	p.pos++
	return c
}

func (p *parser) checkDepth(depth int) error {
	if depth > p.opts.MaxRecursionDepth {
		return p.errorf("pattern nesting too deep")
	}
	return nil
}

// parseAlt parses the lowest-precedence operator, '|'.
func (p *parser) parseAlt(depth int) (Term, error) {
	if err := p.checkDepth(depth); err != nil {
		return Term{}, err
	}
	left, err := p.parseAnd(depth + 1)
	if err != nil {
		return Term{}, err
	}
	for !p.eof() && p.peek() == '|' {
		p.advance()
		right, err := p.parseAnd(depth + 1)
		if err != nil {
			return Term{}, err
		}
		left = Alt(left, right)
	}
	return left, nil
}

// parseAnd parses '&' (intersection), binding tighter than '|' but looser
// than concatenation.
func (p *parser) parseAnd(depth int) (Term, error) {
	if err := p.checkDepth(depth); err != nil {
		return Term{}, err
	}
	left, err := p.parseConcat(depth + 1)
	if err != nil {
		return Term{}, err
	}
	for !p.eof() && p.peek() == '&' {
		p.advance()
		right, err := p.parseConcat(depth + 1)
		if err != nil {
			return Term{}, err
		}
		left = And(left, right)
	}
	return left, nil
}

// parseConcat parses a run of juxtaposed repeat-expressions.
func (p *parser) parseConcat(depth int) (Term, error) {
	if err := p.checkDepth(depth); err != nil {
		return Term{}, err
	}
	result := EmptyString()
	for !p.eof() && !isConcatStop(p.peek()) {
		term, err := p.parseRepeat(depth + 1)
		if err != nil {
			return Term{}, err
		}
		result = Cat(result, term)
	}
	return result, nil
}

func isConcatStop(c byte) bool {
	return c == '|' || c == '&' || c == ')'
}

// parseRepeat parses an atom followed by any number of postfix
// quantifiers: '*', '+' (sugar for r·r*), '?' (sugar for r|ε).
func (p *parser) parseRepeat(depth int) (Term, error) {
	if err := p.checkDepth(depth); err != nil {
		return Term{}, err
	}
	term, err := p.parseUnary(depth + 1)
	if err != nil {
		return Term{}, err
	}
	for !p.eof() {
		switch p.peek() {
		case '*':
			p.advance()
			term = Star(term)
		case '+':
			p.advance()
			term = Cat(term, Star(term))
		case '?':
			p.advance()
			term = Alt(term, EmptyString())
		default:
			return term, nil
		}
	}
	return term, nil
}

// parseUnary parses the prefix complement operator '~', which binds
// tighter than concatenation (applies to the single atom that follows).
func (p *parser) parseUnary(depth int) (Term, error) {
	if err := p.checkDepth(depth); err != nil {
		return Term{}, err
	}
	if !p.eof() && p.peek() == '~' {
		p.advance()
		inner, err := p.parseUnary(depth + 1)
		if err != nil {
			return Term{}, err
		}
		return Not(inner), nil
	}
	return p.parseAtom(depth + 1)
}

// parseAtom parses a single atom: a group, a character class, '.', or a
// literal character.
func (p *parser) parseAtom(depth int) (Term, error) {
	if err := p.checkDepth(depth); err != nil {
		return Term{}, err
	}
	if p.eof() {
		return Term{}, p.errorf("unexpected end of pattern")
	}
	switch c := p.peek(); c {
	case '(':
		return p.parseGroup(depth + 1)
	case '[':
		return p.parseClass()
	case '.':
		p.advance()
		if p.opts.DotNewline {
			return AnyChar(), nil
		}
		return Chr(CharSet{{Lo: 0x00, Hi: '\n' - 1}, {Lo: '\n' + 1, Hi: 0xFF}}), nil
	case '*', '+', '?':
		return Term{}, p.errorf("repetition operator %q with nothing to repeat", c)
	case ')':
		return Term{}, p.errorf("unmatched %q", c)
	case '\\':
		return p.parseEscape()
	default:
		p.advance()
		return Chr(CharSet{{Lo: c, Hi: c}}), nil
	}
}

// parseGroup parses a capturing group "(...)" and assigns its number by
// opening-paren order.
func (p *parser) parseGroup(depth int) (Term, error) {
	p.advance() // consume '('
	p.groupCount++
	id := p.groupCount
	inner, err := p.parseAlt(depth + 1)
	if err != nil {
		return Term{}, err
	}
	if p.eof() || p.peek() != ')' {
		return Term{}, p.errorf("missing closing ')'")
	}
	p.advance()
	return Group(id, inner), nil
}

// parseEscape parses a backslash escape: either a class shorthand (\d,
// \D, \w, \W, \s, \S) or an escaped literal character.
func (p *parser) parseEscape() (Term, error) {
	p.advance() // consume '\'
	if p.eof() {
		return Term{}, p.errorf("trailing backslash")
	}
	c := p.advance()
	if set, ok := classShorthand(c); ok {
		return Chr(set), nil
	}
	return Chr(CharSet{{Lo: c, Hi: c}}), nil
}

func classShorthand(c byte) (CharSet, bool) {
	switch c {
	case 'd':
		return CharSet{{Lo: '0', Hi: '9'}}, true
	case 'D':
		return CharSet{{Lo: '0', Hi: '9'}}.Complement(), true
	case 'w':
		return CharSet{{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'Z'}, {Lo: 'a', Hi: 'z'}, {Lo: '_', Hi: '_'}}, true
	case 'W':
		return CharSet{{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'Z'}, {Lo: 'a', Hi: 'z'}, {Lo: '_', Hi: '_'}}.Complement(), true
	case 's':
		return CharSet{{Lo: '\t', Hi: '\n'}, {Lo: '\f', Hi: '\r'}, {Lo: ' ', Hi: ' '}}, true
	case 'S':
		return CharSet{{Lo: '\t', Hi: '\n'}, {Lo: '\f', Hi: '\r'}, {Lo: ' ', Hi: ' '}}.Complement(), true
	case 'n':
		return CharSet{{Lo: '\n', Hi: '\n'}}, true
	case 't':
		return CharSet{{Lo: '\t', Hi: '\t'}}, true
	case 'r':
		return CharSet{{Lo: '\r', Hi: '\r'}}, true
	default:
		return nil, false
	}
}

// parseClass parses a character class "[...]" / "[^...]" with ranges
// ("a-z") and escapes.
func (p *parser) parseClass() (Term, error) {
	start := p.pos
	p.advance() // consume '['
	negate := false
	if !p.eof() && p.peek() == '^' {
		negate = true
		p.advance()
	}

	var ranges []Range
	first := true
	for {
		if p.eof() {
			return Term{}, newSyntaxError(p.pattern, start, "unterminated character class")
		}
		if p.peek() == ']' && !first {
			p.advance()
			break
		}
		first = false

		lo, set, err := p.parseClassItem()
		if err != nil {
			return Term{}, err
		}
		if set != nil {
			ranges = append(ranges, set...)
			continue
		}
		hi := lo
		if !p.eof() && p.peek() == '-' && p.pos+1 < len(p.pattern) && p.pattern[p.pos+1] != ']' {
			p.advance() // consume '-'
			hi2, set2, err := p.parseClassItem()
			if err != nil {
				return Term{}, err
			}
			if set2 != nil {
				return Term{}, p.errorf("invalid range end")
			}
			hi = hi2
			if hi < lo {
				return Term{}, p.errorf("invalid range %q-%q", lo, hi)
			}
		}
		ranges = append(ranges, Range{Lo: lo, Hi: hi})
	}

	cs := NewCharSet(ranges...)
	if negate {
		cs = cs.Complement()
	}
	if cs.IsEmpty() {
		return Term{}, newSyntaxError(p.pattern, start, "empty character class")
	}
	return Chr(cs), nil
}

// parseClassItem parses one element inside "[...]": either a single byte
// (returned as lo, nil) or a shorthand class (returned as 0, ranges).
func (p *parser) parseClassItem() (byte, []Range, error) {
	if p.peek() == '\\' {
		p.advance()
		if p.eof() {
			return 0, nil, p.errorf("trailing backslash in character class")
		}
		c := p.advance()
		if set, ok := classShorthand(c); ok {
			return 0, []Range(set), nil
		}
		return c, nil, nil
	}
	return p.advance(), nil, nil
}
