package parse

import (
	"strconv"

	"github.com/arion-lang/mylang/internal/core"
	"github.com/arion-lang/mylang/internal/value"
	"github.com/arion-lang/mylang/internal/verror"
)

// Parse turns src (a whole module/script) into a StatementList: the
// top-level `module` production is just a `statement_list` run to EOF.
func Parse(src string) (*value.StatementList, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, src: []rune(src)}
	sl, err := p.parseStatementListUntil(func(t token) bool { return t.kind == tokEOF })
	if err != nil {
		return nil, err
	}
	return sl, nil
}

// ParseExpression parses a single standalone expression (used by the REPL
// to evaluate one typed-in line without requiring a full statement_list).
func ParseExpression(src string) (core.Value, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, src: []rune(src)}
	entries, _, err := p.parseEntries(isStatementStop, true, false)
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokEOF {
		return nil, verror.Parse(verror.IDInvalidSyntax, p.cur().text)
	}
	return buildArgs(entries), nil
}

type entry struct {
	keyed    bool
	name     string
	opAssign bool
	lhs      core.Value
	val      core.Value
}

type parser struct {
	toks  []token
	src   []rune
	pos   int
	depth int // > 0 inside (...) or [...]: newlines stop being statement separators
}

func (p *parser) cur() token {
	for p.depth > 0 && p.pos < len(p.toks) && p.toks[p.pos].kind == tokNewline {
		p.pos++
	}
	if p.pos >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) skipSeparators() {
	for p.cur().kind == tokNewline {
		p.pos++
	}
}

func isStatementStop(t token) bool {
	return t.kind == tokNewline || t.kind == tokEOF || t.kind == tokRBrace
}

// forceBlock converts a bare StatementList (produced only by a `{...}`
// that has not yet been composed into anything else) into the
// auto-evaluating ExecutionBlock form. Every position except the trailing
// argument of a top-level statement's args goes through this.
func forceBlock(v core.Value) core.Value {
	if sl, ok := v.(*value.StatementList); ok {
		return &value.ExecutionBlock{List: sl}
	}
	return v
}

// parseStatementListUntil parses statements separated by newlines/`;`
// until stop matches the current token (not consumed).
func (p *parser) parseStatementListUntil(stop func(token) bool) (*value.StatementList, error) {
	var stmts []core.Value
	p.skipSeparators()
	for !stop(p.cur()) {
		if p.cur().kind == tokEOF {
			return nil, verror.Parse(verror.IDUnclosedBlock, "}")
		}
		args, _, err := p.parseOneStatementArgs()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, args)
		if !isStatementStop(p.cur()) {
			return nil, verror.Parse(verror.IDInvalidSyntax, p.cur().text).WithNear(p.curSnippet())
		}
		p.skipSeparators()
	}
	return value.NewStatementList(stmts...), nil
}

func (p *parser) curSnippet() string {
	return snippet(p.src, p.cur().pos)
}

// parseOneStatementArgs parses exactly one `args` production at statement
// level: a sequence of positional/keyed items ending at a newline, `;`,
// EOF or the `}` closing an enclosing block. Its trailing bare `{...}`
// item, if any, stays a StatementList rather than being forced into an
// ExecutionBlock -- see the block-brackets decision in DESIGN.md.
func (p *parser) parseOneStatementArgs() (*value.Args, bool, error) {
	entries, lastBare, err := p.parseEntries(isStatementStop, true, false)
	if err != nil {
		return nil, false, err
	}
	return buildArgs(entries), lastBare, nil
}

// parseEntries parses items until stop matches the current token.
// allowAssignment permits `name=value`/`lvalue=value` items (false inside
// array literals). forceWrapAll converts every item's trailing bare
// StatementList into an ExecutionBlock -- used by every caller except the
// top-level statement-args list itself.
func (p *parser) parseEntries(stop func(token) bool, allowAssignment, forceWrapAll bool) ([]entry, bool, error) {
	var entries []entry
	lastBare := false
	for !stop(p.cur()) {
		if p.cur().kind == tokEOF {
			return nil, false, verror.Parse(verror.IDUnexpectedEOF)
		}
		e, bare, err := p.parseOneEntry(allowAssignment)
		if err != nil {
			return nil, false, err
		}
		if forceWrapAll {
			if bare && !e.keyed && !e.opAssign {
				e.val = forceBlock(e.val)
			}
			bare = false
		}
		entries = append(entries, e)
		lastBare = bare
		if p.cur().kind == tokComma {
			p.advance()
		}
	}
	return entries, lastBare, nil
}

func (p *parser) curIsWordLike() bool {
	switch p.cur().kind {
	case tokUnquoted, tokEscaped, tokSingle:
		return true
	default:
		return false
	}
}

func (p *parser) peekIsAssignOp() bool {
	idx := p.pos
	for p.depth > 0 && idx < len(p.toks) && p.toks[idx].kind == tokNewline {
		idx++
	}
	idx++
	for p.depth > 0 && idx < len(p.toks) && p.toks[idx].kind == tokNewline {
		idx++
	}
	return idx < len(p.toks) && p.toks[idx].kind == tokOp && p.toks[idx].text == "="
}

func (p *parser) parseOneEntry(allowAssignment bool) (entry, bool, error) {
	if allowAssignment && p.curIsWordLike() && p.peekIsAssignOp() {
		nameTok := p.advance()
		p.advance() // consume '='
		rhs, _, err := p.parseExpression()
		if err != nil {
			return entry{}, false, err
		}
		return entry{keyed: true, name: nameTok.text, val: forceBlock(rhs)}, false, nil
	}

	lhs, bare, err := p.parseExpression()
	if err != nil {
		return entry{}, false, err
	}
	if allowAssignment && p.cur().kind == tokOp && p.cur().text == "=" {
		p.advance()
		rhs, _, err := p.parseExpression()
		if err != nil {
			return entry{}, false, err
		}
		return entry{opAssign: true, lhs: forceBlock(lhs), val: forceBlock(rhs)}, false, nil
	}
	return entry{val: lhs}, bare, nil
}

func isBinaryOp(t token) bool {
	if t.kind != tokOp {
		return false
	}
	switch t.text {
	case "==", "+", "-", "*", ">", ">=", "<", "<=":
		return true
	default:
		return false
	}
}

func isUnaryOp(t token) bool {
	if t.kind != tokOp {
		return false
	}
	switch t.text {
	case "!", "$", "&", "-":
		return true
	default:
		return false
	}
}

// parseExpression folds a left-to-right chain of binary operators with no
// precedence levels: `3 + 4 * 2` parses as `(3 + 4) * 2`.
func (p *parser) parseExpression() (core.Value, bool, error) {
	val, bare, err := p.parseUnary()
	if err != nil {
		return nil, false, err
	}
	for isBinaryOp(p.cur()) {
		bare = false
		val = forceBlock(val)
		op := p.advance()
		rhs, _, err := p.parseUnary()
		if err != nil {
			return nil, false, err
		}
		val = value.NewBinaryOperation(op.text, val, forceBlock(rhs))
	}
	return val, bare, nil
}

// parseUnary handles the prefix operators `! $ & -`, which bind to a
// single following (possibly itself prefixed) operand.
func (p *parser) parseUnary() (core.Value, bool, error) {
	if isUnaryOp(p.cur()) {
		op := p.advance()
		operand, _, err := p.parseUnary()
		if err != nil {
			return nil, false, err
		}
		return value.NewUnaryOperation(op.text, forceBlock(operand)), false, nil
	}
	return p.parsePrimaryPath()
}

// parsePrimaryPath parses one primary value and folds any `.segment`
// continuations into a Path, including leading (`.a`) and trailing
// (`a.`) Dots markers.
func (p *parser) parsePrimaryPath() (core.Value, bool, error) {
	var segs []core.Value
	bare := false

	if p.cur().kind == tokDot {
		count := 0
		for p.cur().kind == tokDot {
			count++
			p.advance()
		}
		segs = append(segs, value.Dots{Count: count})
	} else {
		v, b, err := p.parsePrimary()
		if err != nil {
			return nil, false, err
		}
		segs = append(segs, v)
		bare = b
	}

	for p.cur().kind == tokDot {
		bare = false
		if len(segs) > 0 {
			segs[len(segs)-1] = forceBlock(segs[len(segs)-1])
		}
		p.advance()
		if p.cur().kind == tokDot {
			count := 1
			for p.cur().kind == tokDot {
				count++
				p.advance()
			}
			segs = append(segs, value.Dots{Count: count})
			continue
		}
		if p.segmentCanStart() {
			v, _, err := p.parsePrimary()
			if err != nil {
				return nil, false, err
			}
			segs = append(segs, v)
			continue
		}
		segs = append(segs, value.Dots{Count: 1})
	}

	if len(segs) == 1 {
		return segs[0], bare, nil
	}
	return value.NewPath(segs...), false, nil
}

func (p *parser) segmentCanStart() bool {
	switch p.cur().kind {
	case tokNumber, tokUnquoted, tokEscaped, tokSingle, tokBool, tokNull, tokUndefined,
		tokLParen, tokLBrace, tokLBracket, tokDot:
		return true
	default:
		return false
	}
}

// parsePrimary parses one literal, bracketed form or identifier -- never
// a path continuation (that is parsePrimaryPath's job).
func (p *parser) parsePrimary() (core.Value, bool, error) {
	t := p.cur()
	switch t.kind {
	case tokNumber:
		p.advance()
		return parseNumber(t.text)
	case tokUnquoted, tokEscaped, tokSingle:
		p.advance()
		return value.String(t.text), false, nil
	case tokBool:
		p.advance()
		return value.BoolOf(t.text == "true"), false, nil
	case tokNull:
		p.advance()
		return value.NullValue, false, nil
	case tokUndefined:
		p.advance()
		return value.UndefinedValue, false, nil
	case tokLParen:
		v, err := p.parseParenGroup()
		return v, false, err
	case tokLBrace:
		sl, err := p.parseBraceBody()
		return sl, true, err
	case tokLBracket:
		v, err := p.parseArrayLiteral()
		return v, false, err
	default:
		return nil, false, verror.Parse(verror.IDInvalidSyntax, t.text).WithNear(p.curSnippet())
	}
}

func parseNumber(text string) (core.Value, bool, error) {
	if !hasFraction(text) {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return value.Int(n), false, nil
		}
	}
	f, ok := value.NewFloatFromString(text)
	if !ok {
		return nil, false, verror.Parse(verror.IDInvalidLiteral, text)
	}
	return f, false, nil
}

func hasFraction(text string) bool {
	for _, r := range text {
		if r == '.' || r == 'e' || r == 'E' {
			return true
		}
	}
	return false
}

// parseParenGroup parses `(...)`. A single bare positional item unwraps
// transparently (plain grouping, e.g. `(3 + 4) * 2` or a path segment
// like `.(-1.2)`). Multiple positional items with no keyed/assignment
// entry are a nested call, dispatched immediately the same way a
// non-tail `{...}` ExecutionBlock is -- required for expressions like
// `n = (fact 5)` or `widget = (Button "ok")` to embed a whole call as
// a value. Any keyed or assignment entry (`(1 a=2)`) makes it a literal
// Dict instead.
func (p *parser) parseParenGroup() (core.Value, error) {
	p.advance() // '('
	p.depth++
	entries, _, err := p.parseEntries(func(t token) bool { return t.kind == tokRParen }, true, true)
	p.depth--
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokRParen {
		return nil, verror.Parse(verror.IDUnclosedBlock, ")").WithNear(p.curSnippet())
	}
	p.advance()

	hasAssignment := false
	for _, e := range entries {
		if e.keyed || e.opAssign {
			hasAssignment = true
			break
		}
	}
	if !hasAssignment && len(entries) == 1 {
		return entries[0].val, nil
	}
	if !hasAssignment {
		return &value.ExecutionBlock{List: value.NewStatementList(buildArgs(entries))}, nil
	}
	return buildDict(entries), nil
}

// parseBraceBody parses `{...}` as a bare StatementList. Whether it stays
// bare or gets forced into an ExecutionBlock is decided by the caller
// (parseOneStatementArgs keeps a trailing one bare; everyone else forces).
func (p *parser) parseBraceBody() (*value.StatementList, error) {
	p.advance() // '{'
	sl, err := p.parseStatementListUntil(func(t token) bool { return t.kind == tokRBrace })
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokRBrace {
		return nil, verror.Parse(verror.IDUnclosedBlock, "}").WithNear(p.curSnippet())
	}
	p.advance()
	return sl, nil
}

func (p *parser) parseArrayLiteral() (*value.Array, error) {
	p.advance() // '['
	p.depth++
	entries, _, err := p.parseEntries(func(t token) bool { return t.kind == tokRBracket }, false, true)
	p.depth--
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokRBracket {
		return nil, verror.Parse(verror.IDUnclosedBlock, "]").WithNear(p.curSnippet())
	}
	p.advance()
	vals := make([]core.Value, len(entries))
	for i, e := range entries {
		vals[i] = e.val
	}
	return value.NewArray(vals...), nil
}

func buildArgs(entries []entry) *value.Args {
	a := value.NewArgs()
	for _, e := range entries {
		switch {
		case e.keyed:
			a.SetKeyed(e.name, e.val)
		case e.opAssign:
			a.AppendPositional(value.NewBinaryOperation("=", e.lhs, e.val))
		default:
			a.AppendPositional(e.val)
		}
	}
	return a
}

func buildDict(entries []entry) *value.Dict {
	d := value.NewDict()
	posIdx := 0
	for _, e := range entries {
		switch {
		case e.keyed:
			d.Set(value.String(e.name), e.val)
		case e.opAssign:
			d.Set(e.lhs, e.val)
		default:
			d.Set(value.Int(posIdx), e.val)
			posIdx++
		}
	}
	return d
}
