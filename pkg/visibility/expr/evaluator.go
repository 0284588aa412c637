// Package expr implements the textual visibleIf rule language used by
// calculator inputs.
//
// Supported forms:
//   - truthiness: `advanced`
//   - equality: `unit == "metric"`, `count != 3`, `enabled == true`, `note == null`
//   - numeric ordering: `age >= 18`, `amount < 1000`
//   - composition: `!a`, `a && b`, `a || b`, parentheses
//
// Identifiers resolve against visibility.Context.Values, or against
// visibility.Context.Extras with the `extras.` prefix.
package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-calckit/pkg/visibility"
)

// Program is a compiled rule. It is immutable and safe for concurrent use.
type Program struct {
	rule        string
	root        exprNode
	identifiers []string
}

// Compile parses rule. A blank rule compiles to a program that always yields
// true.
func Compile(rule string) (*Program, error) {
	trimmed := strings.TrimSpace(rule)
	prog := &Program{rule: trimmed}
	if trimmed == "" {
		return prog, nil
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return prog, nil
	}
	root, identifiers, err := parseExpression(tokens)
	if err != nil {
		return nil, err
	}
	prog.root = root
	prog.identifiers = identifiers
	return prog, nil
}

// Check reports whether rule parses.
func Check(rule string) error {
	_, err := Compile(rule)
	return err
}

// String returns the normalised source rule.
func (p *Program) String() string { return p.rule }

// Identifiers lists the names referenced by the rule in order of first use,
// excluding bare words used as string literals on the right of a comparison.
func (p *Program) Identifiers() []string {
	return append([]string(nil), p.identifiers...)
}

// Eval runs the program against ctx.
func (p *Program) Eval(ctx visibility.Context) (bool, error) {
	if p == nil || p.root == nil {
		return true, nil
	}
	return p.root.eval(ctx)
}

// Evaluator implements visibility.Evaluator, caching compiled rules.
type Evaluator struct {
	cache sync.Map
}

// New returns an Evaluator with an empty rule cache.
func New() *Evaluator { return &Evaluator{} }

// Eval compiles (once per distinct rule) and evaluates rule.
func (e *Evaluator) Eval(inputID, rule string, ctx visibility.Context) (bool, error) {
	if cached, ok := e.cache.Load(rule); ok {
		return cached.(*Program).Eval(ctx)
	}
	prog, err := Compile(rule)
	if err != nil {
		return false, fmt.Errorf("expr: input %q: %w", inputID, err)
	}
	e.cache.Store(rule, prog)
	return prog.Eval(ctx)
}

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenEq
	tokenNeq
	tokenLt
	tokenLte
	tokenGt
	tokenGte
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	next := func() byte {
		if i >= len(input) {
			return 0
		}
		return input[i]
	}

	consume := func() byte {
		if i >= len(input) {
			return 0
		}
		ch := input[i]
		i++
		return ch
	}

	for i < len(input) {
		ch := next()
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i++
			continue
		}

		switch ch {
		case '(':
			consume()
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
			continue
		case ')':
			consume()
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
			continue
		case '!':
			consume()
			if next() == '=' {
				consume()
				tokens = append(tokens, token{kind: tokenNeq, raw: "!="})
				continue
			}
			tokens = append(tokens, token{kind: tokenNot, raw: "!"})
			continue
		case '=':
			consume()
			if next() != '=' {
				return nil, fmt.Errorf("expr: unexpected '='; use '=='")
			}
			consume()
			tokens = append(tokens, token{kind: tokenEq, raw: "=="})
			continue
		case '<', '>':
			op := consume()
			orEqual := next() == '='
			if orEqual {
				consume()
			}
			tokens = append(tokens, comparisonToken(op, orEqual))
			continue
		case '&':
			consume()
			if next() != '&' {
				return nil, fmt.Errorf("expr: unexpected '&'; use '&&'")
			}
			consume()
			tokens = append(tokens, token{kind: tokenAnd, raw: "&&"})
			continue
		case '|':
			consume()
			if next() != '|' {
				return nil, fmt.Errorf("expr: unexpected '|'; use '||'")
			}
			consume()
			tokens = append(tokens, token{kind: tokenOr, raw: "||"})
			continue
		case '"', '\'':
			quote := consume()
			start := i
			escaped := false
			for i < len(input) {
				c := consume()
				if escaped {
					escaped = false
					continue
				}
				if c == '\\' {
					escaped = true
					continue
				}
				if c == quote {
					value, err := unquote(quote, input[start:i-1])
					if err != nil {
						return nil, fmt.Errorf("expr: invalid string literal: %w", err)
					}
					tokens = append(tokens, token{kind: tokenString, raw: value})
					goto nextToken
				}
			}
			return nil, errors.New("expr: unterminated string literal")
		default:
			// identifier / number / keyword
			start := i
			for i < len(input) {
				c := input[i]
				if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '(' || c == ')' || c == '!' || c == '=' || c == '<' || c == '>' || c == '&' || c == '|' {
					break
				}
				i++
			}
			raw := strings.TrimSpace(input[start:i])
			if raw == "" {
				continue
			}
			switch strings.ToLower(raw) {
			case "true", "false":
				tokens = append(tokens, token{kind: tokenBool, raw: strings.ToLower(raw)})
			case "null", "nil":
				tokens = append(tokens, token{kind: tokenNull, raw: "null"})
			default:
				if looksLikeNumber(raw) {
					tokens = append(tokens, token{kind: tokenNumber, raw: raw})
				} else {
					tokens = append(tokens, token{kind: tokenIdentifier, raw: raw})
				}
			}
		}

	nextToken:
		continue
	}

	return tokens, nil
}

func comparisonToken(op byte, orEqual bool) token {
	switch {
	case op == '<' && orEqual:
		return token{kind: tokenLte, raw: "<="}
	case op == '<':
		return token{kind: tokenLt, raw: "<"}
	case orEqual:
		return token{kind: tokenGte, raw: ">="}
	default:
		return token{kind: tokenGt, raw: ">"}
	}
}

func unquote(quote byte, body string) (string, error) {
	if quote == '\'' {
		body = strings.ReplaceAll(body, `\'`, `'`)
		body = strings.ReplaceAll(body, `"`, `\"`)
	}
	return strconv.Unquote(`"` + body + `"`)
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	ch := raw[0]
	return (ch >= '0' && ch <= '9') || ch == '-' || ch == '+' || ch == '.'
}

type exprNode interface {
	eval(ctx visibility.Context) (bool, error)
}

type exprOr struct {
	left  exprNode
	right exprNode
}

func (n exprOr) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}
	return n.right.eval(ctx)
}

type exprAnd struct {
	left  exprNode
	right exprNode
}

func (n exprAnd) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return n.right.eval(ctx)
}

type exprNot struct {
	inner exprNode
}

func (n exprNot) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.inner.eval(ctx)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

type literalKind int

const (
	litString literalKind = iota
	litNumber
	litBool
	litNull
)

type literal struct {
	kind   literalKind
	raw    string
	number float64
}

type exprCompare struct {
	identifier string
	op         tokenKind
	literal    literal
}

func (n exprCompare) eval(ctx visibility.Context) (bool, error) {
	value, _ := lookup(ctx, n.identifier)

	switch n.literal.kind {
	case litNull:
		return equality(n.op, value == nil, true), nil
	case litBool:
		got, _ := coerceBool(value)
		return equality(n.op, got, n.literal.raw == "true"), nil
	case litNumber:
		got, ok := coerceNumber(value)
		if !ok {
			// empty or non numeric inputs never satisfy an ordering
			return n.op == tokenNeq, nil
		}
		return order(n.op, got, n.literal.number), nil
	case litString:
		return equality(n.op, coerceString(value), n.literal.raw), nil
	default:
		return false, errors.New("expr: unsupported literal")
	}
}

func equality[T comparable](op tokenKind, got, want T) bool {
	if op == tokenNeq {
		return got != want
	}
	return got == want
}

func order(op tokenKind, got, want float64) bool {
	switch op {
	case tokenEq:
		return got == want
	case tokenNeq:
		return got != want
	case tokenLt:
		return got < want
	case tokenLte:
		return got <= want
	case tokenGt:
		return got > want
	default:
		return got >= want
	}
}

type exprTruthy struct {
	identifier string
}

func (n exprTruthy) eval(ctx visibility.Context) (bool, error) {
	value, ok := lookup(ctx, n.identifier)
	if !ok {
		return false, nil
	}
	return truthy(value), nil
}

type tokenStream struct {
	tokens      []token
	pos         int
	identifiers []string
}

func (s *tokenStream) reference(name string) {
	for _, existing := range s.identifiers {
		if existing == name {
			return
		}
	}
	s.identifiers = append(s.identifiers, name)
}

func parseExpression(tokens []token) (exprNode, []string, error) {
	stream := &tokenStream{tokens: tokens}
	node, err := parseOr(stream)
	if err != nil {
		return nil, nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, nil, fmt.Errorf("expr: unexpected token %q", stream.tokens[stream.pos].raw)
	}
	return node, stream.identifiers, nil
}

func parseOr(stream *tokenStream) (exprNode, error) {
	left, err := parseAnd(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenOr) {
		right, err := parseAnd(stream)
		if err != nil {
			return nil, err
		}
		left = exprOr{left: left, right: right}
	}
	return left, nil
}

func parseAnd(stream *tokenStream) (exprNode, error) {
	left, err := parseUnary(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenAnd) {
		right, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		left = exprAnd{left: left, right: right}
	}
	return left, nil
}

func parseUnary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenNot) {
		inner, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		return exprNot{inner: inner}, nil
	}
	return parsePrimary(stream)
}

func parsePrimary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenLParen) {
		inner, err := parseOr(stream)
		if err != nil {
			return nil, err
		}
		if !stream.match(tokenRParen) {
			return nil, errors.New("expr: missing closing ')'")
		}
		return inner, nil
	}

	ident, ok := stream.consume(tokenIdentifier)
	if !ok {
		if stream.pos >= len(stream.tokens) {
			return nil, errors.New("expr: empty expression")
		}
		return nil, fmt.Errorf("expr: expected identifier, got %q", stream.tokens[stream.pos].raw)
	}
	stream.reference(ident.raw)

	op, ok := stream.consumeOperator()
	if !ok {
		return exprTruthy{identifier: ident.raw}, nil
	}
	lit, err := stream.consumeLiteral()
	if err != nil {
		return nil, err
	}
	if op != tokenEq && op != tokenNeq && lit.kind != litNumber {
		return nil, fmt.Errorf("expr: ordering %q requires a number literal", ident.raw)
	}
	return exprCompare{identifier: ident.raw, op: op, literal: lit}, nil
}

func (s *tokenStream) match(kind tokenKind) bool {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return false
	}
	s.pos++
	return true
}

func (s *tokenStream) consume(kind tokenKind) (token, bool) {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return token{}, false
	}
	out := s.tokens[s.pos]
	s.pos++
	return out, true
}

func (s *tokenStream) consumeOperator() (tokenKind, bool) {
	if s.pos >= len(s.tokens) {
		return 0, false
	}
	switch kind := s.tokens[s.pos].kind; kind {
	case tokenEq, tokenNeq, tokenLt, tokenLte, tokenGt, tokenGte:
		s.pos++
		return kind, true
	}
	return 0, false
}

func (s *tokenStream) consumeLiteral() (literal, error) {
	if s.pos >= len(s.tokens) {
		return literal{}, errors.New("expr: missing literal")
	}
	tok := s.tokens[s.pos]
	s.pos++
	switch tok.kind {
	case tokenString:
		return literal{kind: litString, raw: tok.raw}, nil
	case tokenNumber:
		f, err := strconv.ParseFloat(tok.raw, 64)
		if err != nil {
			return literal{}, fmt.Errorf("expr: invalid number literal %q", tok.raw)
		}
		return literal{kind: litNumber, raw: tok.raw, number: f}, nil
	case tokenBool:
		return literal{kind: litBool, raw: tok.raw}, nil
	case tokenNull:
		return literal{kind: litNull, raw: "null"}, nil
	case tokenIdentifier:
		// bare words compare as strings: unit == metric
		return literal{kind: litString, raw: tok.raw}, nil
	default:
		return literal{}, fmt.Errorf("expr: expected literal, got %q", tok.raw)
	}
}

func lookup(ctx visibility.Context, key string) (any, bool) {
	if rest, ok := strings.CutPrefix(key, "extras."); ok {
		v, found := ctx.Extras[rest]
		return v, found
	}
	v, found := ctx.Values[key]
	return v, found
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		return trimmed != "" && trimmed != "false" && trimmed != "0"
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return true
	}
}

func coerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case nil:
		return false, false
	case bool:
		return v, true
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed, true
		}
		return truthy(v), true
	default:
		return truthy(value), true
	}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}
