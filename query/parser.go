// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Parse lexes and parses input into an Expr tree plus the Modifiers
// accumulated along the way, for UI hinting. An empty or all-whitespace
// input parses to a nil Expr matching everything.
func Parse(input string) (Expr, Modifiers, error) {
	p := &parser{toks: Tokenize(input)}
	if len(p.toks) == 0 {
		return nil, p.mods, nil
	}

	expr, err := p.parseOr()
	if err != nil {
		return nil, p.mods, err
	}
	if p.pos != len(p.toks) {
		return nil, p.mods, fmt.Errorf("query: unexpected token at position %d", p.pos)
	}
	return expr, p.mods, nil
}

type parser struct {
	toks []Token
	pos  int
	mods Modifiers
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) advance() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// parseOr parses a sequence of And-groups joined by Or tokens.
func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != Or {
			return left, nil
		}
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Or{Left: left, Right: right}
	}
}

// parseAnd parses a run of terms, implicitly conjoined, stopping at Or,
// GreaterThan (a closing group), or end of input.
func (p *parser) parseAnd() (Expr, error) {
	var left Expr
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind == Or || tok.Kind == GreaterThan {
			if left == nil {
				return nil, fmt.Errorf("query: expected expression")
			}
			return left, nil
		}

		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if left == nil {
			left = term
		} else {
			left = &And{Left: left, Right: term}
		}
	}
}

// parseTerm parses a single term: a negation, a parenthesized group
// (the lexer's LessThan/GreaterThan pair doubling as grouping marks),
// a field predicate, or a bare literal.
func (p *parser) parseTerm() (Expr, error) {
	tok, ok := p.advance()
	if !ok {
		return nil, fmt.Errorf("query: expected expression")
	}

	switch tok.Kind {
	case Not:
		inner, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &Not{Expr: inner}, nil
	case LessThan:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if close, ok := p.advance(); !ok || close.Kind != GreaterThan {
			return nil, fmt.Errorf("query: expected closing group")
		}
		return inner, nil
	case StrLit:
		return &Literal{Text: &TextQuery{Text: tok.Lit}}, nil
	case Ident:
		return p.parseIdentTerm(tok.Lit)
	default:
		return nil, fmt.Errorf("query: unexpected token")
	}
}

// parseIdentTerm decides whether ident names a field predicate (ident
// is immediately followed by Colon) or is itself the literal text of a
// bare-word match.
func (p *parser) parseIdentTerm(ident string) (Expr, error) {
	tok, ok := p.peek()
	if !ok || tok.Kind != Colon {
		return &Literal{Text: &TextQuery{Text: ident}}, nil
	}
	p.advance() // consume Colon

	switch strings.ToLower(ident) {
	case "size":
		return p.parseSizePredicate()
	case "ext":
		return p.parseExtPredicate()
	case "path":
		return p.parseTextPredicate(PredPath)
	case "parent":
		return p.parseTextPredicate(PredParent)
	case "datemodified", "modified":
		return p.parseDatePredicate(PredDateModified)
	case "datecreated", "created":
		return p.parseDatePredicate(PredDateCreated)
	case "case":
		p.mods.CaseSensitive = true
		return p.parseTextPredicateWithModifiers()
	case "wholefilename":
		p.mods.WholeFilename = true
		return p.parseTextPredicateWithModifiers()
	case "wholeword":
		p.mods.WholeWord = true
		return p.parseTextPredicateWithModifiers()
	case "file":
		p.mods.FileOnly = true
		return p.parseTextPredicateWithModifiers()
	case "folder":
		p.mods.FolderOnly = true
		return p.parseTextPredicateWithModifiers()
	case "regex":
		p.mods.Regex = true
		return p.parseRegexPredicate()
	default:
		// Unknown field keyword: treat "ident:value" as a literal match
		// against value, preserving the field name as part of the text is
		// wrong, so fall back to matching the value alone.
		return p.parseTextPredicateWithModifiers()
	}
}

func (p *parser) parseCmpAndValue() (Cmp, string, error) {
	cmp := Eq
	switch tok, ok := p.peek(); {
	case ok && tok.Kind == GreaterThan:
		p.advance()
		cmp = Gt
	case ok && tok.Kind == GreaterThanOrEqual:
		p.advance()
		cmp = Ge
	case ok && tok.Kind == LessThan:
		p.advance()
		cmp = Lt
	case ok && tok.Kind == LessThanOrEqual:
		p.advance()
		cmp = Le
	case ok && tok.Kind == Equal:
		p.advance()
		cmp = Eq
	}

	tok, ok := p.advance()
	if !ok || (tok.Kind != Ident && tok.Kind != StrLit) {
		return cmp, "", fmt.Errorf("query: expected value")
	}
	return cmp, tok.Lit, nil
}

func (p *parser) parseSizePredicate() (Expr, error) {
	cmp, value, err := p.parseCmpAndValue()
	if err != nil {
		return nil, err
	}
	size, err := parseSizeLiteral(value)
	if err != nil {
		return nil, err
	}
	return &Function{Predicate: PredSize, Cmp: cmp, Size: size}, nil
}

// parseSizeLiteral accepts a bare integer or one suffixed with
// KB/MB/GB (case-insensitive), matching the identifiers the lexer
// already swallows whole (e.g. "100KB").
func parseSizeLiteral(s string) (uint64, error) {
	upper := strings.ToUpper(s)
	mult := uint64(1)
	switch {
	case strings.HasSuffix(upper, "GB"):
		mult = 1 << 30
		s = s[:len(s)-2]
	case strings.HasSuffix(upper, "MB"):
		mult = 1 << 20
		s = s[:len(s)-2]
	case strings.HasSuffix(upper, "KB"):
		mult = 1 << 10
		s = s[:len(s)-2]
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("query: invalid size %q: %w", s, err)
	}
	return n * mult, nil
}

func (p *parser) parseExtPredicate() (Expr, error) {
	_, value, err := p.parseCmpAndValue()
	if err != nil {
		return nil, err
	}
	exts := strings.Split(value, ",")
	return &Function{Predicate: PredExt, Exts: exts}, nil
}

func (p *parser) parseTextPredicate(pred Predicate) (Expr, error) {
	_, value, err := p.parseCmpAndValue()
	if err != nil {
		return nil, err
	}
	return &Function{Predicate: pred, Text: value}, nil
}

// parseTextPredicateWithModifiers handles a "keyword:value" field whose
// only effect is to set a Modifiers flag and otherwise behave as a
// plain literal text match.
func (p *parser) parseTextPredicateWithModifiers() (Expr, error) {
	_, value, err := p.parseCmpAndValue()
	if err != nil {
		return nil, err
	}
	return &Literal{Text: &TextQuery{
		Text:          value,
		CaseSensitive: p.mods.CaseSensitive,
		FileOnly:      p.mods.FileOnly,
		FolderOnly:    p.mods.FolderOnly,
		WholeFilename: p.mods.WholeFilename,
		WholeWord:     p.mods.WholeWord,
	}}, nil
}

func (p *parser) parseRegexPredicate() (Expr, error) {
	_, value, err := p.parseCmpAndValue()
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(value)
	if err != nil {
		return nil, fmt.Errorf("query: invalid regex %q: %w", value, err)
	}
	return &Literal{Regex: &RegexQuery{Pattern: re}}, nil
}

func (p *parser) parseDatePredicate(pred Predicate) (Expr, error) {
	cmp, value, err := p.parseCmpAndValue()
	if err != nil {
		return nil, err
	}
	return &Function{Predicate: pred, Cmp: cmp, Date: parseDateLiteral(value)}, nil
}

var weekdayNames = map[string]Weekday{
	"sunday": Sunday, "monday": Monday, "tuesday": Tuesday,
	"wednesday": Wednesday, "thursday": Thursday, "friday": Friday, "saturday": Saturday,
}

var monthNames = map[string]Month{
	"january": January, "february": February, "march": March, "april": April,
	"may": May, "june": June, "july": July, "august": August,
	"september": September, "october": October, "november": November, "december": December,
}

// parseDateLiteral recognizes a weekday name, a month name, or an
// explicit "start..end" range; anything else is DateUnknown, per the
// model's explicit sentinel for an unparseable date expression.
func parseDateLiteral(s string) DateExpr {
	lower := strings.ToLower(s)
	if wd, ok := weekdayNames[lower]; ok {
		return DateExpr{Kind: DateWeekday, Weekday: wd}
	}
	if m, ok := monthNames[lower]; ok {
		return DateExpr{Kind: DateMonth, Month: m}
	}
	if idx := strings.Index(s, ".."); idx >= 0 {
		startStr, endStr := s[:idx], s[idx+2:]
		start, err1 := strconv.ParseInt(startStr, 10, 64)
		end, err2 := strconv.ParseInt(endStr, 10, 64)
		if err1 == nil && err2 == nil {
			return DateExpr{Kind: DateRange, RangeStart: start, RangeEnd: end}
		}
	}
	return DateExpr{Kind: DateUnknown}
}
