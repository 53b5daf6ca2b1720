// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"strings"

	"github.com/zerosign/usagegen/pkg/diag"
	"github.com/zerosign/usagegen/pkg/docopt"
	"github.com/zerosign/usagegen/pkg/fieldname"
)

// tok is one scanned token with its byte offset into the invocation text.
type tok struct {
	off int
	tok token.Token
	lit string
}

// text returns the token's source spelling.
func (t tok) text() string {
	if t.lit != "" {
		return t.lit
	}
	return t.tok.String()
}

// span is a slice of the invocation text holding one expression.
type span struct {
	src string
	off int
}

type parseRun struct {
	src  string
	file *token.File
	toks []tok
	i    int

	// name is the record name once parsed, so later diagnostics can carry
	// the subject.
	name string
}

// Parse parses one generator invocation. On failure it returns exactly one
// diagnostic describing the first violation, and the invocation contributes
// no record.
func Parse(src string) (*Invocation, *diag.Diagnostic) {
	file, toks := scanTokens(src)
	p := &parseRun{src: src, file: file, toks: toks}
	return p.parse()
}

// scanTokens scans src as Go tokens. Newline-induced semicolons are
// dropped; an explicit `;` stays in the stream and fails the grammar like
// any other stray token.
func scanTokens(src string) (*token.File, []tok) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var s scanner.Scanner
	s.Init(file, []byte(src), nil, 0)

	var out []tok
	for {
		pos, t, lit := s.Scan()
		if t == token.EOF {
			break
		}
		if t == token.SEMICOLON && lit == "\n" {
			continue
		}
		out = append(out, tok{off: file.Offset(pos), tok: t, lit: lit})
	}
	return file, out
}

func (p *parseRun) parse() (*Invocation, *diag.Diagnostic) {
	if len(p.toks) == 0 {
		return nil, p.fail(diag.CodeMissingArgument, len(p.src), "invocation expects arguments")
	}

	var info StructInfo

	// `public` is a visibility marker only when another identifier
	// follows; on its own it is a record name like any other.
	if t, ok := p.cur(); ok && t.tok == token.IDENT && t.lit == "public" && p.peekIdent() {
		info.Public = true
		p.next()
	}

	t, ok := p.cur()
	switch {
	case !ok:
		return nil, p.fail(diag.CodeMissingArgument, len(p.src), "expected record name but found end of invocation")
	case t.tok != token.IDENT:
		return nil, p.fail(diag.CodeUnexpectedToken, t.off, "expected record name but got '%s'", t.text())
	}
	info.Name = t.lit
	p.name = t.lit
	p.next()

	t, ok = p.cur()
	switch {
	case !ok:
		return nil, p.fail(diag.CodeMissingArgument, len(p.src), "expected ',' and usage string but found end of invocation")
	case t.tok == token.COMMA:
		p.next()
	case t.tok == token.IDENT && t.lit == "deriving":
		p.next()
		if d := p.parseTraits(&info); d != nil {
			return nil, d
		}
	case t.tok == token.IDENT:
		return nil, p.fail(diag.CodeInvalidTraitKeyword, t.off, "expected 'deriving' keyword but got '%s'", t.lit)
	default:
		return nil, p.fail(diag.CodeUnexpectedToken, t.off, "expected ',' or 'deriving' but got '%s'", t.text())
	}

	usageSpan, sawComma, d := p.collectExpr("usage string")
	if d != nil {
		return nil, d
	}
	usageText, d := p.foldUsage(usageSpan)
	if d != nil {
		return nil, d
	}

	var overrides []Override
	for sawComma {
		if p.eof() {
			// Trailing comma.
			break
		}
		t, _ := p.cur()
		if t.tok != token.IDENT {
			return nil, p.fail(diag.CodeUnexpectedToken, t.off, "expected field name but got '%s'", t.text())
		}
		field := t.lit
		p.next()

		t2, ok := p.cur()
		switch {
		case !ok:
			return nil, p.fail(diag.CodeMissingArgument, len(p.src), "expected ':' after field name but found end of invocation")
		case t2.tok != token.COLON:
			return nil, p.fail(diag.CodeUnexpectedToken, t2.off, "expected ':' after field name but got '%s'", t2.text())
		}
		p.next()

		typeSpan, more, d := p.collectExpr("field type")
		if d != nil {
			return nil, d
		}
		typeExpr, err := parser.ParseExpr(typeSpan.src)
		if err != nil {
			return nil, p.fail(diag.CodeUnexpectedToken, typeSpan.off, "invalid type for field '%s': `%s`", field, strings.TrimSpace(typeSpan.src))
		}
		overrides = append(overrides, Override{
			Field: field,
			Key:   fieldname.ToKey(field),
			Type:  types.ExprString(typeExpr),
		})
		sawComma = more
	}

	usage, err := docopt.Parse(usageText)
	if err != nil {
		d := p.fail(diag.CodeInvalidUsageSpecification, usageSpan.off, "invalid usage specification: %v", err)
		d.Cause = err
		return nil, d
	}

	return &Invocation{Struct: info, Usage: usage, Overrides: overrides}, nil
}

// parseTraits consumes whitespace-separated trait identifiers up to the
// `,` that ends the metadata section.
func (p *parseRun) parseTraits(info *StructInfo) *diag.Diagnostic {
	for {
		t, ok := p.cur()
		switch {
		case !ok:
			return p.fail(diag.CodeMissingArgument, len(p.src), "expected ',' and usage string but found end of invocation")
		case t.tok == token.COMMA:
			if len(info.Traits) == 0 {
				return p.fail(diag.CodeInvalidTraitKeyword, t.off, "expected at least one trait after 'deriving'")
			}
			p.next()
			return nil
		case t.tok == token.IDENT:
			info.Traits = append(info.Traits, t.lit)
			p.next()
		default:
			return p.fail(diag.CodeUnexpectedToken, t.off, "expected trait identifier or ',' but got '%s'", t.text())
		}
	}
}

// collectExpr gathers the source text of one expression, running to the
// next comma outside any bracket nesting or to the end of the invocation.
// The terminating comma is consumed; the returned bool reports whether one
// was seen.
func (p *parseRun) collectExpr(what string) (span, bool, *diag.Diagnostic) {
	t, ok := p.cur()
	if !ok {
		return span{}, false, p.fail(diag.CodeMissingArgument, len(p.src), "expected %s but found end of invocation", what)
	}
	if t.tok == token.COMMA {
		return span{}, false, p.fail(diag.CodeUnexpectedToken, t.off, "expected %s but got ','", what)
	}

	start := t.off
	end := t.off
	depth := 0
	for {
		t, ok := p.cur()
		if !ok {
			return span{src: p.src[start:end], off: start}, false, nil
		}
		if depth == 0 && t.tok == token.COMMA {
			p.next()
			return span{src: p.src[start:end], off: start}, true, nil
		}
		switch t.tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
		}
		end = t.off + len(t.text())
		p.next()
	}
}

// foldUsage evaluates the usage argument down to a string constant.
func (p *parseRun) foldUsage(s span) (string, *diag.Diagnostic) {
	expr, err := parser.ParseExpr(s.src)
	if err != nil {
		return "", p.fail(diag.CodeNotAStringLiteral, s.off, "expected string literal but got `%s`", strings.TrimSpace(s.src))
	}
	if v := foldString(expr); v.Kind() == constant.String {
		return constant.StringVal(v), nil
	}
	return "", p.fail(diag.CodeNotAStringLiteral, s.off, "expected string literal but got `%s`", types.ExprString(expr))
}

// foldString constant-folds string literals, parenthesization, and `+`
// concatenation. Anything else yields an unknown value.
func foldString(e ast.Expr) constant.Value {
	switch e := e.(type) {
	case *ast.BasicLit:
		if e.Kind == token.STRING {
			return constant.MakeFromLiteral(e.Value, e.Kind, 0)
		}
	case *ast.ParenExpr:
		return foldString(e.X)
	case *ast.BinaryExpr:
		if e.Op == token.ADD {
			x, y := foldString(e.X), foldString(e.Y)
			if x.Kind() == constant.String && y.Kind() == constant.String {
				return constant.BinaryOp(x, e.Op, y)
			}
		}
	}
	return constant.MakeUnknown()
}

func (p *parseRun) cur() (tok, bool) {
	if p.i >= len(p.toks) {
		return tok{}, false
	}
	return p.toks[p.i], true
}

func (p *parseRun) next() { p.i++ }

func (p *parseRun) eof() bool { return p.i >= len(p.toks) }

// peekIdent reports whether the token after the current one is an
// identifier.
func (p *parseRun) peekIdent() bool {
	return p.i+1 < len(p.toks) && p.toks[p.i+1].tok == token.IDENT
}

// pos renders a byte offset as a line:column position.
func (p *parseRun) pos(off int) string {
	return p.file.Position(p.file.Pos(off)).String()
}

func (p *parseRun) fail(code diag.Code, off int, format string, args ...any) *diag.Diagnostic {
	return &diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Subject:  p.name,
		Pos:      p.pos(off),
	}
}
