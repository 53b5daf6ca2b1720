// SPDX-License-Identifier: MPL-2.0

package docopt

import (
	"fmt"
	"strings"
)

type nodeKind int

const (
	nodeLeaf nodeKind = iota
	nodeSeq
	nodeEither
	nodeGroup  // required or optional group; grouping only
	nodeRepeat // `...` postfix
)

// patternNode is a minimal pattern tree. It exists only to compute
// per-alternative atom multiplicity; it is not a matcher.
type patternNode struct {
	kind     nodeKind
	atom     Atom
	children []*patternNode
}

func leaf(a Atom) *patternNode { return &patternNode{kind: nodeLeaf, atom: a} }

// tokens is a cursor over the spaced-out usage pattern words.
type tokens struct {
	words []string
	pos   int
}

// tokenizeUsage spaces out group punctuation and ellipses, then splits the
// usage-section body into words.
func tokenizeUsage(body string) []string {
	r := strings.NewReplacer("...", " ... ", "[", " [ ", "]", " ] ", "(", " ( ", ")", " ) ", "|", " | ")
	return strings.Fields(r.Replace(body))
}

func (t *tokens) current() string {
	if t.pos >= len(t.words) {
		return ""
	}
	return t.words[t.pos]
}

func (t *tokens) move() string {
	w := t.current()
	if w != "" {
		t.pos++
	}
	return w
}

// patternParser walks the formal usage token stream, registering atoms in
// first-appearance order and recording per-atom arity as it goes.
type patternParser struct {
	toks    *tokens
	byName  map[string]*optionDecl // short and long spellings
	decls   []*optionDecl          // options-section declaration order
	order   []Atom
	perAtom map[Atom]*Options
}

func newPatternParser(decls []*optionDecl) *patternParser {
	p := &patternParser{
		byName:  map[string]*optionDecl{},
		decls:   decls,
		perAtom: map[Atom]*Options{},
	}
	for _, d := range decls {
		if d.short != "" {
			p.byName[d.short] = d
		}
		if d.long != "" {
			p.byName[d.long] = d
		}
	}
	return p
}

// ensureAtom registers an atom on first sighting and returns it.
func (p *patternParser) ensureAtom(a Atom, arg ArgCount, def string) (Atom, error) {
	if existing, ok := p.perAtom[a]; ok {
		if arg == ArgOne {
			existing.Arg = ArgOne
		}
		return a, nil
	}
	if err := validateAtomName(a); err != nil {
		return Atom{}, err
	}
	p.order = append(p.order, a)
	p.perAtom[a] = &Options{Arg: arg, Default: def}
	return a, nil
}

// parsePatterns parses the full usage-section body. The first word is the
// program name; later occurrences of it start alternative patterns
// (each usage line conventionally repeats the program name).
func (p *patternParser) parsePatterns(body string) (*patternNode, error) {
	words := tokenizeUsage(body)
	if len(words) == 0 {
		return nil, &UsageError{Message: "empty usage section"}
	}
	prog := words[0]

	// Rewrite into one formal alternation: `p a | p b` -> `( a ) | ( b )`.
	formal := []string{"("}
	for _, w := range words[1:] {
		if w == prog {
			formal = append(formal, ")", "|", "(")
			continue
		}
		formal = append(formal, w)
	}
	formal = append(formal, ")")

	p.toks = &tokens{words: formal}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if w := p.toks.current(); w != "" {
		return nil, &UsageError{Message: fmt.Sprintf("unexpected %q in usage pattern", w)}
	}
	return root, nil
}

// parseExpr ::= seq ( '|' seq )*
func (p *patternParser) parseExpr() (*patternNode, error) {
	seq, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	if p.toks.current() != "|" {
		return seq, nil
	}
	alts := []*patternNode{seq}
	for p.toks.current() == "|" {
		p.toks.move()
		next, err := p.parseSeq()
		if err != nil {
			return nil, err
		}
		alts = append(alts, next)
	}
	return &patternNode{kind: nodeEither, children: alts}, nil
}

// parseSeq ::= ( atom '...'? )*
func (p *patternParser) parseSeq() (*patternNode, error) {
	seq := &patternNode{kind: nodeSeq}
	for {
		switch p.toks.current() {
		case "", "]", ")", "|":
			return seq, nil
		}
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if p.toks.current() == "..." {
			p.toks.move()
			atom = &patternNode{kind: nodeRepeat, children: []*patternNode{atom}}
		}
		seq.children = append(seq.children, atom)
	}
}

// parseAtom ::= '(' expr ')' | '[' expr ']' | 'options' | long | shorts
//             | positional | command
func (p *patternParser) parseAtom() (*patternNode, error) {
	tok := p.toks.move()
	switch {
	case tok == "(" || tok == "[":
		closing := ")"
		if tok == "[" {
			closing = "]"
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if got := p.toks.move(); got != closing {
			return nil, &UsageError{Message: fmt.Sprintf("unmatched %q in usage pattern", tok)}
		}
		return &patternNode{kind: nodeGroup, children: []*patternNode{inner}}, nil
	case tok == "options":
		// The [options] shortcut stands for the options-section options,
		// which are registered as atoms separately; no new atom here.
		return &patternNode{kind: nodeSeq}, nil
	case tok == "--" || tok == "-":
		// Separator / stdin markers carry no value and yield no field.
		return &patternNode{kind: nodeSeq}, nil
	case strings.HasPrefix(tok, "--"):
		return p.parseLong(tok)
	case strings.HasPrefix(tok, "-"):
		return p.parseShorts(tok)
	case isPositionalWord(tok):
		a, err := p.ensureAtom(Atom{Kind: AtomPositional, Name: tok}, ArgZero, "")
		if err != nil {
			return nil, err
		}
		return leaf(a), nil
	default:
		a, err := p.ensureAtom(Atom{Kind: AtomCommand, Name: tok}, ArgZero, "")
		if err != nil {
			return nil, err
		}
		return leaf(a), nil
	}
}

// isPositionalWord reports whether a pattern word denotes a positional:
// angle-bracketed, or ALL-CAPS.
func isPositionalWord(w string) bool {
	if strings.HasPrefix(w, "<") && strings.HasSuffix(w, ">") && len(w) > 2 {
		return true
	}
	return isCapsName(w)
}

// parseLong handles `--flag` and `--flag=<value>` pattern words. A bare use
// of an option declared with a value consumes the following word as its
// value placeholder, which must look like an argument.
func (p *patternParser) parseLong(tok string) (*patternNode, error) {
	name, _, hasValue := strings.Cut(tok, "=")
	d := p.byName[name]
	if d == nil {
		d = &optionDecl{long: name}
		if hasValue {
			d.argcount = 1
		}
		p.byName[name] = d
	} else if d.argcount == 0 && hasValue {
		return nil, &UsageError{Message: fmt.Sprintf("option %s must not have an argument", name)}
	}
	if d.argcount == 1 && !hasValue {
		if !isPositionalWord(p.toks.current()) {
			return nil, &UsageError{Message: fmt.Sprintf("option %s requires an argument", name)}
		}
		p.toks.move()
	}
	arg := ArgZero
	if d.argcount == 1 {
		arg = ArgOne
	}
	a, err := p.ensureAtom(Atom{Kind: AtomOption, Name: d.canonical()}, arg, d.def)
	if err != nil {
		return nil, err
	}
	return leaf(a), nil
}

// parseShorts handles a short option or cluster like `-abc`. When a letter
// is declared to take a value, the rest of the cluster (or the following
// argument-shaped word) is its value placeholder.
func (p *patternParser) parseShorts(tok string) (*patternNode, error) {
	seq := &patternNode{kind: nodeSeq}
	rest := tok[1:]
	for len(rest) > 0 {
		spelling := "-" + rest[:1]
		rest = rest[1:]
		d := p.byName[spelling]
		if d == nil {
			d = &optionDecl{short: spelling}
			p.byName[spelling] = d
		}
		if d.argcount == 1 {
			if rest == "" {
				if !isPositionalWord(p.toks.current()) {
					return nil, &UsageError{Message: fmt.Sprintf("option %s requires an argument", spelling)}
				}
				p.toks.move()
			}
			rest = ""
		}
		arg := ArgZero
		if d.argcount == 1 {
			arg = ArgOne
		}
		a, err := p.ensureAtom(Atom{Kind: AtomOption, Name: d.canonical()}, arg, d.def)
		if err != nil {
			return nil, err
		}
		seq.children = append(seq.children, leaf(a))
	}
	if len(seq.children) == 1 {
		return seq.children[0], nil
	}
	return seq, nil
}

// markRepeats walks every expanded pattern alternative and flags atoms that
// occur more than once within a single alternative. Repeat nodes duplicate
// their children during expansion, so `x...` counts twice by construction.
func (p *patternParser) markRepeats(root *patternNode) {
	for _, alternative := range expandCases(root) {
		counts := map[Atom]int{}
		for _, a := range alternative {
			counts[a]++
		}
		for a, n := range counts {
			if n > 1 {
				p.perAtom[a].Repeats = true
			}
		}
	}
}

// expandCases flattens the pattern tree into its alternative cases: one
// flat atom list per combination of either-branches.
func expandCases(root *patternNode) [][]Atom {
	var result [][]Atom
	groups := [][]*patternNode{{root}}
	for len(groups) > 0 {
		children := groups[0]
		groups = groups[1:]

		idx := -1
		for i, c := range children {
			if c.kind != nodeLeaf {
				idx = i
				break
			}
		}
		if idx == -1 {
			atoms := make([]Atom, len(children))
			for i, c := range children {
				atoms[i] = c.atom
			}
			result = append(result, atoms)
			continue
		}

		child := children[idx]
		rest := make([]*patternNode, 0, len(children)-1)
		rest = append(rest, children[:idx]...)
		rest = append(rest, children[idx+1:]...)

		switch child.kind {
		case nodeEither:
			for _, branch := range child.children {
				group := make([]*patternNode, 0, 1+len(rest))
				group = append(group, branch)
				group = append(group, rest...)
				groups = append(groups, group)
			}
		case nodeRepeat:
			group := make([]*patternNode, 0, 2*len(child.children)+len(rest))
			group = append(group, child.children...)
			group = append(group, child.children...)
			group = append(group, rest...)
			groups = append(groups, group)
		default: // nodeSeq, nodeGroup
			group := make([]*patternNode, 0, len(child.children)+len(rest))
			group = append(group, child.children...)
			group = append(group, rest...)
			groups = append(groups, group)
		}
	}
	return result
}
