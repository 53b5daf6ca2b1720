// SPDX-License-Identifier: MPL-2.0

package docopt

import "slices"

// Usage is a validated usage descriptor: an ordered atom->Options mapping
// plus the original documentation text, kept verbatim so the descriptor can
// be reconstructed from it later. Immutable once returned by Parse.
type Usage struct {
	atoms []Atom
	opts  map[Atom]Options
	doc   string
}

// Atoms returns the atoms in descriptor order: first appearance in the
// usage patterns, then options declared only in options sections.
func (u *Usage) Atoms() []Atom {
	return slices.Clone(u.atoms)
}

// Options returns the facts for an atom and whether the atom exists.
func (u *Usage) Options(a Atom) (Options, bool) {
	o, ok := u.opts[a]
	return o, ok
}

// Doc returns the original documentation text, verbatim.
func (u *Usage) Doc() string { return u.doc }

// Len returns the number of atoms in the descriptor.
func (u *Usage) Len() int { return len(u.atoms) }

// Parse validates usage text and builds its descriptor. The text must
// contain exactly one usage section; options may additionally be declared
// in options sections. On failure the error is a *UsageError wrapping
// ErrInvalidUsage. Parse holds no state between calls: parsing the same
// text twice yields identical descriptors.
func Parse(doc string) (*Usage, error) {
	body, err := usageSection(doc)
	if err != nil {
		return nil, err
	}
	decls, err := parseOptionDecls(doc)
	if err != nil {
		return nil, err
	}

	p := newPatternParser(decls)
	root, err := p.parsePatterns(body)
	if err != nil {
		return nil, err
	}
	p.markRepeats(root)

	// Options declared only in options sections still produce atoms, after
	// every pattern atom.
	for _, d := range decls {
		arg := ArgZero
		if d.argcount == 1 {
			arg = ArgOne
		}
		if _, err := p.ensureAtom(Atom{Kind: AtomOption, Name: d.canonical()}, arg, d.def); err != nil {
			return nil, err
		}
	}

	u := &Usage{
		atoms: p.order,
		opts:  make(map[Atom]Options, len(p.order)),
		doc:   doc,
	}
	for _, a := range p.order {
		u.opts[a] = *p.perAtom[a]
	}
	return u, nil
}
