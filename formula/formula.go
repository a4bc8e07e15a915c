// Package formula implements a propositional-logic front end: a tree over
// {AND, OR, NOT, atom} is rewritten into CNF by De Morgan's laws,
// distributivity, flattening, and removal of tautological clauses and
// duplicate literals, then fed to the same clause structure the dimacs
// package produces.
//
// The conversion is the plain distributive expansion, which can grow
// exponentially in the input size. It introduces no auxiliary variables, so
// the emitted CNF is equivalent to the input formula over exactly the
// input's own atoms, not merely equisatisfiable.
package formula

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conflictdriven/cdclsat/internal/sat"
)

// Formula is any boolean formula, not necessarily in CNF.
type Formula interface {
	nnf() Formula
	String() string
}

// Var returns a named atomic proposition.
func Var(name string) Formula {
	return variable(name)
}

// Not negates a subformula.
func Not(f Formula) Formula {
	return not{f}
}

// And conjoins zero or more subformulas. And() is the tautology True.
func And(subs ...Formula) Formula {
	return and(subs)
}

// Or disjoins zero or more subformulas. Or() is the contradiction False.
func Or(subs ...Formula) Formula {
	return or(subs)
}

// Implies is sugar for Or(Not(f1), f2).
func Implies(f1, f2 Formula) Formula {
	return or{not{f1}, f2}
}

type variable string

func (v variable) nnf() Formula   { return lit{name: string(v), negated: false} }
func (v variable) String() string { return string(v) }

type not [1]Formula

func (n not) nnf() Formula {
	switch f := n[0].(type) {
	case variable:
		return lit{name: string(f), negated: true}
	case lit:
		return lit{name: f.name, negated: !f.negated}
	case not:
		return f[0].nnf()
	case and:
		subs := make([]Formula, len(f))
		for i, sub := range f {
			subs[i] = not{sub}
		}
		return or(subs).nnf()
	case or:
		subs := make([]Formula, len(f))
		for i, sub := range f {
			subs[i] = not{sub}
		}
		return and(subs).nnf()
	default:
		panic(fmt.Sprintf("formula: Not: unsupported operand type %T", f))
	}
}

func (n not) String() string { return "not(" + n[0].String() + ")" }

type and []Formula

func (a and) nnf() Formula {
	var flat and
	for _, sub := range a {
		switch n := sub.nnf().(type) {
		case and:
			flat = append(flat, n...)
		default:
			flat = append(flat, n)
		}
	}
	return flat
}

func (a and) String() string {
	parts := make([]string, len(a))
	for i, f := range a {
		parts[i] = f.String()
	}
	return "and(" + strings.Join(parts, ", ") + ")"
}

type or []Formula

func (o or) nnf() Formula {
	var flat or
	for _, sub := range o {
		switch n := sub.nnf().(type) {
		case or:
			flat = append(flat, n...)
		default:
			flat = append(flat, n)
		}
	}
	return flat
}

func (o or) String() string {
	parts := make([]string, len(o))
	for i, f := range o {
		parts[i] = f.String()
	}
	return "or(" + strings.Join(parts, ", ") + ")"
}

// lit is a variable occurrence with its polarity; it is already in CNF
// terminal form once NNF conversion reaches it.
type lit struct {
	name    string
	negated bool
}

func (l lit) nnf() Formula { return l }

func (l lit) String() string {
	if l.negated {
		return "not(" + l.name + ")"
	}
	return l.name
}

// Clause is a disjunction of named literals, the output shape this package
// emits (the same shape dimacs.Token pairs use: a name plus a polarity).
type Clause []dimacsTerm

// dimacsTerm mirrors dimacs.Token's shape without importing it: the two
// packages are independent collaborators, each emitting the same clause
// structure without depending on the other.
type dimacsTerm struct {
	Name    string
	Negated bool
}

// ToCNF converts f into conjunctive normal form: De Morgan (via nnf) to push
// negations to the leaves, then a distributive expansion of OR over AND,
// then per-clause cleanup that drops duplicate literals and tautological
// clauses.
func ToCNF(f Formula) []Clause {
	clauses := distribute(f.nnf())

	out := make([]Clause, 0, len(clauses))
	seen := make(map[string]bool, len(clauses))
	for _, c := range clauses {
		c = dedupLiterals(c)
		if isTautological(c) {
			continue
		}
		key := clauseKey(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// distribute expands an NNF formula into a list of clauses (conjuncts),
// each a list of literals (disjuncts), by recursively distributing OR over
// AND.
func distribute(f Formula) []Clause {
	switch n := f.(type) {
	case lit:
		return []Clause{{{Name: n.name, Negated: n.negated}}}
	case and:
		var all []Clause
		for _, sub := range n {
			all = append(all, distribute(sub)...)
		}
		if len(all) == 0 {
			return nil // And() is True: no constraint.
		}
		return all
	case or:
		if len(n) == 0 {
			return []Clause{{}} // Or() is False: an empty, unsatisfiable clause.
		}
		acc := []Clause{{}}
		for _, sub := range n {
			subClauses := distribute(sub)
			acc = crossJoin(acc, subClauses)
		}
		return acc
	default:
		panic(fmt.Sprintf("formula: distribute: unexpected NNF node %T", f))
	}
}

func crossJoin(acc, subClauses []Clause) []Clause {
	next := make([]Clause, 0, len(acc)*len(subClauses))
	for _, a := range acc {
		for _, b := range subClauses {
			merged := make(Clause, 0, len(a)+len(b))
			merged = append(merged, a...)
			merged = append(merged, b...)
			next = append(next, merged)
		}
	}
	return next
}

func dedupLiterals(c Clause) Clause {
	seen := make(map[dimacsTerm]bool, len(c))
	out := make(Clause, 0, len(c))
	for _, t := range c {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func isTautological(c Clause) bool {
	sign := make(map[string]bool, len(c))
	for _, t := range c {
		if prev, ok := sign[t.Name]; ok {
			if prev != t.Negated {
				return true
			}
			continue
		}
		sign[t.Name] = t.Negated
	}
	return false
}

func clauseKey(c Clause) string {
	sorted := append(Clause(nil), c...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return !sorted[i].Negated && sorted[j].Negated
	})
	var b strings.Builder
	for _, t := range sorted {
		if t.Negated {
			b.WriteByte('-')
		}
		b.WriteString(t.Name)
		b.WriteByte(',')
	}
	return b.String()
}

// Solve converts f to CNF and solves it with a fresh sat.Solver, returning
// whether it is satisfiable and, if so, a model mapping each atom that
// occurs in the CNF to its value. Atoms that ToCNF eliminates, such as those
// occurring only in tautological clauses, have no entry in the model.
func Solve(f Formula) (satisfiable bool, model map[string]bool, err error) {
	clauses := ToCNF(f)

	s := sat.NewDefaultSolver()
	indices := make(map[string]int)
	nameOf := func(name string) (int, error) {
		if idx, ok := indices[name]; ok {
			return idx, nil
		}
		idx, err := s.AddVariable(name)
		if err != nil {
			return 0, err
		}
		indices[name] = idx
		return idx, nil
	}

	for _, c := range clauses {
		lits := make([]sat.Literal, len(c))
		for i, t := range c {
			v, err := nameOf(t.Name)
			if err != nil {
				return false, nil, fmt.Errorf("formula: %w", err)
			}
			lits[i] = sat.Literal{Var: v, Sign: !t.Negated}
		}
		if err := s.AddClause(lits); err != nil {
			return false, nil, fmt.Errorf("formula: %w", err)
		}
	}

	if s.Solve() != sat.Satisfiable {
		return false, nil, nil
	}

	model = make(map[string]bool, len(indices))
	for name, idx := range indices {
		model[name] = s.Value(idx) == sat.AssignedTrue
	}
	return true, model, nil
}
