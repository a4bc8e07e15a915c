package formula

import (
	"sort"
	"testing"
)

func clauseStrings(cs []Clause) []string {
	var out []string
	for _, c := range cs {
		out = append(out, clauseKey(c))
	}
	sort.Strings(out)
	return out
}

func TestToCNFSimpleOrOfAnds(t *testing.T) {
	// (a ∧ ¬d) ∨ (¬a ∧ d)  ==  (¬a ∨ ¬d) ∧ (a ∨ d)
	f := Or(
		And(Var("a"), Not(Var("d"))),
		And(Not(Var("a")), Var("d")),
	)
	got := clauseStrings(ToCNF(f))
	want := clauseStrings([]Clause{
		{{Name: "a", Negated: true}, {Name: "d", Negated: true}},
		{{Name: "a", Negated: false}, {Name: "d", Negated: false}},
	})
	if len(got) != len(want) {
		t.Fatalf("ToCNF(%v) = %v, want %v", f, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("ToCNF(%v)[%d] = %q, want %q", f, i, got[i], want[i])
		}
	}
}

func TestToCNFDeMorgan(t *testing.T) {
	// not(a ∧ b ∧ c)  ==  ¬a ∨ ¬b ∨ ¬c
	f := Not(And(Var("a"), Var("b"), Var("c")))
	got := ToCNF(f)
	if len(got) != 1 || len(got[0]) != 3 {
		t.Fatalf("ToCNF(%v) = %v, want a single 3-literal clause", f, got)
	}
	for _, l := range got[0] {
		if !l.Negated {
			t.Errorf("ToCNF(%v) literal %v: want negated", f, l)
		}
	}
}

func TestToCNFDropsTautologicalClause(t *testing.T) {
	// a ∨ ¬a ∨ b is always true regardless of b, so it carries no
	// constraint and ToCNF drops it entirely.
	f := Or(Var("a"), Not(Var("a")), Var("b"))
	got := ToCNF(f)
	if len(got) != 0 {
		t.Fatalf("ToCNF(%v) = %v, want no clauses (tautology)", f, got)
	}
}

func TestToCNFDropsTautologyInsideConjunction(t *testing.T) {
	// (a ∨ ¬a) ∧ b  reduces to just "b" once the tautological clause is
	// removed.
	f := And(Or(Var("a"), Not(Var("a"))), Var("b"))
	got := ToCNF(f)
	if len(got) != 1 {
		t.Fatalf("ToCNF(%v) = %v, want only the unit clause for b", f, got)
	}
	if len(got[0]) != 1 || got[0][0].Name != "b" || got[0][0].Negated {
		t.Errorf("ToCNF(%v) = %v, want [[b]]", f, got)
	}
}

func TestSolveSatisfiable(t *testing.T) {
	f := And(
		Var("a"),
		Implies(Var("a"), Var("b")),
	)
	sat, model, err := Solve(f)
	if err != nil {
		t.Fatalf("Solve(%v) error: %v", f, err)
	}
	if !sat {
		t.Fatalf("Solve(%v) = unsat, want sat", f)
	}
	if !model["a"] || !model["b"] {
		t.Errorf("Solve(%v) model = %v, want a=true b=true", f, model)
	}
}

// evaluate computes f's truth value under the given atom assignment.
func evaluate(f Formula, env map[string]bool) bool {
	switch n := f.(type) {
	case variable:
		return env[string(n)]
	case lit:
		return env[n.name] != n.negated
	case not:
		return !evaluate(n[0], env)
	case and:
		for _, sub := range n {
			if !evaluate(sub, env) {
				return false
			}
		}
		return true
	case or:
		for _, sub := range n {
			if evaluate(sub, env) {
				return true
			}
		}
		return false
	default:
		panic("unreachable")
	}
}

func atoms(f Formula) []string {
	seen := map[string]bool{}
	var names []string
	var walk func(Formula)
	walk = func(f Formula) {
		switch n := f.(type) {
		case variable:
			if !seen[string(n)] {
				seen[string(n)] = true
				names = append(names, string(n))
			}
		case lit:
			if !seen[n.name] {
				seen[n.name] = true
				names = append(names, n.name)
			}
		case not:
			walk(n[0])
		case and:
			for _, sub := range n {
				walk(sub)
			}
		case or:
			for _, sub := range n {
				walk(sub)
			}
		}
	}
	walk(f)
	sort.Strings(names)
	return names
}

// bruteForce enumerates every assignment of f's atoms.
func bruteForce(f Formula) bool {
	names := atoms(f)
	for bits := 0; bits < 1<<len(names); bits++ {
		env := make(map[string]bool, len(names))
		for i, name := range names {
			env[name] = bits&(1<<i) != 0
		}
		if evaluate(f, env) {
			return true
		}
	}
	return false
}

// TestSolveMatchesBruteForce: converting a formula tree to CNF and running
// the solver must agree with direct enumeration of the tree's assignments,
// and any returned model must actually satisfy the tree.
func TestSolveMatchesBruteForce(t *testing.T) {
	a, b, c, d := Var("a"), Var("b"), Var("c"), Var("d")
	formulas := []Formula{
		a,
		Not(a),
		And(a, Not(a)),
		Or(a, Not(a)),
		And(Or(a, b), Or(Not(a), c), Or(Not(b), Not(c))),
		Or(And(a, b), And(Not(a), Not(b))),
		Implies(And(a, b), c),
		And(Implies(a, b), Implies(b, c), Implies(c, Not(a)), a),
		Not(Or(And(a, b), And(c, d))),
		And(Or(a, b, c), Or(Not(a), Not(b)), Or(Not(b), Not(c)), Or(Not(a), Not(c)), Or(b, c, d)),
		And(Or(a, b), Or(a, Not(b)), Or(Not(a), b), Or(Not(a), Not(b))),
	}

	for _, f := range formulas {
		f := f
		t.Run(f.String(), func(t *testing.T) {
			want := bruteForce(f)
			got, model, err := Solve(f)
			if err != nil {
				t.Fatalf("Solve(%v) error: %v", f, err)
			}
			if got != want {
				t.Fatalf("Solve(%v) satisfiable = %v, brute force = %v", f, got, want)
			}
			if !got {
				return
			}
			env := make(map[string]bool)
			for _, name := range atoms(f) {
				env[name] = model[name]
			}
			if !evaluate(f, env) {
				t.Errorf("Solve(%v) model %v does not satisfy the formula", f, model)
			}
		})
	}
}

func TestSolveUnsatisfiable(t *testing.T) {
	f := And(Var("a"), Not(Var("a")))
	sat, _, err := Solve(f)
	if err != nil {
		t.Fatalf("Solve(%v) error: %v", f, err)
	}
	if sat {
		t.Errorf("Solve(%v) = sat, want unsat", f)
	}
}
