package dimacs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/conflictdriven/cdclsat/internal/sat"
)

func tok(name string, negated bool) Token {
	return Token{Name: name, Negated: negated}
}

var wantTestInstance = &Instance{
	DeclaredVars:    3,
	DeclaredClauses: 8,
	Variables:       []string{"1", "2", "3"},
	Clauses: [][]Token{
		{tok("1", false), tok("2", false), tok("3", false)},
		{tok("1", false), tok("2", false), tok("3", true)},
		{tok("1", false), tok("2", true), tok("3", false)},
		{tok("1", false), tok("2", true), tok("3", true)},
		{tok("1", true), tok("2", false), tok("3", false)},
		{tok("1", true), tok("2", false), tok("3", true)},
		{tok("1", true), tok("2", true), tok("3", false)},
		{tok("1", true), tok("2", true), tok("3", true)},
	},
}

func TestParseDIMACS_cnf(t *testing.T) {
	got, err := ParseDIMACS("testdata/test_instance.cnf")
	if err != nil {
		t.Fatalf("ParseDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(wantTestInstance, got); diff != "" {
		t.Errorf("ParseDIMACS(): mismatch (-want, +got):\n%s", diff)
	}
}

func TestParseDIMACS_gzip(t *testing.T) {
	got, err := ParseDIMACS("testdata/test_instance.cnf.gz")
	if err != nil {
		t.Fatalf("ParseDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(wantTestInstance, got); diff != "" {
		t.Errorf("ParseDIMACS(): mismatch (-want, +got):\n%s", diff)
	}
}

func TestParseDIMACS_noFile(t *testing.T) {
	if _, err := ParseDIMACS(""); err == nil {
		t.Errorf("ParseDIMACS(): want error, got none")
	}
}

func TestParseNamedVariables(t *testing.T) {
	in := `
c symbolic identifiers instead of integers
p cnf 0 0
alpha -beta 0
beta gamma 0
-alpha 0
`
	got, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse(): want no error, got %s", err)
	}
	want := &Instance{
		Variables: []string{"alpha", "beta", "gamma"},
		Clauses: [][]Token{
			{tok("alpha", false), tok("beta", true)},
			{tok("beta", false), tok("gamma", false)},
			{tok("alpha", true)},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(): mismatch (-want, +got):\n%s", diff)
	}
}

// TestParseIgnoresPreHeaderLines: anything before the problem line is a
// comment, whether or not it starts with 'c'.
func TestParseIgnoresPreHeaderLines(t *testing.T) {
	in := `
generated by some tool that writes bare prose here
1 2 3 these tokens must not be read as a clause
p cnf 2 1
1 -2 0
`
	got, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse(): want no error, got %s", err)
	}
	if len(got.Clauses) != 1 || len(got.Variables) != 2 {
		t.Errorf("Parse() = %d clauses over %d variables, want 1 clause over 2 variables", len(got.Clauses), len(got.Variables))
	}
}

// TestParseHeaderCountsNotTrusted: the declared counts are recorded verbatim
// but a mismatch with the actual content is not an error.
func TestParseHeaderCountsNotTrusted(t *testing.T) {
	in := `p cnf 99 99
1 2 0
-1 0
`
	got, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse(): want no error, got %s", err)
	}
	if got.DeclaredVars != 99 || got.DeclaredClauses != 99 {
		t.Errorf("declared counts = (%d, %d), want (99, 99)", got.DeclaredVars, got.DeclaredClauses)
	}
	if len(got.Clauses) != 2 || len(got.Variables) != 2 {
		t.Errorf("Parse() = %d clauses over %d variables, want 2 clauses over 2 variables", len(got.Clauses), len(got.Variables))
	}
}

func TestParsePercentTrailerEndsScan(t *testing.T) {
	in := `p cnf 2 2
1 2 0
-1 -2 0
%
0
garbage beyond the trailer is never read
`
	got, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse(): want no error, got %s", err)
	}
	if len(got.Clauses) != 2 {
		t.Errorf("Parse() = %d clauses, want 2", len(got.Clauses))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no problem line", "c just a comment\n1 2 0\n"},
		{"unterminated clause at EOF", "p cnf 2 1\n1 2\n"},
		{"unterminated clause at trailer", "p cnf 2 1\n1 2\n%\n"},
		{"bare minus sign", "p cnf 1 1\n- 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.in)); err == nil {
				t.Errorf("Parse(%q): want error, got none", tt.in)
			}
		})
	}
}

// TestInstantiateDeduplicatesVariables: the same token across clauses maps
// to one solver variable.
func TestInstantiateDeduplicatesVariables(t *testing.T) {
	in := `p cnf 2 3
x y 0
-x y 0
x -y 0
`
	inst, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse(): %s", err)
	}

	s := sat.NewDefaultSolver()
	if err := Instantiate(s, inst); err != nil {
		t.Fatalf("Instantiate(): %s", err)
	}
	if got, want := s.NumVariables(), 2; got != want {
		t.Errorf("NumVariables() = %d, want %d", got, want)
	}
	if got := s.Solve(); got != sat.Satisfiable {
		t.Errorf("Solve() = %v, want Satisfiable", got)
	}
}
