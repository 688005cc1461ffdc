// Package verify checks the functoriality laws of a realized complex.
// The level structure is encoded as Datalog facts and a small Mangle
// program derives every inclusion triple n ≤ m ≤ l in the realized range;
// each derived triple is then checked pointwise against the assembler's
// inclusion maps. Deriving the check obligations logically rather than by
// nested loops keeps the obligation set itself auditable: the rules are
// data, and the derived facts say exactly what was checked.
package verify

import (
	"fmt"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	"github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
	"go.uber.org/zap"

	"cellforge/internal/logging"
	"cellforge/internal/skeletal"
	"cellforge/internal/topology"
)

// program declares the level structure and derives reachability and the
// composition-law obligations.
const program = `
Decl level(N).
Decl le(N, M).
Decl step(N, M).
Decl reach(N, M).
Decl triple(N, M, L).

reach(N, N) :- level(N).
reach(N, L) :- step(N, M), reach(M, L).
triple(N, M, L) :- le(N, M), le(M, L).
`

const agreeTol = 1e-7

// Report summarizes a verification run.
type Report struct {
	Levels   int
	Triples  int
	Failures []string
}

// OK reports whether every derived obligation held.
func (r *Report) OK() bool { return len(r.Failures) == 0 }

// Probes supplies sample points of sk(n) for pointwise law checking.
type Probes func(n int) []topology.Point

// Complex realizes skeleta -1..top, derives the inclusion obligations,
// and checks the two functor laws: Inclusion(n,n) is the identity, and
// Inclusion(n,l) agrees with Inclusion(m,l) ∘ Inclusion(n,m) on the
// probe points for every derived triple.
func Complex(c *skeletal.Complex, top int, probes Probes) (*Report, error) {
	if _, err := c.Skeleton(top); err != nil {
		return nil, err
	}

	store, err := deriveObligations(top)
	if err != nil {
		return nil, err
	}

	report := &Report{Levels: top + 2}
	log := logging.For(logging.CategoryVerify)

	// Identity law per level, paired with derived self-reachability.
	if err := forEachFact(store, "reach", 2, func(args []int) error {
		n, m := args[0], args[1]
		if n != m {
			return nil
		}
		incl, err := c.Inclusion(n, n)
		if err != nil {
			return err
		}
		if !incl.IsIdentity() {
			report.Failures = append(report.Failures,
				fmt.Sprintf("inclusion(%d,%d) is not the identity", n, n))
		}
		return nil
	}); err != nil {
		return nil, err
	}

	// Composition law per derived triple.
	if err := forEachFact(store, "triple", 3, func(args []int) error {
		n, m, l := args[0], args[1], args[2]
		report.Triples++

		whole, err := c.Inclusion(n, l)
		if err != nil {
			return err
		}
		lower, err := c.Inclusion(n, m)
		if err != nil {
			return err
		}
		upper, err := c.Inclusion(m, l)
		if err != nil {
			return err
		}
		if err := topology.AgreeOn(whole, lower.Then(upper), probes(n), agreeTol); err != nil {
			report.Failures = append(report.Failures,
				fmt.Sprintf("inclusion(%d,%d) ≠ inclusion(%d,%d)∘inclusion(%d,%d): %v", n, l, m, l, n, m, err))
		}
		return nil
	}); err != nil {
		return nil, err
	}

	log.Info("verification run complete",
		zap.Int("levels", report.Levels),
		zap.Int("triples", report.Triples),
		zap.Int("failures", len(report.Failures)))
	return report, nil
}

// deriveObligations loads the program, asserts the level facts for the
// range -1..top, and evaluates to a fixed point.
func deriveObligations(top int) (factstore.FactStore, error) {
	unit, err := parse.Unit(strings.NewReader(program))
	if err != nil {
		return nil, fmt.Errorf("verify: parse program: %w", err)
	}
	info, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("verify: analyze program: %w", err)
	}

	store := factstore.NewSimpleInMemoryStore()
	for n := -1; n <= top; n++ {
		store.Add(fact("level", n))
		if n < top {
			store.Add(fact("step", n, n+1))
		}
		for m := n; m <= top; m++ {
			store.Add(fact("le", n, m))
		}
	}

	if _, err := engine.EvalProgramWithStats(info, store); err != nil {
		return nil, fmt.Errorf("verify: evaluate program: %w", err)
	}
	return store, nil
}

func fact(pred string, args ...int) ast.Atom {
	terms := make([]ast.BaseTerm, len(args))
	for i, a := range args {
		terms[i] = ast.Number(int64(a))
	}
	return ast.Atom{
		Predicate: ast.PredicateSym{Symbol: pred, Arity: len(args)},
		Args:      terms,
	}
}

// forEachFact iterates every stored fact of a predicate, decoding its
// numeric arguments.
func forEachFact(store factstore.FactStore, pred string, arity int, fn func(args []int) error) error {
	query := ast.Atom{Predicate: ast.PredicateSym{Symbol: pred, Arity: arity}}
	vars := make([]ast.BaseTerm, arity)
	for i := range vars {
		vars[i] = ast.Variable{Symbol: fmt.Sprintf("X%d", i)}
	}
	query.Args = vars

	return store.GetFacts(query, func(a ast.Atom) error {
		args := make([]int, len(a.Args))
		for i, t := range a.Args {
			c, ok := t.(ast.Constant)
			if !ok {
				return fmt.Errorf("verify: non-constant argument in %v", a)
			}
			args[i] = int(c.NumValue)
		}
		return fn(args)
	})
}
