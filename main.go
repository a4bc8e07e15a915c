package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/conflictdriven/cdclsat/dimacs"
	"github.com/conflictdriven/cdclsat/internal/sat"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagVerbose = flag.Bool(
	"verbose",
	false,
	"dump the final trail after solving",
)

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
		verbose:      *flagVerbose,
	}, nil
}

type config struct {
	instanceFile string
	memProfile   bool
	cpuProfile   bool
	verbose      bool
}

func run(cfg *config) error {
	instance, err := dimacs.ParseDIMACS(cfg.instanceFile)
	if err != nil {
		return fmt.Errorf("could not parse instance: %s", err)
	}

	s := sat.NewDefaultSolver()
	if err := dimacs.Instantiate(s, instance); err != nil {
		return fmt.Errorf("could not instantiate solver: %s", err)
	}

	fmt.Printf("c variables:  %d\n", len(instance.Variables))
	fmt.Printf("c clauses:    %d\n", len(instance.Clauses))

	t := time.Now()
	status := s.Solve()
	elapsed := time.Since(t)

	fmt.Printf("c time (sec):        %f\n", elapsed.Seconds())
	fmt.Printf("c decisions:         %d\n", s.Stats.Decisions)
	fmt.Printf("c conflicts:         %d (%.2f /sec)\n", s.Stats.Conflicts, float64(s.Stats.Conflicts)/elapsed.Seconds())
	fmt.Printf("c backtracks:        %d\n", s.Stats.Backtracks)
	fmt.Printf("c restarts:          %d\n", s.Stats.Restarts)
	fmt.Printf("c learned clauses:   %d\n", s.Stats.LearnedClauses)
	fmt.Printf("c connections check: %d\n", s.Stats.ConnectionsChecked)
	fmt.Printf("c status:            %s\n", status.String())

	if cfg.verbose {
		s.DumpTrail(os.Stdout)
	}

	if status == sat.Satisfiable {
		if err := s.Verify(); err != nil {
			return fmt.Errorf("solver returned an assignment that fails verification: %s", err)
		}
		for i := 0; i < s.NumVariables(); i++ {
			fmt.Printf("%s %s\n", s.VariableName(i), s.Value(i))
		}
	}

	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
		return
	}
}
