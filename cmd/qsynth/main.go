// Command qsynth is the CLI front end for the synthesis engine (§6 is the
// library contract; this wiring, the output dump, and flag parsing are all
// explicitly out of the core's scope per spec.md §1).
//
// Flag parsing and .env loading follow scripts/validation/ibm_quantum.go's
// NewIBMQuantumClient: godotenv.Load() before anything else reads the
// environment, its error ignored since a missing .env is normal. Subcommand
// dispatch follows src/examples/main.go's switch-on-os.Args[1] shape.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/hydraresearch/qsynth/internal/circuit"
	"github.com/hydraresearch/qsynth/internal/cmatrix"
	"github.com/hydraresearch/qsynth/internal/config"
	"github.com/hydraresearch/qsynth/internal/gate"
	"github.com/hydraresearch/qsynth/internal/gateset"
	"github.com/hydraresearch/qsynth/internal/synth"
	"github.com/hydraresearch/qsynth/internal/synthlog"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// No .env present; environment variables (if any) still apply.
	}

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch os.Args[1] {
	case "synth":
		runSynth(os.Args[2:])
	case "targets":
		printTargets()
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("qsynth - quantum circuit synthesizer")
	fmt.Println()
	fmt.Println("Usage: qsynth <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  synth     - run the synthesis engine against a named target unitary")
	fmt.Println("  targets   - list the built-in named target unitaries")
	fmt.Println("  help      - show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  qsynth synth -target cnot -threshold 1e-6 -depth 3")
	fmt.Println("  qsynth synth -target swap -threshold 1e-4 -depth 5 -workers 4")
}

func runSynth(args []string) {
	fs := flag.NewFlagSet("synth", flag.ExitOnError)

	target := fs.String("target", "cnot", "named target unitary (see 'qsynth targets')")
	legacyU := fs.String("U", "", "deprecated alias for -target, kept for legacy callers")
	depth := fs.Int("depth", -1, "maximum search depth; -1 means unbounded")
	threshold := fs.Float64("threshold", config.DefaultThreshold, "residual below which the target is considered matched")
	beams := fs.Int("beams", config.AutoBeams, "frontier entries expanded per cycle; 0 auto-sizes from workers/search-layers")
	workers := fs.Int("workers", 0, "worker pool size; 0 uses hardware parallelism")
	timeout := fs.Duration("timeout", 0, "wall-clock budget; 0 means no timeout")
	statefile := fs.String("statefile", "", "checkpoint file path; empty disables checkpointing")
	verbosity := fs.Int("verbosity", 1, "log verbosity, 0-2")
	ordered := fs.Bool("ordered", false, "dispatch results in submission order for full determinism")
	seed := fs.Int64("seed", 0, "solver PRNG seed")
	adjacent := fs.Bool("adjacent", false, "restrict the default gateset's CNOT placement to adjacent qudits")

	if err := fs.Parse(args); err != nil {
		log.Fatalf("qsynth: %v", err)
	}

	logger := newLogger(*verbosity)

	targetName := *target
	if *legacyU != "" {
		logger.Info("qsynth: -U is deprecated, use -target instead")
		targetName = *legacyU
	}

	u, err := namedTarget(targetName)
	if err != nil {
		log.Fatalf("qsynth: %v", err)
	}

	gs := &gateset.DefaultQubit{Adjacent: *adjacent}

	opts := config.Options{
		Target:     u,
		Gateset:    gs,
		Threshold:  *threshold,
		Beams:      *beams,
		NumTasks:   *workers,
		Timeout:    *timeout,
		StateFile:  *statefile,
		Verbosity:  *verbosity,
		Ordered:    *ordered,
		SolverSeed: *seed,
		Logger:     logger,
	}
	if *depth >= 0 {
		opts.Depth = depth
	}

	out, err := synth.Synthesize(context.Background(), opts)
	if err != nil {
		log.Fatalf("qsynth: synthesis failed: %v", err)
	}

	records, err := circuit.Assemble(out.Structure, out.Vector)
	if err != nil {
		log.Fatalf("qsynth: assembling result circuit: %v", err)
	}

	fmt.Printf("theta: %v\n", out.Vector)
	fmt.Println("circuit:")
	dumpRecords(records, 1)
}

func dumpRecords(records []gate.Record, indent int) {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}
	for _, r := range records {
		switch r.Kind {
		case "gate":
			fmt.Printf("%s%s%v on %v\n", prefix, r.Name, r.Params, r.Qudits)
		case "block":
			name := r.Name
			if name == "" {
				name = "block"
			}
			fmt.Printf("%s%s:\n", prefix, name)
			dumpRecords(r.Children, indent+1)
		}
	}
}

func newLogger(verbosity int) *synthlog.Logger {
	return synthlog.New(verbosity, os.Stdout)
}

func printTargets() {
	fmt.Println("Named target unitaries:")
	for _, name := range targetNames {
		fmt.Printf("  %s\n", name)
	}
}

var targetNames = []string{"identity2", "identity4", "cnot", "cnotroot", "swap", "hadamard2"}

func namedTarget(name string) (*cmatrix.Matrix, error) {
	switch name {
	case "identity2":
		return cmatrix.Identity(2), nil
	case "identity4":
		return cmatrix.Identity(4), nil
	case "cnot":
		return matFromRows([][]complex128{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
		}), nil
	case "cnotroot":
		return matFromRows([][]complex128{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 0.5 + 0.5i, 0.5 - 0.5i},
			{0, 0, 0.5 - 0.5i, 0.5 + 0.5i},
		}), nil
	case "swap":
		return matFromRows([][]complex128{
			{1, 0, 0, 0},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
		}), nil
	case "hadamard2":
		h := 1 / sqrt2
		return matFromRows([][]complex128{
			{complex(h, 0), complex(h, 0)},
			{complex(h, 0), complex(-h, 0)},
		}), nil
	default:
		return nil, fmt.Errorf("unknown target %q; see 'qsynth targets'", name)
	}
}

const sqrt2 = 1.4142135623730951

func matFromRows(rows [][]complex128) *cmatrix.Matrix {
	n := len(rows)
	m := cmatrix.New(n)
	for i, row := range rows {
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return m
}
