package main

import (
	"fmt"
	"log"
	"os"
	"path"
	"sort"
	"time"

	"github.com/phil-mansfield/pico/lib"
	"github.com/phil-mansfield/pico/lib/checkpoint"
	"github.com/phil-mansfield/pico/lib/compact"
	"github.com/phil-mansfield/pico/lib/particles"
	"github.com/phil-mansfield/pico/lib/stats"
)

func main() {
	if len(os.Args) < 2 {
		lib.ExternalErrorf("Expected usage: pico <mode> <config file>, " +
			"where <mode> is one of 'help', 'check', 'bench', or 'stats'.")
	}
	mode := os.Args[1]

	switch mode {
	case "help":
		fmt.Print(lib.ExampleConfigFile)
	case "check":
		Check(configArg())
	case "bench":
		Bench(configArg())
	case "stats":
		Stats(fileArg())
	default:
		lib.ExternalErrorf(
			"You attempted to run pico in the mode '%s', but the only " +
				"valid modes are 'help', 'check', 'bench', and 'stats'.",
			mode,
		)
	}
}

func configArg() *lib.Config {
	if len(os.Args) < 3 {
		lib.ExternalErrorf("The '%s' mode requires a config file: pico %s " +
			"<config file>.", os.Args[1], os.Args[1])
	}
	cfg, err := lib.ParseConfig(os.Args[2])
	if err != nil { lib.ExternalErrorf(err.Error()) }
	return cfg
}

func fileArg() string {
	if len(os.Args) < 3 {
		lib.ExternalErrorf("The 'stats' mode requires a checkpoint file: " +
			"pico stats <checkpoint file>.")
	}
	return os.Args[2]
}

// Check runs pico's "check" mode, which tests for errors in the config file.
// Parsing already validates everything, so getting here means the file is
// fine.
func Check(cfg *lib.Config) {
	fmt.Println("No errors detected.")
}

// Bench runs pico's "bench" mode: for each configured species, fabricate
// particles, then repeatedly remove a random fraction of them through the
// compaction kernel, logging the time each compaction takes.
func Bench(cfg *lib.Config) {
	threads := lib.SetThreads(cfg.Pico.Threads)
	gen := lib.NewRNG(uint64(cfg.Pico.Seed))

	// Fixed order so runs with the same seed are identical.
	names := []string{ }
	for name := range cfg.Species { names = append(names, name) }
	sort.Strings(names)

	for _, name := range names {
		sp := fabricateSpecies(gen, name, cfg.Species[name])

		for step := 0; step < cfg.Pico.Steps; step++ {
			nm := int(cfg.Pico.RemoveFraction * float64(sp.Np))
			movers := particles.Movers(gen.UniqueIndices(sp.Np, nm))

			t0 := time.Now()
			err := compact.Compact(sp, movers, threads)
			if err != nil { lib.InternalErrorf(err.Error()) }
			// The kernel doesn't update the active count itself.
			sp.Np -= len(movers)

			log.Printf("%s step %d: compacted %d movers out of %d slots " +
				"in %v", name, step, nm, sp.Np + nm, time.Since(t0))
		}

		fmt.Println(stats.Summarize(sp))

		if cfg.Pico.CheckpointDir != "" {
			fname := path.Join(cfg.Pico.CheckpointDir, name + ".pck")
			err := checkpoint.Write(fname, sp, checkpoint.SystemByteOrder())
			if err != nil { lib.ExternalErrorf(err.Error()) }
			log.Printf("%s: wrote checkpoint to %s", name, fname)
		}
	}
}

// Stats runs pico's "stats" mode, which prints summary statistics of the
// species stored in a checkpoint file.
func Stats(fname string) {
	sp, err := checkpoint.Read(fname)
	if err != nil { lib.ExternalErrorf(err.Error()) }
	fmt.Println(stats.Summarize(sp))
}

// fabricateSpecies builds a species with randomized particle data. Positions
// and weights are uniform in [0, 1), momenta are uniform in [-1, 1), and
// cell tags are sequential, which makes every particle identifiable after
// compaction shuffles them.
func fabricateSpecies(
	gen *lib.RNG, name string, sc *lib.SpeciesConfig,
) *particles.Species {
	sp := particles.NewSpecies(name, sc.Capacity)
	sp.Np = sc.Count

	for i := 0; i < sc.Count; i++ {
		sp.X[i] = float32(gen.Uniform())
		sp.Y[i] = float32(gen.Uniform())
		sp.Z[i] = float32(gen.Uniform())
		sp.Ux[i] = float32(2*gen.Uniform() - 1)
		sp.Uy[i] = float32(2*gen.Uniform() - 1)
		sp.Uz[i] = float32(2*gen.Uniform() - 1)
		sp.W[i] = float32(gen.Uniform())
		sp.Cell[i] = int32(i)
	}

	return sp
}
