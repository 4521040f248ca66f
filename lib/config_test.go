package lib

import (
	"testing"
)

func TestParseExampleConfig(t *testing.T) {
	cfg, err := ParseConfigString(ExampleConfigFile)
	if err != nil {
		t.Fatalf("Expected the example config file to parse, got: %s",
			err.Error())
	}

	if cfg.Pico.Steps != 10 || cfg.Pico.RemoveFraction != 0.05 {
		t.Errorf("Expected Steps = 10 and RemoveFraction = 0.05, got " +
			"Steps = %d and RemoveFraction = %g.",
			cfg.Pico.Steps, cfg.Pico.RemoveFraction)
	}
	if cfg.Pico.Threads != -1 || cfg.Pico.Seed != 42 {
		t.Errorf("Expected the defaults Threads = -1 and Seed = 42, got " +
			"Threads = %d and Seed = %d.", cfg.Pico.Threads, cfg.Pico.Seed)
	}

	sc, ok := cfg.Species["electron"]
	if !ok {
		t.Fatalf("Expected the example config to contain an 'electron' " +
			"species.")
	}
	if sc.Count != 1000000 || sc.Capacity != 1000000 {
		t.Errorf("Expected Count = 1000000 and Capacity defaulting to " +
			"Count, got Count = %d and Capacity = %d.",
			sc.Count, sc.Capacity)
	}
}

func TestParseBadConfigs(t *testing.T) {
	tests := []string{
		// No species section.
		"[pico]\nSteps = 10\nRemoveFraction = 0.1\n",
		// Non-positive step count.
		"[pico]\nSteps = 0\nRemoveFraction = 0.1\n" +
			"[species \"e\"]\nCount = 10\n",
		// RemoveFraction outside [0, 1].
		"[pico]\nSteps = 1\nRemoveFraction = 1.5\n" +
			"[species \"e\"]\nCount = 10\n",
		// Non-positive species count.
		"[pico]\nSteps = 1\nRemoveFraction = 0.1\n" +
			"[species \"e\"]\nCount = 0\n",
		// Capacity smaller than Count.
		"[pico]\nSteps = 1\nRemoveFraction = 0.1\n" +
			"[species \"e\"]\nCount = 10\nCapacity = 5\n",
	}

	for i := range tests {
		_, err := ParseConfigString(tests[i])
		if err == nil {
			t.Errorf("%d) Expected the config to be rejected, but it " +
				"parsed without error.", i)
		}
	}
}

func TestRNGUniqueIndices(t *testing.T) {
	gen := NewRNG(1)

	for trial := 0; trial < 50; trial++ {
		n := 1 + gen.Intn(100)
		nm := gen.Intn(n + 1)

		idx := gen.UniqueIndices(n, nm)
		if len(idx) != nm {
			t.Errorf("%d) Expected %d indices, got %d.", trial, nm, len(idx))
		}

		seen := make(map[int32]bool)
		for _, j := range idx {
			if j < 0 || int(j) >= n {
				t.Errorf("%d) Index %d is outside [0, %d).", trial, j, n)
			}
			if seen[j] {
				t.Errorf("%d) Index %d was generated twice.", trial, j)
			}
			seen[j] = true
		}
	}
}
