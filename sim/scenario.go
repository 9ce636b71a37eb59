package sim

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Scenario describes one table setup: who sits at it and how they
// behave. Think and Eat hold either one duration shared by everyone or
// one per philosopher.
type Scenario struct {
	Name   string
	N      int
	Think  []time.Duration
	Eat    []time.Duration
	Jitter time.Duration // uniform extra 0..Jitter added to every pause
	Run    time.Duration // wall-clock window
}

// Validate reports the first defect that would make the scenario
// unrunnable.
func (sc Scenario) Validate() error {
	if sc.N < 1 {
		return fmt.Errorf("sim: scenario %q: %d philosophers, need at least 1", sc.Name, sc.N)
	}
	if err := checkDurations(sc.Name, "think", sc.Think, sc.N); err != nil {
		return err
	}
	if err := checkDurations(sc.Name, "eat", sc.Eat, sc.N); err != nil {
		return err
	}
	if sc.Jitter < 0 {
		return fmt.Errorf("sim: scenario %q: negative jitter %v", sc.Name, sc.Jitter)
	}
	if sc.Run <= 0 {
		return fmt.Errorf("sim: scenario %q: run window %v, need > 0", sc.Name, sc.Run)
	}
	return nil
}

func checkDurations(name, kind string, ds []time.Duration, n int) error {
	if len(ds) != 1 && len(ds) != n {
		return fmt.Errorf("sim: scenario %q: %d %s durations, want 1 or %d", name, len(ds), kind, n)
	}
	for _, d := range ds {
		if d < 0 {
			return fmt.Errorf("sim: scenario %q: negative %s duration %v", name, kind, d)
		}
	}
	return nil
}

func (sc Scenario) think(i int) time.Duration { return pick(sc.Think, i) }
func (sc Scenario) eat(i int) time.Duration   { return pick(sc.Eat, i) }

func pick(ds []time.Duration, i int) time.Duration {
	if len(ds) == 1 {
		return ds[0]
	}
	return ds[i]
}

// Classic is the canonical five-seat table: one philosopher who never
// pauses, one who mostly thinks, one middling, and two fast ones, with
// up to 30ms of jitter on every pause.
func Classic() Scenario {
	ms := time.Millisecond
	return Scenario{
		Name:   "classic",
		N:      5,
		Think:  []time.Duration{0, 40 * ms, 20 * ms, 1 * ms, 1 * ms},
		Eat:    []time.Duration{0, 10 * ms, 5 * ms, 1 * ms, 1 * ms},
		Jitter: 30 * ms,
		Run:    10 * time.Second,
	}
}

// Uniform is a table of n identical philosophers.
func Uniform(n int, think, eat, jitter, run time.Duration) Scenario {
	return Scenario{
		Name:   fmt.Sprintf("uniform-%d", n),
		N:      n,
		Think:  []time.Duration{think},
		Eat:    []time.Duration{eat},
		Jitter: jitter,
		Run:    run,
	}
}

// Scenario files are YAML with durations in integer milliseconds:
//
//	scenarios:
//	  - name: classic
//	    n: 5
//	    think_ms: [0, 40, 20, 1, 1]
//	    eat_ms: [0, 10, 5, 1, 1]
//	    jitter_ms: 30
//	    run_ms: 2000
type scenarioFile struct {
	Scenarios []scenarioYAML `yaml:"scenarios"`
}

type scenarioYAML struct {
	Name     string `yaml:"name"`
	N        int    `yaml:"n"`
	ThinkMS  []int  `yaml:"think_ms"`
	EatMS    []int  `yaml:"eat_ms"`
	JitterMS int    `yaml:"jitter_ms"`
	RunMS    int    `yaml:"run_ms"`
}

// LoadScenarios reads and validates a YAML scenario file.
func LoadScenarios(path string) ([]Scenario, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sim: load scenarios: %w", err)
	}
	var file scenarioFile
	if err := yaml.UnmarshalStrict(buf, &file); err != nil {
		return nil, fmt.Errorf("sim: parse %s: %w", path, err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("sim: %s: no scenarios", path)
	}

	out := make([]Scenario, 0, len(file.Scenarios))
	for i, y := range file.Scenarios {
		sc := Scenario{
			Name:   y.Name,
			N:      y.N,
			Think:  durations(y.ThinkMS),
			Eat:    durations(y.EatMS),
			Jitter: time.Duration(y.JitterMS) * time.Millisecond,
			Run:    time.Duration(y.RunMS) * time.Millisecond,
		}
		if sc.Name == "" {
			sc.Name = fmt.Sprintf("scenario-%d", i)
		}
		if err := sc.Validate(); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

func durations(ms []int) []time.Duration {
	ds := make([]time.Duration, len(ms))
	for i, m := range ms {
		ds[i] = time.Duration(m) * time.Millisecond
	}
	return ds
}
