package sim

import (
	"context"
	"testing"
	"time"
)

func TestSuiteRun(t *testing.T) {
	a := Uniform(2, 0, time.Millisecond, time.Millisecond, 80*time.Millisecond)
	a.Name = "pair"
	b := Uniform(3, 0, time.Millisecond, time.Millisecond, 80*time.Millisecond)
	b.Name = "trio"

	var suite Suite
	err := suite.Run(context.Background(), []Scenario{a, b}, Config{Interval: 10 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"pair", "trio"} {
		rep, ok := suite.Get(name)
		if !ok {
			t.Fatalf("no report for %q", name)
		}
		if rep.Violations != 0 {
			t.Errorf("%q violations = %d", name, rep.Violations)
		}
		for id, n := range rep.Rounds {
			if n < 1 {
				t.Errorf("%q: philosopher %d never ate", name, id)
			}
		}
	}

	seen := 0
	suite.Range(func(name string, rep *Report) bool {
		seen++
		if rep.Scenario != name {
			t.Errorf("report %q filed under %q", rep.Scenario, name)
		}
		return true
	})
	if seen != 2 {
		t.Errorf("Range visited %d reports, want 2", seen)
	}
}

func TestSuiteDuplicateNames(t *testing.T) {
	sc := Uniform(2, 0, 0, time.Millisecond, 50*time.Millisecond)
	var suite Suite
	err := suite.Run(context.Background(), []Scenario{sc, sc}, Config{})
	if err == nil {
		t.Fatal("duplicate names accepted")
	}
}

func TestSuiteGetMissing(t *testing.T) {
	var suite Suite
	if _, ok := suite.Get("nope"); ok {
		t.Fatal("Get found a report that was never stored")
	}
}
