package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/llxisdsh/dinex"
)

func TestAdHocScenarioDefaults(t *testing.T) {
	sc := adHocScenario()
	if err := sc.Validate(); err != nil {
		t.Fatal(err)
	}
	if sc.Name != "uniform-5" || sc.N != 5 {
		t.Errorf("default scenario = %q/%d, want uniform-5/5", sc.Name, sc.N)
	}
	if len(sc.Think) != 1 || sc.Think[0] != 10*time.Millisecond {
		t.Errorf("default think = %v, want [10ms]", sc.Think)
	}
	if len(sc.Eat) != 1 || sc.Eat[0] != 5*time.Millisecond {
		t.Errorf("default eat = %v, want [5ms]", sc.Eat)
	}
	if sc.Jitter != 30*time.Millisecond || sc.Run != 10*time.Second {
		t.Errorf("default jitter/run = %v/%v, want 30ms/10s", sc.Jitter, sc.Run)
	}
}

func TestAdHocScenarioClassic(t *testing.T) {
	viper.Set("classic", true)
	defer viper.Set("classic", false)

	sc := adHocScenario()
	if sc.Name != "classic" || sc.N != 5 {
		t.Errorf("scenario = %q/%d, want classic/5", sc.Name, sc.N)
	}
	// --duration still sets the window of the classic table.
	if sc.Run != 10*time.Second {
		t.Errorf("run window = %v, want the duration default", sc.Run)
	}
	if len(sc.Think) != 5 {
		t.Errorf("classic think table has %d entries, want 5", len(sc.Think))
	}
}

func TestRoundLogger(t *testing.T) {
	if roundLogger() == nil {
		t.Error("default run lost its round logger")
	}

	quiet = true
	defer func() { quiet = false }()
	if roundLogger() != nil {
		t.Error("quiet run still got a round logger")
	}
}

func TestColorStateUnknown(t *testing.T) {
	// States without a colour entry fall back to plain text, so the
	// report never hides an impossible value.
	if got := colorState(dinex.State(42)); got != "State(42)" {
		t.Errorf("colorState fallback = %q, want State(42)", got)
	}
}
