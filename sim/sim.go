// Package sim drives dining simulations against a dinex.Table: one
// goroutine per philosopher cycling think, request, eat, release, plus
// a monitor goroutine that checks the table invariant from outside.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/llxisdsh/dinex"
	"github.com/llxisdsh/dinex/trace"
)

// DefaultInterval is the monitor poll period used when Config.Interval
// is zero.
const DefaultInterval = 23 * time.Millisecond

// ErrAdjacentEaters reports a violated table invariant: two neighbors
// observed eating at the same instant.
var ErrAdjacentEaters = errors.New("adjacent philosophers eating")

// Config carries the runtime knobs that are not part of a Scenario.
type Config struct {
	// Seed feeds the per-philosopher jitter generators. Runs with the
	// same scenario and seed draw the same pauses.
	Seed uint64
	// Interval is the monitor poll period; zero means DefaultInterval.
	Interval time.Duration
	// Logger receives one line per finished round; nil discards.
	Logger *log.Logger
}

// Report is the outcome of one run. It is valid even when Run also
// returned an error; the tallies then cover the aborted run.
type Report struct {
	Scenario   string
	N          int
	Rounds     []int64         // meals finished, per philosopher
	Waited     []time.Duration // cumulative hungry time, per philosopher
	Polls      int             // snapshots the monitor took
	Violations int             // invariant violations the monitor saw
	Recording  trace.Recording
	Elapsed    time.Duration
}

// Runner executes one scenario. Observers may call Tally while Run is
// in flight; everything else is read from the final Report.
type Runner struct {
	sc  Scenario
	cfg Config
	tb  *dinex.Table
	lg  *log.Logger

	started atomic.Bool
	rounds  []atomic.Int64
	waited  []atomic.Int64 // nanoseconds
	polls   atomic.Int64
	viol    atomic.Int64
	rec     *trace.Recorder
}

// New validates sc and prepares a Runner for it.
func New(sc Scenario, cfg Config) (*Runner, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	lg := cfg.Logger
	if lg == nil {
		lg = log.New(io.Discard, "", 0)
	}
	return &Runner{
		sc:     sc,
		cfg:    cfg,
		tb:     dinex.NewTable(sc.N),
		lg:     lg,
		rounds: make([]atomic.Int64, sc.N),
		waited: make([]atomic.Int64, sc.N),
	}, nil
}

// Run is a convenience wrapper: validate, run, report.
func Run(ctx context.Context, sc Scenario, cfg Config) (*Report, error) {
	r, err := New(sc, cfg)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

// Run drives the scenario to completion: the run window elapsing, ctx
// being cancelled, or the monitor detecting a violation, whichever
// comes first. Rounds already in flight are finished, never cut short.
// A Runner runs once.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if r.started.Swap(true) {
		return nil, errors.New("sim: Runner already run")
	}

	runCtx, cancel := context.WithTimeout(ctx, r.sc.Run)
	defer cancel()

	r.rec = trace.NewRecorder()
	g, gctx := errgroup.WithContext(runCtx)

	var start dinex.Latch
	began := time.Now()

	for id := range r.sc.N {
		g.Go(func() error {
			r.philosopher(gctx, id, &start, began)
			return nil
		})
	}
	g.Go(func() error {
		return r.monitor(gctx)
	})

	start.Open()
	err := g.Wait()
	elapsed := time.Since(began)

	rep := &Report{
		Scenario:   r.sc.Name,
		N:          r.sc.N,
		Rounds:     make([]int64, r.sc.N),
		Waited:     make([]time.Duration, r.sc.N),
		Polls:      int(r.polls.Load()),
		Violations: int(r.viol.Load()),
		Recording:  r.rec.Recording(),
		Elapsed:    elapsed,
	}
	for i := range r.sc.N {
		rep.Rounds[i] = r.rounds[i].Load()
		rep.Waited[i] = time.Duration(r.waited[i].Load())
	}
	return rep, err
}

// Tally snapshots the live per-philosopher counters: meals finished and
// cumulative hungry time. Safe to call at any point, from any
// goroutine.
func (r *Runner) Tally() (rounds []int64, waited []time.Duration) {
	rounds = make([]int64, len(r.rounds))
	waited = make([]time.Duration, len(r.waited))
	for i := range r.rounds {
		rounds[i] = r.rounds[i].Load()
		waited[i] = time.Duration(r.waited[i].Load())
	}
	return rounds, waited
}

// philosopher cycles think, request, eat, release until the run window
// closes. The window is only checked between rounds, so the final
// round always completes and the forks always go back on the table.
func (r *Runner) philosopher(ctx context.Context, id int, start *dinex.Latch, began time.Time) {
	rng := rand.New(rand.NewPCG(r.cfg.Seed, uint64(id)))
	start.Wait()

	for ctx.Err() == nil {
		sleep(r.jittered(r.sc.think(id), rng))

		hungryAt := time.Now()
		r.tb.RequestForks(id)
		r.waited[id].Add(int64(time.Since(hungryAt)))

		sleep(r.jittered(r.sc.eat(id), rng))
		r.tb.ReleaseForks(id)

		n := r.rounds[id].Add(1)
		r.lg.Printf("#%d %s finished round %d @%v",
			id, Name(id), n, time.Since(began).Round(time.Millisecond))
	}
}

func (r *Runner) jittered(base time.Duration, rng *rand.Rand) time.Duration {
	return base + time.Duration(rng.Int64N(int64(r.sc.Jitter)+1))
}

func sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// monitor polls the table every interval, records each snapshot, and
// fails the run on the first pair of adjacent eaters.
func (r *Runner) monitor(ctx context.Context) error {
	iv := r.cfg.Interval
	if iv <= 0 {
		iv = DefaultInterval
	}
	tick := time.NewTicker(iv)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			states := r.tb.States()
			r.rec.Record(states)
			r.polls.Add(1)
			if i := adjacentEaters(states); i >= 0 {
				r.viol.Add(1)
				return fmt.Errorf("scenario %q: %w: %d and %d in %v",
					r.sc.Name, ErrAdjacentEaters, i, (i+1)%len(states), states)
			}
		}
	}
}

// adjacentEaters returns the lowest index i with both i and its right
// neighbor Eating, or -1. A ring of one has no distinct pair.
func adjacentEaters(s []dinex.State) int {
	n := len(s)
	if n < 2 {
		return -1
	}
	for i := range s {
		if s[i] == dinex.Eating && s[(i+1)%n] == dinex.Eating {
			return i
		}
	}
	return -1
}
