package sim

import (
	"context"
	"fmt"

	"github.com/llxisdsh/pb"
	"golang.org/x/sync/errgroup"
)

// Suite runs a batch of scenarios concurrently and publishes each
// report as it lands, so observers can read finished results while the
// rest of the batch is still running. The zero value is ready to use;
// a Suite runs one batch.
type Suite struct {
	results pb.MapOf[string, *Report]
}

// Run executes every scenario on its own goroutine and blocks until
// all finish. The first violation aborts the remaining scenarios and
// is returned; reports gathered up to that point stay readable.
func (s *Suite) Run(ctx context.Context, scs []Scenario, cfg Config) error {
	// Reserve every name first: a duplicate would silently swallow a
	// report.
	for _, sc := range scs {
		_, dup := s.results.ProcessEntry(sc.Name,
			func(l *pb.EntryOf[string, *Report]) (*pb.EntryOf[string, *Report], *Report, bool) {
				if l != nil {
					return l, l.Value, true
				}
				return &pb.EntryOf[string, *Report]{}, nil, false
			})
		if dup {
			return fmt.Errorf("sim: duplicate scenario name %q", sc.Name)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, sc := range scs {
		g.Go(func() error {
			rep, err := Run(gctx, sc, cfg)
			if rep != nil {
				s.results.Store(sc.Name, rep)
			}
			return err
		})
	}
	return g.Wait()
}

// Get returns the report for a finished scenario.
func (s *Suite) Get(name string) (*Report, bool) {
	rep, ok := s.results.Load(name)
	if !ok || rep == nil {
		return nil, false
	}
	return rep, true
}

// Range visits every finished report. Scenarios still running (or
// aborted before reporting) are skipped.
func (s *Suite) Range(fn func(name string, rep *Report) bool) {
	s.results.Range(func(name string, rep *Report) bool {
		if rep == nil {
			return true
		}
		return fn(name, rep)
	})
}
