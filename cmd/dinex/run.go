package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/llxisdsh/dinex"
	"github.com/llxisdsh/dinex/sim"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run dining simulations and check the table invariant",
	Long: `run simulates philosophers cycling think/eat rounds on one table.

Without flags it runs five identical philosophers; --classic runs the
five-seat table with one never-pausing, one slow, one middling and two
fast philosophers; --scenarios runs a whole YAML suite concurrently.

The exit status is non-zero if the monitor ever observes two adjacent
philosophers eating at the same instant.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSim()
	},
}

func init() {
	runCmd.Flags().IntP("philosophers", "n", 5, "number of philosophers")
	runCmd.Flags().Duration("think", 10*time.Millisecond, "base think time per round")
	runCmd.Flags().Duration("eat", 5*time.Millisecond, "base eat time per round")
	runCmd.Flags().Duration("jitter", 30*time.Millisecond, "random extra pause, uniform in 0..jitter")
	runCmd.Flags().Duration("duration", 10*time.Second, "run window")
	runCmd.Flags().Uint64("seed", 1, "seed for the jitter generators")
	runCmd.Flags().Duration("interval", sim.DefaultInterval, "monitor poll interval")
	runCmd.Flags().Bool("classic", false, "run the classic five-seat table")
	runCmd.Flags().String("scenarios", "", "YAML scenario file to run as a suite")
	runCmd.Flags().Bool("trace", false, "print the recorded timeline after the run")

	if err := viper.BindPFlags(runCmd.Flags()); err != nil {
		log.Fatal(err)
	}
	rootCmd.AddCommand(runCmd)
}

func runSim() {
	cfg := sim.Config{
		Seed:     viper.GetUint64("seed"),
		Interval: viper.GetDuration("interval"),
		Logger:   roundLogger(),
	}

	if path := viper.GetString("scenarios"); path != "" {
		scs, err := sim.LoadScenarios(path)
		if err != nil {
			log.Fatal(err)
		}
		var suite sim.Suite
		err = suite.Run(context.Background(), scs, cfg)
		suite.Range(func(_ string, rep *sim.Report) bool {
			printReport(rep)
			return true
		})
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	rep, err := sim.Run(context.Background(), adHocScenario(), cfg)
	if rep != nil {
		printReport(rep)
		if viper.GetBool("trace") {
			if err := rep.Recording.Render(os.Stdout); err != nil {
				log.Fatal(err)
			}
		}
	}
	if err != nil {
		log.Fatal(err)
	}
}

func adHocScenario() sim.Scenario {
	if viper.GetBool("classic") {
		sc := sim.Classic()
		sc.Run = viper.GetDuration("duration")
		return sc
	}
	return sim.Uniform(
		viper.GetInt("philosophers"),
		viper.GetDuration("think"),
		viper.GetDuration("eat"),
		viper.GetDuration("jitter"),
		viper.GetDuration("duration"),
	)
}

func roundLogger() *log.Logger {
	if quiet {
		return nil
	}
	return log.New(os.Stderr, "", log.Ltime)
}

var stateColors = map[dinex.State]*color.Color{
	dinex.Thinking: color.New(color.FgCyan),
	dinex.Hungry:   color.New(color.FgYellow),
	dinex.Eating:   color.New(color.FgGreen),
}

func colorState(s dinex.State) string {
	if c, ok := stateColors[s]; ok {
		return c.Sprint(s)
	}
	return s.String()
}

func printReport(rep *sim.Report) {
	fmt.Printf("scenario %q: %d philosophers, ran %v\n",
		rep.Scenario, rep.N, rep.Elapsed.Round(time.Millisecond))

	var last []dinex.State
	if rep.Recording.Len() > 0 {
		last = rep.Recording.Get(rep.Recording.Len() - 1).States
	}
	for i := range rep.N {
		line := fmt.Sprintf("  #%d %-12s rounds %-6d waited %v",
			i, sim.Name(i), rep.Rounds[i], rep.Waited[i].Round(time.Millisecond))
		if last != nil {
			line += "  last " + colorState(last[i])
		}
		fmt.Println(line)
	}

	verdict := color.GreenString("ok")
	if rep.Violations > 0 {
		verdict = color.RedString("VIOLATED")
	}
	fmt.Printf("  monitor: %d polls, %d violations, invariant %s\n",
		rep.Polls, rep.Violations, verdict)
}
