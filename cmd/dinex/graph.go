package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/llxisdsh/dinex"
	"github.com/llxisdsh/dinex/trace"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Emit the table ring as Graphviz DOT",
	Long: `graph draws the philosopher/fork ring in DOT format.

Render it ring-shaped with:
  dinex graph | dot -Kcirco -Tsvg -o table.svg`,
	Run: func(cmd *cobra.Command, args []string) {
		emitGraph()
	},
}

var (
	graphN   int    // Ring size to draw
	graphOut string // Output file; empty means stdout
)

func init() {
	graphCmd.Flags().IntVarP(&graphN, "philosophers", "n", 5, "number of philosophers")
	graphCmd.Flags().StringVarP(&graphOut, "out", "o", "", "write DOT to file (default stdout)")

	rootCmd.AddCommand(graphCmd)
}

func emitGraph() {
	if graphN < 1 {
		log.Fatalf("need at least 1 philosopher, got %d", graphN)
	}

	out, err := trace.Dot(dinex.NewTable(graphN).States())
	if err != nil {
		log.Fatal(err)
	}
	if graphOut == "" {
		fmt.Print(out)
		return
	}
	if err := os.WriteFile(graphOut, []byte(out), 0o644); err != nil {
		log.Fatal(err)
	}
}
