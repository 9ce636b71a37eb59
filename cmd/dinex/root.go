package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string // Path to config file
	noColour bool   // Turn off colour output
	quiet    bool   // Suppress per-round log lines
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dinex",
	Short: "Starvation-free dining philosophers simulator",
	Long: `dinex runs dining-philosophers simulations on an arbitrated table
and watches the table invariant (no two neighbors eating at once)
from the outside while they run.

Use "dinex run" to simulate, "dinex graph" to draw the table.`,
}

// Execute runs the root command. Called once, by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dinex.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColour, "no-colour", false, "disable colour output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-round log lines")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" { // enable ability to specify config file via flag
		viper.SetConfigFile(cfgFile)
	}

	viper.SetConfigName(".dinex") // name of config file (without extension)
	viper.AddConfigPath("$HOME")  // adding home directory as first search path
	viper.SetEnvPrefix("dinex")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	if noColour {
		color.NoColor = true
	}
}
