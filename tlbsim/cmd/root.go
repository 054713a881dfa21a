// Package cmd provides the command-line interface of the TLB simulator.
package cmd

import (
	"fmt"
	"os"

	"github.com/sarchlab/tlbsim/config"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var (
	cfg      config.Config
	envFile  string
	openPage bool
	verbose  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tlbsim",
	Short: "tlbsim simulates a translation lookaside buffer with FIFO eviction.",
	Long: `tlbsim feeds a sequence of virtual page numbers through a ` +
		`translation lookaside buffer that evicts the oldest entry first. ` +
		`It reports every translation and the hit ratio of the run.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	addConfigFlags(rootCmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", "",
		"Load settings from this file instead of .env")
	flags.BoolVar(&openPage, "open", false,
		"Open the monitoring page in a browser")
	flags.BoolVarP(&verbose, "verbose", "v", false,
		"Log every TLB event and print event counts")
}

// addConfigFlags adds the flags that override config.Config fields.
func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.Int("num-ways", 0, "Number of TLB entries")
	flags.Uint64("log2-num-physical-pages", 0,
		"Log2 of the number of physical pages")
	flags.String("db", "", "Record the results into this SQLite database")
	flags.String("trace-csv", "", "Write every TLB event into this CSV file")
	flags.Bool("monitor", false, "Serve the monitoring page")
	flags.Int("monitor-port", 0, "Port of the monitoring page")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	var err error

	if envFile != "" {
		cfg, err = config.Load(envFile)
	} else {
		cfg, err = config.Load()
	}

	if err != nil {
		return err
	}

	err = applyFlags(cmd, &cfg)
	if err != nil {
		return err
	}

	if openPage {
		cfg.Monitor = true
	}

	return nil
}

// applyFlags overrides the configuration with the flags given on the command
// line.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()

	var err error

	if flags.Changed("num-ways") {
		c.NumWays, err = flags.GetInt("num-ways")
		if err != nil {
			return err
		}

		if c.NumWays < 1 {
			return fmt.Errorf("--num-ways must be at least 1, got %d",
				c.NumWays)
		}
	}

	if flags.Changed("log2-num-physical-pages") {
		c.Log2NumPhysicalPages, err = flags.GetUint64("log2-num-physical-pages")
		if err != nil {
			return err
		}

		if c.Log2NumPhysicalPages >= 64 {
			return fmt.Errorf(
				"--log2-num-physical-pages must be less than 64, got %d",
				c.Log2NumPhysicalPages)
		}
	}

	if flags.Changed("db") {
		c.DBPath, err = flags.GetString("db")
		if err != nil {
			return err
		}
	}

	if flags.Changed("trace-csv") {
		c.TraceCSVPath, err = flags.GetString("trace-csv")
		if err != nil {
			return err
		}
	}

	if flags.Changed("monitor") {
		c.Monitor, err = flags.GetBool("monitor")
		if err != nil {
			return err
		}
	}

	if flags.Changed("monitor-port") {
		c.MonitorPort, err = flags.GetInt("monitor-port")
		if err != nil {
			return err
		}
	}

	return nil
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
