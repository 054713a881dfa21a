package cmd

import (
	"errors"
	"io"

	"github.com/sarchlab/tlbsim/console"
	"github.com/spf13/cobra"
)

var repeat bool

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Ask for virtual page numbers and simulate them.",
	Long: "`interactive` reads a line of virtual page numbers, retrying " +
		"until the line is valid, and simulates it. With `--repeat`, it " +
		"keeps asking until the input ends, and the TLB keeps its entries " +
		"between lines.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		prompter := console.NewPrompter(cmd.InOrStdin(), out)
		prompter.PrintBanner()

		s := newSession(cfg, cmd.ErrOrStderr())
		err := interact(prompter, s, out)
		if err != nil {
			return err
		}

		return s.finish(out)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	interactiveCmd.Flags().BoolVar(&repeat, "repeat", false,
		"Keep asking until the input ends")
}

func interact(prompter *console.Prompter, s *session, out io.Writer) error {
	numRuns := 0

	for {
		vpns, err := prompter.ReadAddresses()
		if errors.Is(err, io.EOF) && numRuns > 0 {
			return nil
		}

		if err != nil {
			return err
		}

		console.Report(out, s.run(vpns))
		numRuns++

		if !repeat {
			return nil
		}
	}
}
