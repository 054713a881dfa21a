package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarchlab/tlbsim/console"
	"github.com/spf13/cobra"
)

var inputFile string

var runCmd = &cobra.Command{
	Use:   "run [VPN...]",
	Short: "Simulate a sequence of virtual page numbers.",
	Long: "`run 10 20 30` simulates the given virtual page numbers. " +
		"With `--input`, the numbers are read from a file instead. " +
		"Numbers after `--` are never taken as flags.",
	RunE: func(cmd *cobra.Command, args []string) error {
		vpns, err := collectAddresses(args, inputFile)
		if err != nil {
			return err
		}

		s := newSession(cfg, cmd.ErrOrStderr())
		summary := s.run(vpns)
		console.Report(cmd.OutOrStdout(), summary)

		return s.finish(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.SetFlagErrorFunc(reportNegativeNumbers)
	runCmd.Flags().StringVarP(&inputFile, "input", "i", "",
		"Read virtual page numbers from this file")
}

// reportNegativeNumbers turns a negative number that was parsed as an
// unknown shorthand flag, as in `run -5`, into the input error it is.
func reportNegativeNumbers(_ *cobra.Command, err error) error {
	msg := err.Error()

	i := strings.LastIndex(msg, " in -")
	if !strings.HasPrefix(msg, "unknown shorthand flag") || i < 0 {
		return err
	}

	_, parseErr := console.ParseAddresses(msg[i+len(" in "):])

	var negative *console.NegativeValueError
	if errors.As(parseErr, &negative) {
		return negative
	}

	return err
}

func collectAddresses(args []string, path string) ([]uint64, error) {
	if path != "" && len(args) > 0 {
		return nil, errors.New(
			"virtual page numbers and --input cannot be used together")
	}

	if path == "" {
		return console.ParseAddresses(strings.Join(args, " "))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer file.Close()

	return readAddresses(file)
}

// readAddresses parses every line of r. Blank lines are skipped, but at least
// one address must be present.
func readAddresses(r io.Reader) ([]uint64, error) {
	var vpns []uint64

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		lineVPNs, err := console.ParseAddresses(scanner.Text())
		if errors.Is(err, console.ErrEmptyInput) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}

		vpns = append(vpns, lineVPNs...)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	if len(vpns) == 0 {
		return nil, console.ErrEmptyInput
	}

	return vpns, nil
}
