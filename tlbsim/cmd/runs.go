package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sarchlab/tlbsim/datarecording"
	"github.com/sarchlab/tlbsim/tracing"
	"github.com/spf13/cobra"
)

var showRun string

var runsCmd = &cobra.Command{
	Use:   "runs [database]",
	Short: "List the runs recorded in a database.",
	Long: "`runs out.sqlite3` lists the runs recorded with `--db out`. " +
		"With `--show [RunID]`, it lists the translations of one run.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := os.Stat(args[0])
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		reader := datarecording.NewReader(args[0])
		defer reader.Close()

		reader.MapTable(tracing.RunTableName, tracing.RunTableEntry{})
		reader.MapTable(tracing.TranslationTableName,
			tracing.TranslationTableEntry{})

		if showRun != "" {
			return listTranslations(cmd, reader, showRun)
		}

		return listRuns(cmd, reader)
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().StringVar(&showRun, "show", "",
		"List the translations of this run")
}

func listRuns(cmd *cobra.Command, reader datarecording.DataReader) error {
	rows, _, err := reader.Query(cmd.Context(), tracing.RunTableName,
		datarecording.QueryParams{})
	if err != nil {
		return fmt.Errorf("querying runs: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RunID\tSimulation\tNumWays\tLookups\tHits\tHit Ratio")

	for _, row := range rows {
		run := row.(*tracing.RunTableEntry)
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.2f%%\n",
			run.RunID, run.Simulation, run.NumWays,
			run.TotalLookups, run.Hits, run.HitRatio*100)
	}

	return w.Flush()
}

func listTranslations(
	cmd *cobra.Command,
	reader datarecording.DataReader,
	runID string,
) error {
	rows, total, err := reader.Query(cmd.Context(),
		tracing.TranslationTableName,
		datarecording.QueryParams{
			Where:   "RunID = ?",
			Args:    []any{runID},
			OrderBy: "Step",
		})
	if err != nil {
		return fmt.Errorf("querying translations: %w", err)
	}

	if total == 0 {
		return errors.New("no translations recorded for run " + runID)
	}

	return printTranslations(cmd.OutOrStdout(), rows)
}

func printTranslations(out io.Writer, rows []any) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Step\tOutcome\tVPN\tPPN")

	for _, row := range rows {
		t := row.(*tracing.TranslationTableEntry)

		outcome := "Miss"
		if t.Hit {
			outcome = "Hit"
		}

		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", t.Step, outcome, t.VPN, t.PPN)
	}

	return w.Flush()
}
