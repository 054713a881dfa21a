package console

import (
	"fmt"
	"io"

	"github.com/sarchlab/tlbsim/simulation"
)

// Report prints the statistics of a run followed by one line per
// translation, in input order.
func Report(w io.Writer, summary simulation.Summary) {
	fmt.Fprintln(w, "\nSimulation Performance:")
	fmt.Fprintf(w, "Total Lookups: %d\n", summary.TotalLookups)
	fmt.Fprintf(w, "Hits: %d\n", summary.Hits)
	fmt.Fprintf(w, "Hit Ratio: %.2f%%\n", summary.HitRatio*100)

	fmt.Fprintln(w, "\nDetailed Translations:")
	for _, t := range summary.Translations {
		outcome := "Miss"
		if t.IsHit {
			outcome = "Hit"
		}

		fmt.Fprintf(w, "%s: VPN %d -> PPN %d\n", outcome, t.VPN, t.PPN)
	}
}
