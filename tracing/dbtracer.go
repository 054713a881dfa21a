package tracing

import (
	"github.com/sarchlab/tlbsim/datarecording"
	"github.com/sarchlab/tlbsim/sim/hooking"
	"github.com/sarchlab/tlbsim/simulation"
)

// Names of the tables that a DBTracer writes.
const (
	TranslationTableName = "translations"
	RunTableName         = "runs"
)

// TranslationTableEntry is a row of the translations table.
type TranslationTableEntry struct {
	RunID string
	Step  int
	VPN   uint64
	PPN   uint64
	Hit   bool
}

// RunTableEntry is a row of the runs table.
type RunTableEntry struct {
	RunID        string
	Simulation   string
	NumWays      int
	TotalLookups int
	Hits         int
	HitRatio     float64
}

// DBTracer stores the translations and the summaries of simulation runs with
// a DataRecorder. Attach it to a Simulation.
type DBTracer struct {
	backend datarecording.DataRecorder
}

// NewDBTracer creates the tables and returns a DBTracer that writes into
// them.
func NewDBTracer(backend datarecording.DataRecorder) *DBTracer {
	t := &DBTracer{
		backend: backend,
	}

	backend.CreateTable(TranslationTableName, TranslationTableEntry{})
	backend.CreateTable(RunTableName, RunTableEntry{})

	return t
}

// Func records translations and summaries. The buffered rows are flushed at
// the end of every run.
func (t *DBTracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case simulation.HookPosTranslation:
		t.recordTranslation(ctx)
	case simulation.HookPosRunEnd:
		t.recordRun(ctx)
	}
}

func (t *DBTracer) recordTranslation(ctx hooking.HookCtx) {
	translation := ctx.Item.(simulation.Translation)
	info := ctx.Detail.(simulation.RunInfo)

	t.backend.InsertData(TranslationTableName, TranslationTableEntry{
		RunID: info.RunID,
		Step:  info.Step,
		VPN:   translation.VPN,
		PPN:   translation.PPN,
		Hit:   translation.IsHit,
	})
}

func (t *DBTracer) recordRun(ctx hooking.HookCtx) {
	summary := ctx.Item.(simulation.Summary)

	entry := RunTableEntry{
		RunID:        summary.RunID,
		Simulation:   hooking.DomainName(ctx),
		TotalLookups: summary.TotalLookups,
		Hits:         summary.Hits,
		HitRatio:     summary.HitRatio,
	}

	if s, ok := ctx.Domain.(*simulation.Simulation); ok {
		entry.NumWays = s.TLB().Capacity()
	}

	t.backend.InsertData(RunTableName, entry)
	t.backend.Flush()
}
