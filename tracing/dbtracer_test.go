package tracing

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/tlbsim/datarecording"
	"github.com/sarchlab/tlbsim/simulation"
	"go.uber.org/mock/gomock"
)

var _ = Describe("DBTracer", func() {
	var (
		mockCtrl *gomock.Controller
		backend  *MockDataRecorder
		tracer   *DBTracer
		s        *simulation.Simulation
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		backend = NewMockDataRecorder(mockCtrl)

		backend.EXPECT().
			CreateTable(TranslationTableName, TranslationTableEntry{})
		backend.EXPECT().CreateTable(RunTableName, RunTableEntry{})

		tracer = NewDBTracer(backend)
		s = simulation.MakeBuilder().Build("Sim")
		s.AcceptHook(tracer)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should record every translation and the run", func() {
		var runID string

		gomock.InOrder(
			backend.EXPECT().
				InsertData(TranslationTableName, gomock.Any()).
				Do(func(_ string, entry any) {
					e := entry.(TranslationTableEntry)
					runID = e.RunID
					Expect(e.Step).To(Equal(0))
					Expect(e.VPN).To(Equal(uint64(7)))
					Expect(e.Hit).To(BeFalse())
				}),
			backend.EXPECT().
				InsertData(TranslationTableName, gomock.Any()).
				Do(func(_ string, entry any) {
					e := entry.(TranslationTableEntry)
					Expect(e.Step).To(Equal(1))
					Expect(e.Hit).To(BeTrue())
				}),
			backend.EXPECT().
				InsertData(RunTableName, gomock.Any()).
				Do(func(_ string, entry any) {
					e := entry.(RunTableEntry)
					Expect(e.RunID).To(Equal(runID))
					Expect(e.Simulation).To(Equal("Sim"))
					Expect(e.NumWays).To(Equal(4))
					Expect(e.TotalLookups).To(Equal(2))
					Expect(e.Hits).To(Equal(1))
					Expect(e.HitRatio).To(Equal(0.5))
				}),
			backend.EXPECT().Flush(),
		)

		summary := s.Run([]uint64{7, 7})

		Expect(summary.RunID).To(Equal(runID))
	})
})

var _ = Describe("DBTracer with SQLite", func() {
	It("should write rows that can be read back", func() {
		path := filepath.Join(GinkgoT().TempDir(), "rec")
		backend := datarecording.New(path)
		defer backend.Close()

		s := simulation.MakeBuilder().Build("Sim")
		s.AcceptHook(NewDBTracer(backend))
		summary := s.Run([]uint64{10, 20, 10})

		reader := datarecording.NewReader(path + ".sqlite3")
		defer reader.Close()
		reader.MapTable(TranslationTableName, TranslationTableEntry{})
		reader.MapTable(RunTableName, RunTableEntry{})

		rows, total, err := reader.Query(context.Background(),
			TranslationTableName,
			datarecording.QueryParams{OrderBy: "Step"})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(3))
		Expect(rows[2]).To(Equal(&TranslationTableEntry{
			RunID: summary.RunID, Step: 2, VPN: 10, PPN: 10, Hit: true,
		}))

		runs, _, err := reader.Query(context.Background(),
			RunTableName, datarecording.QueryParams{})
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(1))
		Expect(runs[0].(*RunTableEntry).Hits).To(Equal(1))
	})

	It("should record page numbers with the top bit set", func() {
		path := filepath.Join(GinkgoT().TempDir(), "rec")
		backend := datarecording.New(path)
		defer backend.Close()

		s := simulation.MakeBuilder().Build("Sim")
		s.AcceptHook(NewDBTracer(backend))

		var summary simulation.Summary
		Expect(func() {
			summary = s.Run([]uint64{18446744073709551615, 1 << 63})
		}).NotTo(Panic())

		reader := datarecording.NewReader(path + ".sqlite3")
		defer reader.Close()
		reader.MapTable(TranslationTableName, TranslationTableEntry{})

		rows, _, err := reader.Query(context.Background(),
			TranslationTableName,
			datarecording.QueryParams{OrderBy: "Step"})
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(Equal([]any{
			&TranslationTableEntry{
				RunID: summary.RunID, Step: 0,
				VPN: 18446744073709551615, PPN: 16383,
			},
			&TranslationTableEntry{
				RunID: summary.RunID, Step: 1, VPN: 1 << 63, PPN: 0,
			},
		}))
	})
})
