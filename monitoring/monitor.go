// Package monitoring turns a simulation into a web server so that the TLB and
// the results of the latest run can be inspected while the program runs.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/sarchlab/tlbsim/mem/vm/tlb"
	"github.com/sarchlab/tlbsim/monitoring/web"
	"github.com/sarchlab/tlbsim/sim/hooking"
	"github.com/sarchlab/tlbsim/simulation"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Monitor serves the state of a simulation over HTTP. It is a hook: register
// the simulation with RegisterSimulation and the monitor follows every run.
//
// The simulation only calls the monitor between translations, and the
// handlers only read copies taken under the lock, so the TLB itself is never
// shared with the server goroutines.
type Monitor struct {
	portNumber int
	server     *http.Server
	url        string

	lock    sync.Mutex
	tlb     tlbSnapshot
	summary *summaryRsp

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
	runBars          map[string]*ProgressBar
}

type tlbSnapshot struct {
	Name    string
	NumWays int
	Entries []tlb.Entry
}

type entryRsp struct {
	VPN uint64 `json:"vpn"`
	PPN uint64 `json:"ppn"`
}

type translationRsp struct {
	VPN uint64 `json:"vpn"`
	PPN uint64 `json:"ppn"`
	Hit bool   `json:"hit"`
}

type summaryRsp struct {
	RunID        string           `json:"run_id"`
	TotalLookups int              `json:"total_lookups"`
	Hits         int              `json:"hits"`
	Misses       int              `json:"misses"`
	HitRatio     float64          `json:"hit_ratio"`
	Translations []translationRsp `json:"translations"`
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		runBars: make(map[string]*ProgressBar),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterSimulation lets the monitor follow the runs of a simulation.
func (m *Monitor) RegisterSimulation(s *simulation.Simulation) {
	m.takeTLBSnapshot(s.TLB())
	s.AcceptHook(m)
}

// Func updates the progress and the published results of the runs.
func (m *Monitor) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case simulation.HookPosRunStart:
		info := ctx.Item.(simulation.RunInfo)
		bar := m.CreateProgressBar(
			hooking.DomainName(ctx)+" "+info.RunID, uint64(info.NumLookups))
		m.progressBarsLock.Lock()
		m.runBars[info.RunID] = bar
		m.progressBarsLock.Unlock()
	case simulation.HookPosTranslation:
		info := ctx.Detail.(simulation.RunInfo)
		m.progressBarsLock.Lock()
		bar := m.runBars[info.RunID]
		m.progressBarsLock.Unlock()

		if bar != nil {
			bar.IncrementFinished(1)
		}
	case simulation.HookPosRunEnd:
		m.finishRun(ctx)
	}
}

func (m *Monitor) finishRun(ctx hooking.HookCtx) {
	summary := ctx.Item.(simulation.Summary)

	if s, ok := ctx.Domain.(*simulation.Simulation); ok {
		m.takeTLBSnapshot(s.TLB())
	}

	m.publishSummary(summary)

	m.progressBarsLock.Lock()
	bar := m.runBars[summary.RunID]
	delete(m.runBars, summary.RunID)
	m.progressBarsLock.Unlock()

	if bar != nil {
		m.CompleteProgressBar(bar)
	}
}

func (m *Monitor) takeTLBSnapshot(t *tlb.Comp) {
	snapshot := tlbSnapshot{
		Name:    t.Name(),
		NumWays: t.Capacity(),
		Entries: t.Entries(),
	}

	m.lock.Lock()
	m.tlb = snapshot
	m.lock.Unlock()
}

func (m *Monitor) publishSummary(s simulation.Summary) {
	rsp := &summaryRsp{
		RunID:        s.RunID,
		TotalLookups: s.TotalLookups,
		Hits:         s.Hits,
		Misses:       s.Misses(),
		HitRatio:     s.HitRatio,
		Translations: make([]translationRsp, 0, len(s.Translations)),
	}

	for _, t := range s.Translations {
		rsp.Translations = append(rsp.Translations, translationRsp{
			VPN: t.VPN,
			PPN: t.PPN,
			Hit: t.IsHit,
		})
	}

	m.lock.Lock()
	m.summary = rsp
	m.lock.Unlock()
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := newProgressBar(name, total)

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/tlb", m.serializeTLB)
	r.HandleFunc("/api/entries", m.listEntries)
	r.HandleFunc("/api/summary", m.reportSummary)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server with a custom port if wanted.
func (m *Monitor) StartServer() {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	m.server = &http.Server{
		Handler:           m.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.url)

	go func() {
		err := m.server.Serve(listener)
		if !errors.Is(err, http.ErrServerClosed) {
			dieOnErr(err)
		}
	}()
}

// URL returns the address of the server. It is empty before StartServer.
func (m *Monitor) URL() string {
	return m.url
}

// OpenInBrowser opens the monitoring page with the default browser.
func (m *Monitor) OpenInBrowser() error {
	if m.url == "" {
		return errors.New("monitoring server is not started")
	}

	return browser.OpenURL(m.url)
}

// Shutdown stops the server.
func (m *Monitor) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

func (m *Monitor) serializeTLB(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	snapshot := m.tlb
	m.lock.Unlock()

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&snapshot)
	serializer.SetMaxDepth(3)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) listEntries(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	entries := make([]entryRsp, 0, len(m.tlb.Entries))
	for _, e := range m.tlb.Entries {
		entries = append(entries, entryRsp{VPN: e.VPN, PPN: e.PPN})
	}
	m.lock.Unlock()

	writeJSON(w, entries)
}

func (m *Monitor) reportSummary(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	summary := m.summary
	m.lock.Unlock()

	if summary == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("No run has finished"))
		dieOnErr(err)

		return
	}

	writeJSON(w, summary)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]ProgressStatus, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.Status())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	writeJSON(w, rsp)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
