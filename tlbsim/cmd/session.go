package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/sarchlab/tlbsim/config"
	"github.com/sarchlab/tlbsim/datarecording"
	"github.com/sarchlab/tlbsim/monitoring"
	"github.com/sarchlab/tlbsim/sim/hooking"
	"github.com/sarchlab/tlbsim/simulation"
	"github.com/sarchlab/tlbsim/tracing"
)

// A session owns one simulation and everything attached to it for the
// lifetime of a command.
type session struct {
	sim        *simulation.Simulation
	tagCounter *tracing.TagCountTracer
	recorder   datarecording.DataRecorder
	csvTracer  *tracing.CSVTracer
	monitor    *monitoring.Monitor
}

func newSession(c config.Config, logOut io.Writer) *session {
	s := &session{
		sim: simulation.MakeBuilder().
			WithNumWays(c.NumWays).
			WithLog2NumPhysicalPages(c.Log2NumPhysicalPages).
			Build("Sim"),
	}

	if c.DBPath != "" {
		s.recorder = datarecording.New(c.DBPath)
		s.sim.AcceptHook(tracing.NewDBTracer(s.recorder))
	}

	if c.TraceCSVPath != "" {
		s.csvTracer = tracing.CreateCSVTraceFile(c.TraceCSVPath)
		s.sim.TLB().AcceptHook(s.csvTracer)
	}

	if verbose {
		logHook := hooking.NewLogHook(log.New(logOut, "", 0))
		s.sim.TLB().AcceptHook(logHook)

		s.tagCounter = tracing.NewTagCountTracer(nil)
		s.sim.TLB().AcceptHook(s.tagCounter)
	}

	if c.Monitor {
		s.monitor = monitoring.NewMonitor().WithPortNumber(c.MonitorPort)
		s.monitor.RegisterSimulation(s.sim)
		s.monitor.StartServer()

		if openPage {
			err := s.monitor.OpenInBrowser()
			if err != nil {
				warnf("Cannot open the monitoring page: %v\n", err)
			}
		}
	}

	return s
}

func (s *session) run(vpns []uint64) simulation.Summary {
	return s.sim.Run(vpns)
}

// finish prints the event counts, closes the trace and the database, and
// keeps the monitoring page alive until the user interrupts.
func (s *session) finish(out io.Writer) error {
	if s.tagCounter != nil {
		fmt.Fprintln(out, "\nTLB Events:")
		for _, name := range s.tagCounter.GetTagNames() {
			fmt.Fprintf(out, "%s: %d\n", name, s.tagCounter.GetTagCount(name))
		}
	}

	if s.csvTracer != nil {
		err := s.csvTracer.Close()
		if err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}

	if s.recorder != nil {
		err := s.recorder.Close()
		if err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}

	if s.monitor != nil {
		return s.serveUntilInterrupted()
	}

	return nil
}

func (s *session) serveUntilInterrupted() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	warnf("Monitoring page at %s, press Ctrl+C to exit.\n", s.monitor.URL())
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), 5*time.Second)
	defer cancel()

	err := s.monitor.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("stopping monitor: %w", err)
	}

	return nil
}
