package tracing

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rs/xid"
	"github.com/sarchlab/tlbsim/mem/vm/tlb"
	"github.com/sarchlab/tlbsim/sim/hooking"
	"github.com/tebeka/atexit"
)

// CSVTracer writes one line for every TLB event it observes. Each line has
// the sequence number, the TLB name, the event, the VPN and the PPN.
type CSVTracer struct {
	writer *bufio.Writer
	closer io.Closer
	count  uint64
}

// NewCSVTracer creates a CSVTracer that writes to w. The header is written
// immediately.
func NewCSVTracer(w io.Writer) *CSVTracer {
	t := &CSVTracer{
		writer: bufio.NewWriter(w),
	}

	t.mustWrite("Seq,Where,What,VPN,PPN\n")

	return t
}

// CreateCSVTraceFile creates path + ".csv" and returns a CSVTracer that writes
// into it. An empty path gets a unique name. The file is flushed and closed
// when the program exits through atexit.
func CreateCSVTraceFile(path string) *CSVTracer {
	if path == "" {
		path = "tlbsim_trace_" + xid.New().String()
	}

	filename := path + ".csv"
	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	file, err := os.Create(filename)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "Trace file created: %s\n", filename)

	t := NewCSVTracer(file)
	t.closer = file

	atexit.Register(func() {
		err := t.Close()
		if err != nil {
			panic(err)
		}
	})

	return t
}

// Func writes a line if the hook is triggered by a TLB.
func (t *CSVTracer) Func(ctx hooking.HookCtx) {
	entry, ok := ctx.Item.(tlb.Entry)
	if !ok {
		return
	}

	t.count++
	t.mustWrite(fmt.Sprintf("%d,%s,%s,%d,%d\n",
		t.count,
		hooking.DomainName(ctx),
		ctx.Pos.Name,
		entry.VPN,
		entry.PPN,
	))
}

// Flush writes the buffered lines.
func (t *CSVTracer) Flush() error {
	return t.writer.Flush()
}

// Close flushes the buffered lines and closes the underlying file, if the
// tracer owns one.
func (t *CSVTracer) Close() error {
	err := t.Flush()
	if err != nil {
		return err
	}

	if t.closer == nil {
		return nil
	}

	err = t.closer.Close()
	t.closer = nil

	return err
}

func (t *CSVTracer) mustWrite(s string) {
	_, err := t.writer.WriteString(s)
	if err != nil {
		panic(err)
	}
}
