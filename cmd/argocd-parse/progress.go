package main

import (
	"fmt"
	"io"
	"time"

	"github.com/alevsk/argocd-migrate/internal/formatter"
	"github.com/alevsk/argocd-migrate/internal/types"
	"github.com/jedib0t/go-pretty/v6/progress"
)

// progressDisplay prints one line per processed file, with a progress bar
// below them when bar is enabled
type progressDisplay struct {
	out     io.Writer
	pw      progress.Writer
	tracker *progress.Tracker
	done    chan struct{}
}

func newProgressDisplay(out io.Writer, total int, bar bool) *progressDisplay {
	d := &progressDisplay{out: out}
	if !bar {
		return d
	}

	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetAutoStop(true)
	pw.SetTrackerLength(40)
	pw.SetUpdateFrequency(50 * time.Millisecond)
	pw.SetStyle(progress.StyleDefault)
	pw.Style().Visibility.ETA = false
	pw.Style().Visibility.Time = false

	d.tracker = &progress.Tracker{
		Message: "Processing files",
		Total:   int64(total),
		Units:   progress.UnitsDefault,
	}
	pw.AppendTracker(d.tracker)
	d.pw = pw

	d.done = make(chan struct{})
	go func() {
		defer close(d.done)
		pw.Render()
	}()
	return d
}

// Report records the outcome of one file
func (d *progressDisplay) Report(path string, result types.ParseResult) {
	line := formatter.FormatResultLine(result)
	if d.pw == nil {
		fmt.Fprintln(d.out, line)
		return
	}
	d.pw.Log("%s", line)
	d.tracker.Increment(1)
}

// Wait blocks until the progress bar has finished rendering
func (d *progressDisplay) Wait() {
	if d.pw == nil {
		return
	}
	d.tracker.MarkAsDone()
	<-d.done
}
