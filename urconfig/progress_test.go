package urconfig

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeSource struct {
	expected, processed int
	percent             float64
	complete            bool
}

func (f *fakeSource) ExpectedPartCount() int            { return f.expected }
func (f *fakeSource) ProcessedPartsCount() int          { return f.processed }
func (f *fakeSource) EstimatedPercentComplete() float64 { return f.percent }
func (f *fakeSource) IsComplete() bool                  { return f.complete }

func TestLogProgressRowWritesHeaderAndRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "progress.csv")
	src := &fakeSource{expected: 10, processed: 1, percent: 0.1}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		ProgressLogger(path, 0, src, stop)
		close(done)
	}()

	// interval 0 makes ProgressLogger return at once without writing
	// anything, so the row below is written by calling logProgressRow
	// directly.
	close(stop)
	<-done

	src.processed = 10
	src.percent = 1.0
	src.complete = true
	logProgressRow(path, src)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lines := 0
	for scanner.Scan() {
		lines++
	}
	if lines < 2 {
		t.Fatalf("expected a header row plus at least one data row, got %d lines", lines)
	}
}

func TestProgressLoggerNoopWithoutPathOrInterval(t *testing.T) {
	src := &fakeSource{}
	stop := make(chan struct{})
	close(stop)
	ProgressLogger("", 5, src, stop)
	ProgressLogger(filepath.Join(t.TempDir(), "unused.csv"), 0, src, stop)
}

func TestProgressLoggerReturnsOnceComplete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "progress2.csv")
	src := &fakeSource{expected: 5, processed: 5, percent: 1.0, complete: true}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		ProgressLogger(path, 1, src, stop)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("ProgressLogger did not return after src reported complete")
	}
}
