package sink

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/relabs-tech/imu_fetch/internal/imu"
)

// TextFile writes one space-separated line per sample, no header.
type TextFile struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

// CreateText truncates or creates path.
func CreateText(path string) (*TextFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open text output: %w", err)
	}
	return &TextFile{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

func (t *TextFile) Write(_ context.Context, fr imu.Frame) error {
	for _, r := range fr.Records {
		if _, err := t.w.WriteString(r.Line()); err != nil {
			return fmt.Errorf("write %s: %w", t.path, err)
		}
		if err := t.w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write %s: %w", t.path, err)
		}
	}
	return nil
}

func (t *TextFile) Close() error {
	flushErr := t.w.Flush()
	closeErr := t.f.Close()
	if flushErr != nil {
		return fmt.Errorf("flush %s: %w", t.path, flushErr)
	}
	return closeErr
}
