package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/relabs-tech/imu_fetch/internal/imu"
)

// JSONFile writes one imu.BurstMessage object per line.
type JSONFile struct {
	path string
	f    *os.File
	w    *bufio.Writer
	enc  *json.Encoder
}

// CreateJSON truncates or creates path.
func CreateJSON(path string) (*JSONFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open json output: %w", err)
	}
	w := bufio.NewWriter(f)
	return &JSONFile{path: path, f: f, w: w, enc: json.NewEncoder(w)}, nil
}

func (j *JSONFile) Write(_ context.Context, fr imu.Frame) error {
	// Encode terminates each object with '\n'.
	if err := j.enc.Encode(fr.Message()); err != nil {
		return fmt.Errorf("write %s: %w", j.path, err)
	}
	return nil
}

func (j *JSONFile) Close() error {
	flushErr := j.w.Flush()
	closeErr := j.f.Close()
	if flushErr != nil {
		return fmt.Errorf("flush %s: %w", j.path, flushErr)
	}
	return closeErr
}
