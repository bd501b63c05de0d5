// Package pdfcli concatenates PDF documents by shelling out to pdfunite
// (poppler-utils). Inputs are written to a private temp dir for the duration
// of one merge call.
package pdfcli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

const defaultBinary = "pdfunite"

type Merger struct {
	binary string
}

func New() (*Merger, error) {
	return NewWithBinary(defaultBinary)
}

func NewWithBinary(binary string) (*Merger, error) {
	if binary == "" {
		binary = defaultBinary
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("locate pdf merge tool %q: %w", binary, err)
	}
	return &Merger{binary: path}, nil
}

// Merge concatenates parts in order and returns the combined document bytes.
func (m *Merger) Merge(ctx context.Context, parts [][]byte) ([]byte, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("no documents to merge")
	}
	if len(parts) == 1 {
		out := make([]byte, len(parts[0]))
		copy(out, parts[0])
		return out, nil
	}

	dir, err := os.MkdirTemp("", "pdfmerge")
	if err != nil {
		return nil, fmt.Errorf("create merge workdir: %w", err)
	}
	defer os.RemoveAll(dir)

	args := make([]string, 0, len(parts)+1)
	for i, part := range parts {
		in := filepath.Join(dir, "part_"+strconv.Itoa(i)+".pdf")
		if err := os.WriteFile(in, part, 0o600); err != nil {
			return nil, fmt.Errorf("write merge input %d: %w", i, err)
		}
		args = append(args, in)
	}
	out := filepath.Join(dir, "merged.pdf")
	args = append(args, out)

	cmd := exec.CommandContext(ctx, m.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdfunite: %w: %s", err, output)
	}

	merged, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("read merged document: %w", err)
	}
	return merged, nil
}
