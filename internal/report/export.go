package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/cashflow/internal/common"
)

// Exporter builds a report inside a temporary workspace and moves the
// finished file into OutputDir. The workspace is removed on every path.
type Exporter struct {
	Builder   *Builder
	OutputDir string
	TempDir   string
}

// Export builds and writes the report, returning the final path.
func (e *Exporter) Export(ctx context.Context, in Input) (string, error) {
	ws, err := NewWorkspace(e.TempDir)
	if err != nil {
		return "", &common.ExportError{Op: "workspace", Err: err}
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			slog.Warn("failed to remove export workspace", "error", cerr)
		}
	}()

	out, err := e.Builder.Build(ctx, in)
	if err != nil {
		return "", err
	}

	staged := ws.Path(out.Filename)
	if err := os.WriteFile(staged, out.Data, 0o600); err != nil {
		return "", &common.ExportError{Op: "write", Path: staged, Err: err}
	}

	outDir := e.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return "", &common.ExportError{Op: "mkdir", Path: outDir, Err: err}
	}

	final := filepath.Join(outDir, out.Filename)
	if err := moveFile(staged, final); err != nil {
		return "", &common.ExportError{Op: "write", Path: final, Err: err}
	}

	slog.Info("Report exported", "path", final, "bytes", len(out.Data))
	return final, nil
}

// moveFile renames src to dst, copying when they sit on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy report: %w", err)
	}
	return out.Close()
}
