// Package importer reads transaction CSV files from the import directory and
// records each row through the ledger.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/household/internal/ledger"
)

// Parser converts a CSV file into transaction requests.
type Parser interface {
	Parse(r io.Reader) ([]ledger.CreateParams, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&HouseholdParser{})
	return r
}

// ProcessedDir is the subdirectory of the import directory that receives
// imported files.
const ProcessedDir = "processed"

// Scan returns the CSV files directly inside dir. A missing dir is empty.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves dir/fileName to dir/processed/fileName.
func MarkProcessed(dir, fileName string) error {
	dstDir := filepath.Join(dir, ProcessedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	src := filepath.Join(dir, fileName)
	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// Creator records one transaction. *ledger.Service satisfies it.
type Creator interface {
	Create(ctx context.Context, params ledger.CreateParams) (int, error)
}

// Result is the outcome of one CSV row. Row numbers count the header as 1.
type Result struct {
	Row int
	ID  int
	Err error
}

// Summary counts the outcomes of a run.
type Summary struct {
	Created int
	Failed  int
}

// Run creates every request in order. A rejected row is reported in its
// Result and does not stop the rest; only a canceled ctx ends the run early.
func Run(ctx context.Context, c Creator, params []ledger.CreateParams) ([]Result, Summary, error) {
	results := make([]Result, 0, len(params))
	var sum Summary
	for i, p := range params {
		if err := ctx.Err(); err != nil {
			return results, sum, err
		}
		res := Result{Row: i + 2}
		res.ID, res.Err = c.Create(ctx, p)
		if res.Err != nil {
			sum.Failed++
			slog.DebugContext(ctx, "import row rejected", "row", res.Row, "error", res.Err)
		} else {
			sum.Created++
		}
		results = append(results, res)
	}
	return results, sum, nil
}

// ImportFile parses path with p and runs the rows through c.
func ImportFile(ctx context.Context, c Creator, p Parser, path string) ([]Result, Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	params, err := p.Parse(f)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	results, sum, err := Run(ctx, c, params)
	if err == nil {
		slog.InfoContext(ctx, "file imported",
			"file", filepath.Base(path),
			"created", sum.Created,
			"failed", sum.Failed)
	}
	return results, sum, err
}
