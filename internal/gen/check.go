package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"copy-generator/internal/common"
)

// Status is the state of one file on disk compared with its generated content.
type Status int

const (
	StatusOK      Status = iota // up to date
	StatusChanged               // content differs
	StatusMissing               // not on disk
	StatusStale                 // on disk but no longer generated
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusChanged:
		return "changed"
	case StatusMissing:
		return "missing"
	case StatusStale:
		return "stale"
	default:
		return common.UnknownStr
	}
}

// CheckResult reports the state of one file.
type CheckResult struct {
	Filename string
	Status   Status
	// Diff is a line diff from the file on disk to the generated content,
	// set for StatusChanged only.
	Diff string
}

// Check compares generated files with the content of outputDir. Files in
// outputDir ending in suffix that are not generated any more are reported as
// stale. Results are ordered by file name.
func Check(files []GeneratedFile, outputDir, suffix string) ([]CheckResult, error) {
	results := make([]CheckResult, 0, len(files))
	generated := make(map[string]bool, len(files))

	for _, file := range files {
		generated[file.Filename] = true

		existing, err := os.ReadFile(filepath.Join(outputDir, file.Filename))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			results = append(results, CheckResult{Filename: file.Filename, Status: StatusMissing})
		case err != nil:
			return nil, fmt.Errorf("reading file %s: %w", file.Filename, err)
		case string(existing) == string(file.Content):
			results = append(results, CheckResult{Filename: file.Filename, Status: StatusOK})
		default:
			results = append(results, CheckResult{
				Filename: file.Filename,
				Status:   StatusChanged,
				Diff:     LineDiff(string(existing), string(file.Content)),
			})
		}
	}

	if suffix != "" {
		entries, err := os.ReadDir(outputDir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading output directory: %w", err)
		}

		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) || generated[e.Name()] {
				continue
			}

			results = append(results, CheckResult{Filename: e.Name(), Status: StatusStale})
		}
	}

	slices.SortFunc(results, func(a, b CheckResult) int {
		return strings.Compare(a.Filename, b.Filename)
	})

	return results, nil
}

// HasDrift reports whether any result is not up to date.
func HasDrift(results []CheckResult) bool {
	for _, r := range results {
		if r.Status != StatusOK {
			return true
		}
	}

	return false
}

// LineDiff renders the lines removed from and added to old, prefixed with
// "-" and "+". Unchanged lines are omitted.
func LineDiff(old, updated string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, updated)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder

	for _, d := range diffs {
		var prefix string

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffEqual:
			continue
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}

			out.WriteString(prefix)
			out.WriteString(line)

			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}

	return out.String()
}
