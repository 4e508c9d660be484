package conformance

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"encoding/json"

	"github.com/lattice-substrate/map1/map1"
	"github.com/lattice-substrate/map1/map1err"
)

// ReportEntry records the outcome of one vector.
type ReportEntry struct {
	TestID string `json:"test_id"`
	Got    string `json:"got"`
	Want   string `json:"want"`
	Pass   bool   `json:"pass"`
}

// Report is the PASS report produced by running a bundle.
type Report struct {
	ImplementationName string        `json:"implementation_name"`
	BundleSHA256       string        `json:"bundle_sha256"`
	TotalVectors       int           `json:"total_vectors"`
	PassedVectors      int           `json:"passed_vectors"`
	Entries            []ReportEntry `json:"entries"`
}

// Run executes every vector in b against the public map1 operations
// and returns the resulting report. implName is recorded verbatim in
// the report for the (external) verifier to attribute results to an
// implementation. BundleSHA256 is copied from b so the report is
// traceable back to the exact bundle it was run against.
func Run(b *Bundle, implName string) (*Report, error) {
	report := &Report{
		ImplementationName: implName,
		BundleSHA256:       b.ManifestSHA256,
		TotalVectors:       len(b.Vectors),
	}

	for _, v := range b.Vectors {
		want, ok := b.Expected[v.TestID]
		if !ok {
			return nil, fmt.Errorf("vector %s has no expected result", v.TestID)
		}

		got, gotErr := runVector(v)

		entry := ReportEntry{TestID: v.TestID}
		switch {
		case want.Err != "":
			entry.Want = want.Err
			if gotErr != nil {
				if code, ok := map1err.CodeOf(gotErr); ok {
					entry.Got = string(code)
				} else {
					entry.Got = gotErr.Error()
				}
			} else {
				entry.Got = got
			}
			entry.Pass = gotErr != nil && entry.Got == want.Err
		default:
			entry.Want = want.MID
			if gotErr != nil {
				if code, ok := map1err.CodeOf(gotErr); ok {
					entry.Got = string(code)
				} else {
					entry.Got = gotErr.Error()
				}
			} else {
				entry.Got = got
			}
			entry.Pass = gotErr == nil && got == want.MID
		}

		if entry.Pass {
			report.PassedVectors++
		}
		report.Entries = append(report.Entries, entry)
	}

	return report, nil
}

func runVector(v Vector) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(v.InputB64)
	if err != nil {
		return "", fmt.Errorf("decode input_b64 for %s: %w", v.TestID, err)
	}

	switch v.Mode {
	case "json_strict_full":
		return map1.MidFullJSON(raw)
	case "json_strict_bind":
		return map1.MidBindJSON(raw, v.Pointers)
	case "canon_bytes":
		return map1.MidFromCanonBytes(raw)
	default:
		return "", fmt.Errorf("unknown vector mode %q", v.Mode)
	}
}

// WriteReport serializes report as indented JSON to path using an
// atomic write: it writes to a temporary file in the same directory,
// flushes and fsyncs it, then renames it into place, so a reader never
// observes a partially written report.
func WriteReport(path string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".report-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp report file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp report file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("fsync temp report file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp report file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename report file into place: %w", err)
	}
	return nil
}
