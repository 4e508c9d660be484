// Package conformance implements the MAP v1.1 conformance-vector
// executor: given a bundle directory (a manifest, the spec text, a
// vectors file, and an expected-results file), it runs every vector
// through the matching public map1 operation and produces a PASS
// report. The bundle verifier, which checks an executor's report
// against the manifest from an independent trust root, is an external
// collaborator and is not implemented here.
package conformance

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	sha256 "github.com/minio/sha256-simd"
)

// Vector is one conformance test case.
type Vector struct {
	TestID   string   `json:"test_id"`
	Mode     string   `json:"mode"` // json_strict_full | json_strict_bind | canon_bytes
	InputB64 string   `json:"input_b64"`
	Pointers []string `json:"pointers,omitempty"`
}

// ExpectedResult is the expected outcome of one vector: either a MID
// or an error code, never both.
type ExpectedResult struct {
	MID string `json:"mid,omitempty"`
	Err string `json:"err,omitempty"`
}

// Bundle is a loaded conformance bundle.
type Bundle struct {
	Dir      string
	Vectors  []Vector
	Expected map[string]ExpectedResult
	// ManifestSHA256 is the hex-encoded SHA-256 digest of the bundle's
	// manifest.sha256 file itself (the digest of the per-file digests),
	// carried through to Report.BundleSHA256 so a report is traceable
	// back to the exact bundle it was run against.
	ManifestSHA256 string
}

const (
	vectorsFileName  = "vectors.json"
	expectedFileName = "expected.json"
	manifestFileName = "manifest.sha256"
)

// Load reads vectors.json, expected.json, and manifest.sha256 from dir.
func Load(dir string) (*Bundle, error) {
	vectorsPath := filepath.Join(dir, vectorsFileName)
	vectorsBytes, err := os.ReadFile(vectorsPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", vectorsFileName, err)
	}
	var vectors []Vector
	if err := json.Unmarshal(vectorsBytes, &vectors); err != nil {
		return nil, fmt.Errorf("decode %s: %w", vectorsFileName, err)
	}

	expectedPath := filepath.Join(dir, expectedFileName)
	expectedBytes, err := os.ReadFile(expectedPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", expectedFileName, err)
	}
	var expected map[string]ExpectedResult
	if err := json.Unmarshal(expectedBytes, &expected); err != nil {
		return nil, fmt.Errorf("decode %s: %w", expectedFileName, err)
	}

	manifestPath := filepath.Join(dir, manifestFileName)
	manifestBytes, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", manifestFileName, err)
	}
	sum := sha256.Sum256(manifestBytes)

	return &Bundle{
		Dir:            dir,
		Vectors:        vectors,
		Expected:       expected,
		ManifestSHA256: hex.EncodeToString(sum[:]),
	}, nil
}
