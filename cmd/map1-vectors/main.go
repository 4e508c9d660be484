// Command map1-vectors runs a MAP v1.1 conformance bundle against this
// implementation and reports pass/fail per vector.
//
// Usage:
//
//	map1-vectors run [--profile file.yaml] [--out report.json] <bundle-dir>
//	map1-vectors version
//
// Exit codes:
//
//	0  all vectors passed
//	1  one or more vectors failed (report was still written)
//	2  usage error (bad flags)
//	10 bundle could not be loaded (bad manifest, unreadable files)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lattice-substrate/map1/conformance"
)

const (
	exitSuccess       = 0
	exitVectorsFailed = 1
	exitUsage         = 2
	exitBundleLoad    = 10
)

// buildVersion is the version string reported by "map1-vectors version".
// Overridden at release time with -ldflags; "dev" otherwise.
var buildVersion = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run builds and executes the cobra command tree against args, writing
// to stdout/stderr, and returns the process exit code. Split out from
// main so tests can drive the CLI without a subprocess.
func run(args []string, stdout, stderr io.Writer) int {
	var (
		profilePath string
		outPath     string
	)

	root := &cobra.Command{
		Use:   "map1-vectors",
		Short: "Run a MAP v1.1 conformance bundle",
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	runCmd := &cobra.Command{
		Use:   "run <bundle-dir>",
		Short: "Run every vector in a conformance bundle and report pass/fail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdRun(cmd, args[0], profilePath, outPath)
		},
		SilenceUsage: true,
	}
	runCmd.Flags().StringVar(&profilePath, "profile", "", "optional YAML file with run metadata")
	runCmd.Flags().StringVar(&outPath, "out", "", "report output path (default: <bundle-dir>/report.json)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the map1-vectors version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), buildVersion)
			return nil
		},
	}

	root.AddCommand(runCmd, versionCmd)
	root.SilenceErrors = true
	root.SilenceUsage = true

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if ce, ok := err.(*cliError); ok {
			return ce.code
		}
		return exitUsage
	}
	return exitSuccess
}

// cliError carries a specific process exit code through cobra's error path.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }

func cmdRun(cmd *cobra.Command, bundleDir, profilePath, outPath string) error {
	profile, err := loadProfile(profilePath)
	if err != nil {
		return &cliError{code: exitUsage, err: fmt.Errorf("loading profile: %w", err)}
	}

	bundle, err := conformance.Load(bundleDir)
	if err != nil {
		return &cliError{code: exitBundleLoad, err: fmt.Errorf("loading bundle: %w", err)}
	}

	implName := profile.ImplementationName
	if implName == "" {
		implName = "map1-go"
	}

	report, err := conformance.Run(bundle, implName)
	if err != nil {
		return &cliError{code: exitBundleLoad, err: fmt.Errorf("running bundle: %w", err)}
	}

	reportPath := outPath
	if reportPath == "" {
		reportPath = profile.OutputPath
	}
	if reportPath == "" {
		reportPath = bundleDir + "/report.json"
	}
	if err := conformance.WriteReport(reportPath, report); err != nil {
		return &cliError{code: exitBundleLoad, err: fmt.Errorf("writing report: %w", err)}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d/%d vectors passed\n", report.PassedVectors, report.TotalVectors)
	for _, entry := range report.Entries {
		if !entry.Pass {
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: got %q want %q\n", entry.TestID, entry.Got, entry.Want)
			if profile.FailFast {
				break
			}
		}
	}

	if report.PassedVectors != report.TotalVectors {
		return &cliError{code: exitVectorsFailed, err: fmt.Errorf("%d vector(s) failed", report.TotalVectors-report.PassedVectors)}
	}
	return nil
}
