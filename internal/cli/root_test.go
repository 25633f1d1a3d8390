package cli

import (
	"io"
	"testing"

	"github.com/dshills/redline/internal/review"
)

// resetCommandState clears globals mutated by a previous Execute so tests
// stay independent.
func resetCommandState(t *testing.T) {
	t.Helper()
	// Isolate from any real user config.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	exitCode = ExitSuccess
	flagChanged = false
	flagWorkspace = ""
	flagFailOn = "ERROR"
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	t.Cleanup(func() {
		exitCode = ExitSuccess
		flagChanged = false
		flagWorkspace = ""
		rootCmd.SetArgs(nil)
	})
}

func TestRun_RuntimeFailureExitsFour(t *testing.T) {
	resetCommandState(t)
	// --changed outside a git repository fails at runtime, not at parse time.
	rootCmd.SetArgs([]string{"review", "--changed", "--workspace", t.TempDir()})

	if code := Run(); code != ExitRuntimeError {
		t.Errorf("exit code = %d, want %d", code, ExitRuntimeError)
	}
}

func TestRun_UsageErrorExitsTwo(t *testing.T) {
	resetCommandState(t)
	rootCmd.SetArgs([]string{"review"})

	if code := Run(); code != ExitUsageError {
		t.Errorf("exit code = %d, want %d", code, ExitUsageError)
	}
}

func TestRun_UnknownFlagExitsTwo(t *testing.T) {
	resetCommandState(t)
	rootCmd.SetArgs([]string{"review", "--no-such-flag"})

	if code := Run(); code != ExitUsageError {
		t.Errorf("exit code = %d, want %d", code, ExitUsageError)
	}
}

func TestParseFailOn(t *testing.T) {
	sev, err := parseFailOn("warning")
	if err != nil {
		t.Fatalf("parseFailOn: %v", err)
	}
	if sev != review.SeverityWarning {
		t.Errorf("severity = %s, want WARNING", sev)
	}
	if _, err := parseFailOn("bogus"); err == nil {
		t.Error("unknown severity must be rejected, not folded to INFO")
	}
}

func TestMeetsThreshold(t *testing.T) {
	issues := []review.ResolvedIssue{
		{Severity: review.SeverityWarning},
		{Severity: review.SeverityHint},
	}
	if meetsThreshold(issues, review.SeverityError) {
		t.Error("WARNING findings must not fail an ERROR threshold")
	}
	if !meetsThreshold(issues, review.SeverityWarning) {
		t.Error("WARNING findings must fail a WARNING threshold")
	}
	if !meetsThreshold(issues, review.SeverityHint) {
		t.Error("any finding must fail a HINT threshold")
	}
	if meetsThreshold(nil, review.SeverityHint) {
		t.Error("no findings never fails")
	}
}
