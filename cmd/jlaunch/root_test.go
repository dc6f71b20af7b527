// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/jlaunch/jlaunch/internal/issue"
	"github.com/jlaunch/jlaunch/pkg/jvm"
	"github.com/jlaunch/jlaunch/pkg/ports"
	"github.com/jlaunch/jlaunch/pkg/types"
)

//nolint:paralleltest // mutates the package-level version variables
func TestGetVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origDate })

	Version = "dev"
	if got := getVersionString(); !strings.Contains(got, "built from source") {
		t.Errorf("getVersionString() = %q, want dev marker", got)
	}

	Version, Commit, BuildDate = "1.2.3", "abc123", "2026-01-01"
	want := "1.2.3 (commit: abc123, built: 2026-01-01)"
	if got := getVersionString(); got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(NewApp(Dependencies{}))
	for _, name := range []string{"render", "config"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("subcommand %q not registered (err: %v)", name, err)
		}
	}
	if root.PersistentFlags().Lookup("verbose") == nil || root.PersistentFlags().Lookup("config") == nil {
		t.Error("persistent flags --verbose and --config missing")
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantId   issue.Id
		wantCode types.ExitCode
	}{
		{"no free port", fmt.Errorf("realize: %w", ports.ErrNoAvailablePort), issue.PortUnavailableId, types.ExitFailure},
		{"bad range", ports.ErrInvalidPortRange, issue.InvalidPortRangeId, types.ExitUsage},
		{"bad option", jvm.ErrInvalidOption, issue.InvalidOptionId, types.ExitUsage},
		{"bad property", types.ErrInvalidPropertyName, issue.InvalidPropertyId, types.ExitUsage},
		{"not found", &exec.Error{Name: "java", Err: exec.ErrNotFound}, issue.ExecutableNotFoundId, types.ExitFailure},
		{"invalid argument", jvm.ErrInvalidArgument, issue.InvalidSchemaId, types.ExitUsage},
		{"usage", fmt.Errorf("%w: bad flag", errUsage), 0, types.ExitUsage},
		{"plain", errors.New("boom"), 0, types.ExitFailure},
		{
			"actionable keeps issue",
			issue.NewErrorContext().WithOperation("load configuration").WithIssue(issue.ConfigLoadFailedId).Wrap(errors.New("x")).BuildError(),
			issue.ConfigLoadFailedId,
			types.ExitFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, code := classify(tt.err)
			if id != tt.wantId {
				t.Errorf("classify() id = %d, want %d", id, tt.wantId)
			}
			if code != tt.wantCode {
				t.Errorf("classify() code = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	e := &ExitError{Code: types.ExitUsage, Err: cause}
	if e.Error() != "cause" {
		t.Errorf("Error() = %q, want %q", e.Error(), "cause")
	}
	if !errors.Is(e, cause) {
		t.Error("ExitError does not unwrap to its cause")
	}
	if got := (&ExitError{Code: 3}).Error(); got != "exit status 3" {
		t.Errorf("Error() = %q, want %q", got, "exit status 3")
	}
}
