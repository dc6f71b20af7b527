// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/jlaunch/jlaunch/internal/issue"
	"github.com/jlaunch/jlaunch/internal/launcher"
	"github.com/jlaunch/jlaunch/pkg/jvm"
	"github.com/jlaunch/jlaunch/pkg/ports"
	"github.com/jlaunch/jlaunch/pkg/properties"
	"github.com/jlaunch/jlaunch/pkg/types"
)

// defaultStyle is the glamour style used before configuration is loaded.
const defaultStyle = "auto"

// errUsage marks flag values that cannot be turned into a schema.
var errUsage = errors.New("invalid usage")

// classify picks the catalog entry and exit code for err. Errors already
// carrying an issue keep it.
func classify(err error) (issue.Id, types.ExitCode) {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.IssueId != 0 {
		return ae.IssueId, exitCodeFor(err)
	}

	switch {
	case errors.Is(err, ports.ErrNoAvailablePort):
		return issue.PortUnavailableId, types.ExitFailure
	case errors.Is(err, ports.ErrInvalidPortRange):
		return issue.InvalidPortRangeId, types.ExitUsage
	case errors.Is(err, jvm.ErrInvalidOption):
		return issue.InvalidOptionId, types.ExitUsage
	case errors.Is(err, types.ErrInvalidPropertyName), errors.Is(err, properties.ErrUnsupportedValue):
		return issue.InvalidPropertyId, types.ExitUsage
	case errors.Is(err, exec.ErrNotFound):
		return issue.ExecutableNotFoundId, types.ExitFailure
	case errors.Is(err, jvm.ErrInvalidArgument), errors.Is(err, launcher.ErrInvalidSchema):
		return issue.InvalidSchemaId, types.ExitUsage
	}
	return 0, exitCodeFor(err)
}

func exitCodeFor(err error) types.ExitCode {
	if errors.Is(err, errUsage) || errors.Is(err, jvm.ErrInvalidArgument) ||
		errors.Is(err, ports.ErrInvalidPortRange) || errors.Is(err, types.ErrInvalidListenPort) {
		return types.ExitUsage
	}
	return types.ExitFailure
}

// fail reports err on stderr, followed by the matching catalog entry, and
// returns it as an *ExitError.
func (a *App) fail(err error, style string) error {
	id, code := classify(err)
	if style == "" {
		style = defaultStyle
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+ae.Format(a.verbose))
	}
	if i := issue.Get(id); i != nil {
		if rendered, renderErr := i.Render(style); renderErr == nil {
			fmt.Fprint(a.stderr, rendered)
		} else {
			a.Logger.Debug("rendering issue failed", "issue", id, "err", renderErr)
		}
	}

	return &ExitError{Code: code, Err: err}
}
