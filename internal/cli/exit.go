package cli

import (
	"fmt"
	"io"

	"github.com/matzehuels/compgraph/pkg/errors"
)

// Exit statuses returned by [PrintError].
const (
	ExitFailure = 1
	// ExitMismatch reports a scenario that ran but did not meet its
	// expectations.
	ExitMismatch = 2
)

// PrintError writes err to w without error code prefixes and returns the
// exit status for it.
func PrintError(w io.Writer, err error) int {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+errors.UserMessage(err))
	if errors.GetCode(err) == errors.ErrCodeExpectationFailed {
		return ExitMismatch
	}
	return ExitFailure
}
