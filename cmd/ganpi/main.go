package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/ganpi-go/internal/domain"
	"github.com/doeshing/ganpi-go/internal/infrastructure/cli"
)

func main() {
	os.Exit(run())
}

// Exit statuses for runs that ended without executing anything.
const (
	exitNoSafeCommand = 2
	exitBlocked       = 3
)

func run() int {
	ctx := context.Background()
	root, env := cli.NewRootCmd(cli.Options{Verbose: isVerbose()})
	defer env.Close()

	err := root.ExecuteContext(ctx)
	status, rendered := exitStatus(err)
	if !rendered {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return status
}

// exitStatus maps a command error to the process status. rendered reports
// whether the command already showed the failure to the user.
func exitStatus(err error) (status int, rendered bool) {
	if err == nil {
		return 0, true
	}
	var execErr *domain.ExecutionFailedError
	switch {
	case errors.As(err, &execErr):
		if execErr.ExitStatus > 0 {
			return execErr.ExitStatus, true
		}
		return 1, true
	case errors.Is(err, domain.ErrClassifierVoid):
		return exitBlocked, true
	case errors.Is(err, domain.ErrNoSafeCommand):
		return exitNoSafeCommand, true
	}
	return 1, false
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("GANPI_DEBUG"), "1") || strings.EqualFold(os.Getenv("GANPI_DEBUG"), "true")
}
