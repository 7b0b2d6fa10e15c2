// Package cli wires the cobra command tree.
package cli

import (
	"github.com/stocklens/stocklens/core/cli/cmd"
	"github.com/stocklens/stocklens/core/infrastructure/logging"
)

// Execute runs the CLI
func Execute() error {
	if err := cmd.Execute(); err != nil {
		logging.New("cli").Error(err.Error())
		return err
	}
	return nil
}
