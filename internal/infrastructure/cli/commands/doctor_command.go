package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			report, err := c.DoctorService.Run(cmd.Context())
			// Display report even if there were errors
			env.Renderer.Doctor(report)
			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			if report.Failed() {
				return errors.New(errDoctorFailed)
			}
			return nil
		},
	}
}
