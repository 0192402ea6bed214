package cli

import (
	"fmt"

	"github.com/GoArmGo/EmployeeApp/internal/di"
	"github.com/spf13/cobra"
)

func newServeCommand(mode, short string) *cobra.Command {
	return &cobra.Command{
		Use:   mode,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := di.BuildApp()
			if err != nil {
				return fmt.Errorf("failed to build app: %w", err)
			}

			log := application.LoggerIns()
			if err := application.Run(cmd.Context(), mode); err != nil {
				log.Error("application run failed", "error", err)
				return err
			}

			log.Info("application stopped gracefully")
			return nil
		},
	}
}
