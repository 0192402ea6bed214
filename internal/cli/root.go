// Package cli — команды командной строки: запуск сервиса и воркера,
// наполнение тестовыми данными и терминальный интерфейс к API.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/GoArmGo/EmployeeApp/internal/apiclient"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	APIURL string
}

// NewRootCommand собирает дерево команд.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "employees",
		Short:         "Employee record manager: REST API, event worker and terminal client.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.APIURL, "api", apiclient.DefaultBaseURL, "Base URL of the employees API")

	rootCmd.AddCommand(
		newServeCommand("server", "Run the HTTP API and the schema bootstrap"),
		newServeCommand("worker", "Consume employee change events from RabbitMQ"),
		newSeedCommand(opts),
		newListCommand(opts),
		newAddCommand(opts),
		newEditCommand(opts),
		newDeleteCommand(opts),
	)
	return rootCmd
}

// Execute запускает корневую команду.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, stdin io.Reader) error {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(stdin)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return err
	}
	return nil
}

func (o *rootOptions) client() *apiclient.Client {
	return apiclient.New(o.APIURL, nil)
}
