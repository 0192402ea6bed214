package cli

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/GoArmGo/EmployeeApp/internal/apiclient"
	"github.com/brianvoe/gofakeit"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var departments = []string{
	"Engineering", "Finance", "Human Resources", "Marketing", "Operations", "Sales", "Support",
}

type seedOptions struct {
	Count       int
	Concurrency int
	Seed        int64
}

func newSeedCommand(root *rootOptions) *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create fake employees through the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Count <= 0 {
				return fmt.Errorf("--count must be positive, got %d", opts.Count)
			}
			if opts.Seed != 0 {
				gofakeit.Seed(opts.Seed)
			}

			payloads := make([]apiclient.Payload, opts.Count)
			for i := range payloads {
				payloads[i] = fakeEmployee()
			}

			client := root.client()
			start := time.Now()
			var created atomic.Int64

			wg := errgroup.Group{}
			wg.SetLimit(max(opts.Concurrency, 1))
			for _, p := range payloads {
				wg.Go(func() error {
					if _, err := client.CreateEmployee(cmd.Context(), p); err != nil {
						return fmt.Errorf("create %s %s: %w", p.FirstName, p.LastName, err)
					}
					created.Add(1)
					return nil
				})
			}
			err := wg.Wait()

			fmt.Fprintf(cmd.OutOrStdout(), "created %d of %d employees in %s\n",
				created.Load(), opts.Count, time.Since(start).Round(time.Millisecond))
			return err
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 20, "Number of employees to create")
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "c", 4, "Parallel requests")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Random seed (0 keeps the default source)")
	return cmd
}

func fakeEmployee() apiclient.Payload {
	return apiclient.Payload{
		FirstName:   gofakeit.FirstName(),
		LastName:    gofakeit.LastName(),
		Email:       gofakeit.Email(),
		PhoneNumber: gofakeit.Phone(),
		City:        gofakeit.City(),
		Department:  departments[gofakeit.Number(0, len(departments)-1)],
		Salary:      math.Round(gofakeit.Price(30000, 150000)*100) / 100,
	}
}
