// Command validate-data checks a cityscout dataset.
//
// Usage:
//
//	go run ./cmd/validate-data
//	go run ./cmd/validate-data --data ./data/cities.yaml
//
// Without --data the dataset embedded in the library is checked.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andreiashu/cityscout"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dataFile string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:           "validate-data",
		Short:         "Validate the cityscout city dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := zap.NewNop()
			if verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("creating logger: %w", err)
				}
				logger = l
			}
			defer logger.Sync() //nolint:errcheck // best-effort flush on exit

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Validating city data...")

			opts := []cityscout.Option{cityscout.WithLogger(logger)}
			if dataFile != "" {
				opts = append(opts, cityscout.WithRequiredDataFile(dataFile))
			}

			report := func(format string, args ...any) {
				fmt.Fprintf(out, "      "+format, args...)
			}
			if err := cityscout.ValidateData(report, opts...); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}

			fmt.Fprintln(out, "City data is valid.")
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "path to a YAML dataset (defaults to the embedded data)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log data loading details")
	return cmd
}
