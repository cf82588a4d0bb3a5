// Package cli implements the advisor command line tool.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/advisor/pkg/logger"
)

// Default flag values.
const (
	defaultPersonas  = "testdata/personas.yaml"
	defaultReference = "testdata/reference.yaml"
	defaultDB        = "advisor.db"
	defaultURL       = "http://localhost:9080"
	defaultTimeout   = 30 * time.Second
)

type rootOptions struct {
	verbose bool
	now     string
}

// NewRootCommand builds the advisor command tree writing its reports to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "advisor-cli",
		Short:         "Inspect and exercise the advice scoring engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			if err := logger.Init(logger.WithOutput(os.Stderr), logger.WithLevel(level)); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&opts.now, "now", "", "evaluation time in RFC3339 (default: current time)")

	root.AddCommand(
		newScoreCommand(opts),
		newImportCommand(),
		newProbeCommand(opts),
	)
	return root
}

// Execute runs the command tree with the process arguments.
func Execute() error {
	return NewRootCommand(os.Stdout).Execute()
}

func (o *rootOptions) evaluationTime() (time.Time, error) {
	if o.now == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, o.now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: %w", o.now, err)
	}
	return t, nil
}
