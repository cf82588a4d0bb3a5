package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	app "github.com/okian/advisor/internal/app"
	"github.com/okian/advisor/internal/personas"
)

type scoreOptions struct {
	personas  string
	reference string
	models    []string
}

func newScoreCommand(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score every persona against the scoring models",
		Long: `Load the reference data in memory and print a table with one row per
persona and one column per scoring model.

	Examples:
	  advisor-cli score
	  advisor-cli score --model advice-vae --model "constant(2)" --now 2026-07-15T12:00:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now, err := root.evaluationTime()
			if err != nil {
				return err
			}
			list, err := personas.LoadFile(opts.personas)
			if err != nil {
				return err
			}

			svc := app.New(app.WithFixtures(opts.reference))
			if err := svc.Start(cmd.Context()); err != nil {
				return err
			}
			defer svc.Stop()

			models := opts.models
			if len(models) == 0 {
				models = svc.Models()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "PERSONA\t%s\n", strings.Join(models, "\t"))
			for _, p := range list {
				cells := make([]string, 0, len(models))
				for _, id := range models {
					res, err := svc.Score(cmd.Context(), id, p.User, now)
					if err != nil {
						return fmt.Errorf("persona %q: %w", p.Name, err)
					}
					cells = append(cells, strconv.FormatFloat(res.Score, 'g', -1, 64))
				}
				fmt.Fprintf(w, "%s\t%s\n", p.Name, strings.Join(cells, "\t"))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&opts.personas, "personas", "p", defaultPersonas, "YAML file of personas")
	cmd.Flags().StringVarP(&opts.reference, "reference", "r", defaultReference, "YAML reference fixtures")
	cmd.Flags().StringArrayVarP(&opts.models, "model", "m", nil, "scoring model to run (repeatable, default: all)")
	return cmd
}
