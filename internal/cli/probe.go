package cli

import (
	"fmt"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/advisor/internal/personas"
)

type probeOptions struct {
	url      string
	personas string
	workers  int
	timeout  time.Duration
}

func newProbeCommand(root *rootOptions) *cobra.Command {
	opts := &probeOptions{}
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Ask a running service for the advices of every persona",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var now time.Time
			if root.now != "" {
				t, err := root.evaluationTime()
				if err != nil {
					return err
				}
				now = t
			}
			list, err := personas.LoadFile(opts.personas)
			if err != nil {
				return err
			}

			client := personas.NewClient(strings.TrimSuffix(opts.url, "/"), opts.timeout)
			results, err := personas.Probe(cmd.Context(), client, list, now, opts.workers)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PERSONA\tTOOK\tADVICES")
			for _, r := range results {
				ids := make([]string, 0, len(r.Advices))
				for _, a := range r.Advices {
					ids = append(ids, a.AdviceID)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Persona, r.Duration.Round(time.Millisecond), strings.Join(ids, ","))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&opts.url, "url", "u", defaultURL, "base URL of the service")
	cmd.Flags().StringVarP(&opts.personas, "personas", "p", defaultPersonas, "YAML file of personas")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", runtime.NumCPU(), "concurrent requests")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "HTTP request timeout")
	return cmd
}
