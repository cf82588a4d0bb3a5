package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/okian/advisor/internal/adapters/repository"
)

type importOptions struct {
	reference string
	db        string
}

func newImportCommand() *cobra.Command {
	opts := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Seed a SQLite reference database from YAML fixtures",
		Long: `Write every document of the fixtures file into the SQLite database so the
service can run with ADVISOR_REFERENCE_DRIVER=sqlite. Existing documents with
the same key are replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := repository.OpenSQLite(cmd.Context(), opts.db)
			if err != nil {
				return err
			}
			defer store.Close()

			counts, err := repository.LoadYAML(cmd.Context(), opts.reference, store)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range slices.Sorted(maps.Keys(counts)) {
				fmt.Fprintf(out, "%s: %d\n", name, counts[name])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.reference, "reference", "r", defaultReference, "YAML reference fixtures")
	cmd.Flags().StringVar(&opts.db, "db", defaultDB, "SQLite database path")
	return cmd
}
