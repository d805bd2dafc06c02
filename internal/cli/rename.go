package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"ghgrip/internal/domain"
	"ghgrip/internal/output"
)

// renamedRepository is what rename prints in structured formats
type renamedRepository struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func newRenameCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rename <repository-id> <new-name>",
		Short: "Rename a repository by its node ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Timeout())
			defer cancel()

			repo, err := a.client(ctx).RenameRepository(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			a.log.WithField("id", repo.ID).WithField("name", repo.Name).Info("repository renamed")

			w := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case output.FormatPlain, "":
				return output.PrintRepositories(w, []domain.RepositorySummary{repo}, []string{"id", "name"})
			default:
				return output.PrintStructured(w, "repository", renamedRepository{ID: repo.ID, Name: repo.Name}, format, nil)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", output.FormatPlain, "output format: plain, json, yaml")

	return cmd
}
