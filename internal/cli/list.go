package cli

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ghgrip/internal/domain"
	"ghgrip/internal/github"
	"ghgrip/internal/output"
	"ghgrip/internal/pagination"
)

type listOptions struct {
	sort    string
	pages   int
	all     bool
	format  string
	columns string
}

func newListCmd(a *app) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print your repositories without starting the TUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := a.cfg.SortKey()
			if opts.sort != "" {
				parsed, err := domain.ParseSortKey(opts.sort)
				if err != nil {
					return err
				}
				key = parsed
			}
			if opts.pages < 1 && !opts.all {
				return errors.New("--pages must be at least 1")
			}
			columns := output.ParseColumns(opts.columns)
			if err := output.ValidateColumns(columns); err != nil {
				return err
			}

			limit := opts.pages
			if opts.all {
				limit = 0
			}
			repos, err := collectRepositories(cmd.Context(), a.client(cmd.Context()), key, a.cfg.PageSize, limit, a.cfg.Timeout(), a.log)
			if err != nil {
				return err
			}
			return output.PrintStructured(cmd.OutOrStdout(), "repositories", repos, opts.format, columns)
		},
	}

	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort order: created-asc, created-desc, updated-asc, updated-desc")
	cmd.Flags().IntVar(&opts.pages, "pages", 1, "number of pages to fetch")
	cmd.Flags().BoolVar(&opts.all, "all", false, "fetch every page")
	cmd.Flags().StringVarP(&opts.format, "output", "o", output.FormatPlain, "output format: plain, json, yaml")
	cmd.Flags().StringVar(&opts.columns, "columns", "", "comma separated plain columns (id,name,description,createdAt,updatedAt,url,visibility)")

	return cmd
}

// collectRepositories walks pages through a Session until limit pages were
// applied (0 means no limit) or the list is exhausted.
func collectRepositories(ctx context.Context, api github.API, key domain.SortKey, pageSize, limit int, timeout time.Duration, log logrus.FieldLogger) ([]domain.RepositorySummary, error) {
	session := pagination.NewSession()
	req := session.Start(key)

	pages := 0
	for {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		page, err := api.Repositories(reqCtx, req, pageSize)
		cancel()
		if err != nil {
			session.Fail(req)
			return nil, errors.Wrapf(err, "fetch page %d", pages+1)
		}
		session.Complete(req, page)
		pages++

		log.WithFields(logrus.Fields{
			"page":  pages,
			"items": session.State().Len(),
		}).Debug("applied page")

		if limit > 0 && pages >= limit {
			break
		}
		next, ok := session.LoadMore()
		if !ok {
			st := session.State()
			if st.HasNextPage && st.EndCursor == nil {
				log.Warn("server reported more pages without a cursor, stopping")
			}
			break
		}
		req = next
	}

	return session.State().Items, nil
}
