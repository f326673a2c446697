package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	spiris "github.com/spiris/spiris-go"
	"golang.org/x/sync/errgroup"

	"github.com/spiris/spiris-go/cli/internal/output"
	"github.com/spiris/spiris-go/cli/internal/session"
)

// bulkDeleteConcurrency caps in-flight deletes so many-ID invocations do
// not trip server rate limits.
const bulkDeleteConcurrency = 4

// listFlags holds the shared pagination flags of list commands.
type listFlags struct {
	page     int
	pageSize int
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 0, "Page number to fetch")
	cmd.Flags().IntVar(&f.pageSize, "pagesize", 0, "Results per page")
}

func (f *listFlags) options() *spiris.ListOptions {
	return &spiris.ListOptions{
		Page:     f.page,
		PageSize: f.pageSize,
	}
}

// queryFlags holds the shared server-side query flags of list commands.
type queryFlags struct {
	filter  string
	selects string
	orderBy string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.filter, "filter", "", "Server-side filter expression")
	cmd.Flags().StringVar(&f.selects, "select", "", "Comma-separated fields to return")
	cmd.Flags().StringVar(&f.orderBy, "orderby", "", "Field to order results by")
}

func (f *queryFlags) set() bool {
	return f.filter != "" || f.selects != "" || f.orderBy != ""
}

func (f *queryFlags) params(list listFlags) *spiris.QueryParams {
	return &spiris.QueryParams{
		Filter:   f.filter,
		Select:   f.selects,
		OrderBy:  f.orderBy,
		Page:     list.page,
		PageSize: list.pageSize,
	}
}

// readJSONInput decodes a JSON document from the given file, or from stdin
// when the name is '-'.
func readJSONInput(name string, out any) error {
	var r io.Reader
	if name == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding input document: %w", err)
	}
	return nil
}

// runBulkDelete deletes the given IDs concurrently and reports each outcome
// individually. The token is refreshed up front when already expired so the
// concurrent calls do not race on a credential swap.
func runBulkDelete(ctx context.Context, s *session.Session, ids []string, del func(spiris.Client, string) error) ([]output.DeleteResult, error) {
	if tok := s.Client.Token(); tok == nil || tok.Expired(time.Now()) {
		if err := s.RefreshToken(ctx); err != nil {
			return nil, err
		}
	}

	results := make([]output.DeleteResult, len(ids))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(bulkDeleteConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			results[i] = output.DeleteResult{
				ID:  id,
				Err: del(s.Client, id),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
