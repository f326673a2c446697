package cmd

import (
	"github.com/spf13/cobra"
	spiris "github.com/spiris/spiris-go"

	"github.com/spiris/spiris-go/cli/internal/output"
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Manage articles",
}

var (
	articlesListOpts  listFlags
	articlesQueryOpts queryFlags
)

var articlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		var list *spiris.ArticleList
		err = s.Run(cmd.Context(), func(c spiris.Client) error {
			var err error
			if articlesQueryOpts.set() {
				list, err = c.SearchArticles(cmd.Context(), articlesQueryOpts.params(articlesListOpts))
			} else {
				list, err = c.ListArticles(cmd.Context(), articlesListOpts.options())
			}
			return err
		})
		if err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatArticles(list)
	},
}

var articlesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		var article *spiris.Article
		err = s.Run(cmd.Context(), func(c spiris.Client) error {
			var err error
			article, err = c.GetArticle(cmd.Context(), args[0])
			return err
		})
		if err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatArticle(article)
	},
}

var articlesCreateFile string

var articlesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an article from a JSON document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var article spiris.Article
		if err := readJSONInput(articlesCreateFile, &article); err != nil {
			return err
		}

		s, err := newSession()
		if err != nil {
			return err
		}

		var created *spiris.Article
		err = s.Run(cmd.Context(), func(c spiris.Client) error {
			var err error
			created, err = c.CreateArticle(cmd.Context(), &article)
			return err
		})
		if err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatArticle(created)
	},
}

var articlesDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more articles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		results, err := runBulkDelete(cmd.Context(), s, args, func(c spiris.Client, id string) error {
			return c.DeleteArticle(cmd.Context(), id)
		})
		if err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatDeleteResults(results)
	},
}

func init() {
	articlesListOpts.register(articlesListCmd)
	articlesQueryOpts.register(articlesListCmd)
	articlesCreateCmd.Flags().StringVar(&articlesCreateFile, "file", "-", "JSON document ('-' for stdin)")

	articlesCmd.AddCommand(articlesListCmd)
	articlesCmd.AddCommand(articlesGetCmd)
	articlesCmd.AddCommand(articlesCreateCmd)
	articlesCmd.AddCommand(articlesDeleteCmd)
	rootCmd.AddCommand(articlesCmd)
}
