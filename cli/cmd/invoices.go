package cmd

import (
	"github.com/spf13/cobra"
	spiris "github.com/spiris/spiris-go"

	"github.com/spiris/spiris-go/cli/internal/output"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage customer invoices",
}

var (
	invoicesListOpts  listFlags
	invoicesQueryOpts queryFlags
)

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	Long: `List invoices one page at a time.

Examples:
  # First page
  spiris invoices list

  # Unpaid invoices, newest first
  spiris invoices list --filter "RemainingAmount gt 0" --orderby InvoiceDate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		var list *spiris.InvoiceList
		err = s.Run(cmd.Context(), func(c spiris.Client) error {
			var err error
			if invoicesQueryOpts.set() {
				list, err = c.SearchInvoices(cmd.Context(), invoicesQueryOpts.params(invoicesListOpts))
			} else {
				list, err = c.ListInvoices(cmd.Context(), invoicesListOpts.options())
			}
			return err
		})
		if err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatInvoices(list)
	},
}

var invoicesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single invoice with its rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		var invoice *spiris.Invoice
		err = s.Run(cmd.Context(), func(c spiris.Client) error {
			var err error
			invoice, err = c.GetInvoice(cmd.Context(), args[0])
			return err
		})
		if err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatInvoice(invoice)
	},
}

var invoicesCreateFile string

var invoicesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice from a JSON document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var invoice spiris.Invoice
		if err := readJSONInput(invoicesCreateFile, &invoice); err != nil {
			return err
		}

		s, err := newSession()
		if err != nil {
			return err
		}

		var created *spiris.Invoice
		err = s.Run(cmd.Context(), func(c spiris.Client) error {
			var err error
			created, err = c.CreateInvoice(cmd.Context(), &invoice)
			return err
		})
		if err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatInvoice(created)
	},
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more invoices",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		results, err := runBulkDelete(cmd.Context(), s, args, func(c spiris.Client, id string) error {
			return c.DeleteInvoice(cmd.Context(), id)
		})
		if err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatDeleteResults(results)
	},
}

func init() {
	invoicesListOpts.register(invoicesListCmd)
	invoicesQueryOpts.register(invoicesListCmd)
	invoicesCreateCmd.Flags().StringVar(&invoicesCreateFile, "file", "-", "JSON document ('-' for stdin)")

	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesGetCmd)
	invoicesCmd.AddCommand(invoicesCreateCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)
	rootCmd.AddCommand(invoicesCmd)
}
