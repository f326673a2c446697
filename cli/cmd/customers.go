package cmd

import (
	"github.com/spf13/cobra"
	spiris "github.com/spiris/spiris-go"

	"github.com/spiris/spiris-go/cli/internal/output"
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Manage customers",
}

var (
	customersListOpts  listFlags
	customersQueryOpts queryFlags
)

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	Long: `List customers one page at a time.

Examples:
  # First page
  spiris customers list

  # Third page, 50 per page
  spiris customers list --page 3 --pagesize 50

  # Server-side filtering
  spiris customers list --filter "IsActive eq true" --orderby Name`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		var list *spiris.CustomerList
		err = s.Run(cmd.Context(), func(c spiris.Client) error {
			var err error
			if customersQueryOpts.set() {
				list, err = c.SearchCustomers(cmd.Context(), customersQueryOpts.params(customersListOpts))
			} else {
				list, err = c.ListCustomers(cmd.Context(), customersListOpts.options())
			}
			return err
		})
		if err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatCustomers(list)
	},
}

var customersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		var customer *spiris.Customer
		err = s.Run(cmd.Context(), func(c spiris.Client) error {
			var err error
			customer, err = c.GetCustomer(cmd.Context(), args[0])
			return err
		})
		if err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatCustomer(customer)
	},
}

var customersCreateFile string

var customersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a customer from a JSON document",
	Long: `Create a customer. The document is read from --file, or from stdin
when --file is '-'.

Example:
  spiris customers create --file customer.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var customer spiris.Customer
		if err := readJSONInput(customersCreateFile, &customer); err != nil {
			return err
		}

		s, err := newSession()
		if err != nil {
			return err
		}

		var created *spiris.Customer
		err = s.Run(cmd.Context(), func(c spiris.Client) error {
			var err error
			created, err = c.CreateCustomer(cmd.Context(), &customer)
			return err
		})
		if err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatCustomer(created)
	},
}

var customersUpdateFile string

var customersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a customer from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var customer spiris.Customer
		if err := readJSONInput(customersUpdateFile, &customer); err != nil {
			return err
		}

		s, err := newSession()
		if err != nil {
			return err
		}

		var updated *spiris.Customer
		err = s.Run(cmd.Context(), func(c spiris.Client) error {
			var err error
			updated, err = c.UpdateCustomer(cmd.Context(), args[0], &customer)
			return err
		})
		if err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatCustomer(updated)
	},
}

var customersDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more customers",
	Long: `Delete customers by ID. Multiple IDs are deleted concurrently and
each outcome is reported individually.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		results, err := runBulkDelete(cmd.Context(), s, args, func(c spiris.Client, id string) error {
			return c.DeleteCustomer(cmd.Context(), id)
		})
		if err != nil {
			return err
		}

		formatter := output.Get(getOutputFormat())
		return formatter.FormatDeleteResults(results)
	},
}

func init() {
	customersListOpts.register(customersListCmd)
	customersQueryOpts.register(customersListCmd)
	customersCreateCmd.Flags().StringVar(&customersCreateFile, "file", "-", "JSON document ('-' for stdin)")
	customersUpdateCmd.Flags().StringVar(&customersUpdateFile, "file", "-", "JSON document ('-' for stdin)")

	customersCmd.AddCommand(customersListCmd)
	customersCmd.AddCommand(customersGetCmd)
	customersCmd.AddCommand(customersCreateCmd)
	customersCmd.AddCommand(customersUpdateCmd)
	customersCmd.AddCommand(customersDeleteCmd)
	rootCmd.AddCommand(customersCmd)
}
