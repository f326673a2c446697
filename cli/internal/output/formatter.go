package output

import (
	spiris "github.com/spiris/spiris-go"
	"github.com/spiris/spiris-go/auth"
)

// DeleteResult is the per-ID outcome of a bulk delete.
type DeleteResult struct {
	ID  string
	Err error
}

// Formatter defines the interface for different output formats
type Formatter interface {
	// FormatCustomers outputs a page of customers
	FormatCustomers(list *spiris.CustomerList) error

	// FormatCustomer outputs a single customer
	FormatCustomer(customer *spiris.Customer) error

	// FormatInvoices outputs a page of invoices
	FormatInvoices(list *spiris.InvoiceList) error

	// FormatInvoice outputs a single invoice
	FormatInvoice(invoice *spiris.Invoice) error

	// FormatArticles outputs a page of articles
	FormatArticles(list *spiris.ArticleList) error

	// FormatArticle outputs a single article
	FormatArticle(article *spiris.Article) error

	// FormatToken outputs token status
	FormatToken(token *auth.Token) error

	// FormatDeleteResults outputs per-ID bulk delete outcomes
	FormatDeleteResults(results []DeleteResult) error
}

// Get returns the appropriate formatter based on format type
func Get(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewHumanFormatter()
	}
}
