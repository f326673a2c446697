package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	spiris "github.com/spiris/spiris-go"
	"github.com/spiris/spiris-go/auth"
)

// JSONFormatter outputs in JSON format
type JSONFormatter struct {
	encoder *json.Encoder
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return &JSONFormatter{
		encoder: enc,
	}
}

// FormatCustomers outputs customers in JSON format
func (f *JSONFormatter) FormatCustomers(list *spiris.CustomerList) error {
	return f.encoder.Encode(list)
}

// FormatCustomer outputs a single customer in JSON format
func (f *JSONFormatter) FormatCustomer(customer *spiris.Customer) error {
	return f.encoder.Encode(customer)
}

// FormatInvoices outputs invoices in JSON format
func (f *JSONFormatter) FormatInvoices(list *spiris.InvoiceList) error {
	return f.encoder.Encode(list)
}

// FormatInvoice outputs a single invoice in JSON format
func (f *JSONFormatter) FormatInvoice(invoice *spiris.Invoice) error {
	return f.encoder.Encode(invoice)
}

// FormatArticles outputs articles in JSON format
func (f *JSONFormatter) FormatArticles(list *spiris.ArticleList) error {
	return f.encoder.Encode(list)
}

// FormatArticle outputs a single article in JSON format
func (f *JSONFormatter) FormatArticle(article *spiris.Article) error {
	return f.encoder.Encode(article)
}

// tokenOutput represents token status for JSON output. The token values
// themselves are never printed.
type tokenOutput struct {
	ExpiresAt  string `json:"expires_at"`
	Expired    bool   `json:"expired"`
	CanRefresh bool   `json:"can_refresh"`
}

// FormatToken outputs token status in JSON format
func (f *JSONFormatter) FormatToken(token *auth.Token) error {
	return f.encoder.Encode(tokenOutput{
		ExpiresAt:  token.ExpiresAt.Format(time.RFC3339),
		Expired:    token.Expired(time.Now()),
		CanRefresh: token.CanRefresh(),
	})
}

// deleteResultOutput represents one bulk delete outcome for JSON output
type deleteResultOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// FormatDeleteResults outputs bulk delete outcomes in JSON format
func (f *JSONFormatter) FormatDeleteResults(results []DeleteResult) error {
	out := make([]deleteResultOutput, len(results))
	failed := 0
	for i, r := range results {
		out[i] = deleteResultOutput{
			ID:      r.ID,
			Deleted: r.Err == nil,
		}
		if r.Err != nil {
			failed++
			out[i].Error = r.Err.Error()
		}
	}
	if err := f.encoder.Encode(map[string]interface{}{
		"results": out,
	}); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d deletes failed", failed, len(results))
	}
	return nil
}
