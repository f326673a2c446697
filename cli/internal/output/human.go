package output

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	spiris "github.com/spiris/spiris-go"
	"github.com/spiris/spiris-go/auth"
)

const dateFormat = "2006-01-02"

// HumanFormatter outputs in human-readable format with colors
type HumanFormatter struct {
	success *color.Color
	failure *color.Color
	info    *color.Color
	dim     *color.Color
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		info:    color.New(color.FgCyan),
		dim:     color.New(color.Faint),
	}
}

func (f *HumanFormatter) printMeta(meta spiris.Meta) {
	f.dim.Printf("page %d/%d (%d total)\n", meta.CurrentPage, meta.TotalPages, meta.TotalResults)
}

// FormatCustomers outputs customers in human-readable format
func (f *HumanFormatter) FormatCustomers(list *spiris.CustomerList) error {
	for _, c := range list.Data {
		active := ""
		if !c.IsActive {
			active = f.dim.Sprint(" (inactive)")
		}
		fmt.Printf("%s\t%s\t%s%s\n", f.dim.Sprint(c.ID), f.info.Sprint(c.CustomerNumber), c.Name, active)
	}
	f.printMeta(list.Meta)
	return nil
}

// FormatCustomer outputs a single customer in human-readable format
func (f *HumanFormatter) FormatCustomer(customer *spiris.Customer) error {
	fmt.Printf("Id:       %s\n", customer.ID)
	fmt.Printf("Number:   %s\n", customer.CustomerNumber)
	fmt.Printf("Name:     %s\n", customer.Name)
	if customer.Email != "" {
		fmt.Printf("Email:    %s\n", customer.Email)
	}
	if customer.Phone != "" {
		fmt.Printf("Phone:    %s\n", customer.Phone)
	}
	if customer.VatNumber != "" {
		fmt.Printf("VAT:      %s\n", customer.VatNumber)
	}
	if customer.Address != nil {
		a := customer.Address
		fmt.Printf("Address:  %s, %s %s, %s\n", a.Line1, a.PostalCode, a.City, a.CountryCode)
	}
	fmt.Printf("Active:   %t\n", customer.IsActive)
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateFormat)
}

// FormatInvoices outputs invoices in human-readable format
func (f *HumanFormatter) FormatInvoices(list *spiris.InvoiceList) error {
	for _, inv := range list.Data {
		fmt.Printf("%s\t#%d\t%s\t%s %.2f\n",
			f.dim.Sprint(inv.ID),
			inv.InvoiceNumber,
			formatDate(inv.InvoiceDate),
			inv.CurrencyCode,
			inv.TotalAmount)
	}
	f.printMeta(list.Meta)
	return nil
}

// FormatInvoice outputs a single invoice in human-readable format
func (f *HumanFormatter) FormatInvoice(invoice *spiris.Invoice) error {
	fmt.Printf("Id:       %s\n", invoice.ID)
	fmt.Printf("Number:   %d\n", invoice.InvoiceNumber)
	fmt.Printf("Customer: %s", invoice.CustomerID)
	if invoice.CustomerName != "" {
		fmt.Printf(" (%s)", invoice.CustomerName)
	}
	fmt.Println()
	fmt.Printf("Date:     %s\n", formatDate(invoice.InvoiceDate))
	if invoice.DueDate != nil {
		fmt.Printf("Due:      %s\n", formatDate(invoice.DueDate))
	}
	fmt.Printf("Total:    %s %.2f\n", invoice.CurrencyCode, invoice.TotalAmount)
	for _, row := range invoice.Rows {
		fmt.Printf("  %s  %g x %.2f\n", row.Text, row.Quantity, row.UnitPrice)
	}
	return nil
}

// FormatArticles outputs articles in human-readable format
func (f *HumanFormatter) FormatArticles(list *spiris.ArticleList) error {
	for _, a := range list.Data {
		fmt.Printf("%s\t%s\t%s\t%.2f\n", f.dim.Sprint(a.ID), f.info.Sprint(a.ArticleNumber), a.Name, a.UnitPrice)
	}
	f.printMeta(list.Meta)
	return nil
}

// FormatArticle outputs a single article in human-readable format
func (f *HumanFormatter) FormatArticle(article *spiris.Article) error {
	fmt.Printf("Id:       %s\n", article.ID)
	fmt.Printf("Number:   %s\n", article.ArticleNumber)
	fmt.Printf("Name:     %s\n", article.Name)
	fmt.Printf("Net:      %.2f\n", article.UnitPrice)
	fmt.Printf("Gross:    %.2f\n", article.GrossPrice)
	if article.UnitName != "" {
		fmt.Printf("Unit:     %s\n", article.UnitName)
	}
	fmt.Printf("VAT rate: %.1f%%\n", article.VatRatePct)
	fmt.Printf("Active:   %t\n", article.IsActive)
	return nil
}

// FormatToken outputs token status in human-readable format
func (f *HumanFormatter) FormatToken(token *auth.Token) error {
	if token.Expired(time.Now()) {
		f.failure.Printf("✗ Token expired at %s\n", token.ExpiresAt.Format(time.RFC3339))
	} else {
		f.success.Printf("✓ Token valid until %s\n", token.ExpiresAt.Format(time.RFC3339))
	}
	if token.CanRefresh() {
		fmt.Println("  Refresh token present")
	} else {
		f.dim.Println("  No refresh token")
	}
	return nil
}

// FormatDeleteResults outputs bulk delete outcomes in human-readable format
func (f *HumanFormatter) FormatDeleteResults(results []DeleteResult) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			f.failure.Printf("✗ %s: %v\n", r.ID, r.Err)
		} else {
			f.success.Printf("✓ %s\n", r.ID)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d deletes failed", failed, len(results))
	}
	return nil
}
