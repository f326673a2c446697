package spiris

import (
	"context"
	"net/http"
	"time"
)

// InvoiceRow is one line of an invoice.
type InvoiceRow struct {
	ArticleID   string  `json:"ArticleId,omitempty"`
	Text        string  `json:"Text,omitempty"`
	UnitPrice   float64 `json:"UnitPrice,omitempty"`
	Quantity    float64 `json:"Quantity,omitempty"`
	DiscountPct float64 `json:"DiscountPercentage,omitempty"`
	VatRatePct  float64 `json:"VatRatePercent,omitempty"`
}

// Invoice is a customer invoice with its rows.
type Invoice struct {
	ID            string       `json:"Id,omitempty"`
	InvoiceNumber int          `json:"InvoiceNumber,omitempty"`
	CustomerID    string       `json:"CustomerId,omitempty"`
	CustomerName  string       `json:"InvoiceCustomerName,omitempty"`
	InvoiceDate   *time.Time   `json:"InvoiceDate,omitempty"`
	DueDate       *time.Time   `json:"DueDate,omitempty"`
	Rows          []InvoiceRow `json:"Rows,omitempty"`
	CurrencyCode  string       `json:"CurrencyCode,omitempty"`
	TotalAmount   float64      `json:"TotalAmount,omitempty"`
	TotalVat      float64      `json:"TotalVatAmount,omitempty"`
	RemainsToPay  float64      `json:"RemainingAmount,omitempty"`
}

// InvoiceList is one page of invoices.
type InvoiceList struct {
	Meta Meta      `json:"Meta"`
	Data []Invoice `json:"Data"`
}

// ListInvoices returns one page of invoices.
func (c *httpClient) ListInvoices(ctx context.Context, opts *ListOptions) (*InvoiceList, error) {
	var out InvoiceList
	if err := c.do(ctx, http.MethodGet, opts.values(), nil, &out, "invoices"); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchInvoices returns the invoices matching the given query.
func (c *httpClient) SearchInvoices(ctx context.Context, params *QueryParams) (*InvoiceList, error) {
	var out InvoiceList
	if err := c.do(ctx, http.MethodGet, params.values(), nil, &out, "invoices"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInvoice returns a single invoice by ID.
func (c *httpClient) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	var out Invoice
	if err := c.do(ctx, http.MethodGet, nil, nil, &out, "invoices", id); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateInvoice creates an invoice and returns the stored representation,
// including the server-assigned ID, number and computed totals.
func (c *httpClient) CreateInvoice(ctx context.Context, invoice *Invoice) (*Invoice, error) {
	var out Invoice
	if err := c.do(ctx, http.MethodPost, nil, invoice, &out, "invoices"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInvoice replaces an invoice and returns the stored representation.
func (c *httpClient) UpdateInvoice(ctx context.Context, id string, invoice *Invoice) (*Invoice, error) {
	var out Invoice
	if err := c.do(ctx, http.MethodPut, nil, invoice, &out, "invoices", id); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInvoice deletes an invoice by ID.
func (c *httpClient) DeleteInvoice(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, nil, nil, nil, "invoices", id)
}
