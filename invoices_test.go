package spiris

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiris/spiris-go/testutil"
)

const invoicePage = `{
	"Meta":{"CurrentPage":1,"PageSize":50,"TotalNumberOfPages":1,"TotalNumberOfResults":1},
	"Data":[
		{"Id":"i1","InvoiceNumber":10042,"CustomerId":"c1","CurrencyCode":"SEK","TotalAmount":12500.0,
		 "Rows":[{"Text":"Consulting services","UnitPrice":1000.0,"Quantity":10.0,"VatRatePercent":25.0}]}
	]
}`

func TestListInvoices(t *testing.T) {
	t.Parallel()

	srv := testutil.NewServer(t, testutil.Response{Body: invoicePage})
	c := newTestClient(t, srv)

	list, err := c.ListInvoices(context.Background(), &ListOptions{PageSize: 50})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	require.Equal(t, 10042, list.Data[0].InvoiceNumber)
	require.Len(t, list.Data[0].Rows, 1)
	require.InDelta(t, 1000.0, list.Data[0].Rows[0].UnitPrice, 0.001)

	req := srv.LastRequest()
	require.Equal(t, "/invoices", req.Path)
	require.Equal(t, "50", req.Query.Get("pagesize"))
}

func TestSearchInvoices(t *testing.T) {
	t.Parallel()

	srv := testutil.NewServer(t, testutil.Response{Body: invoicePage})
	c := newTestClient(t, srv)

	_, err := c.SearchInvoices(context.Background(), &QueryParams{Filter: "RemainingAmount gt 0"})
	require.NoError(t, err)
	require.Equal(t, "RemainingAmount gt 0", srv.LastRequest().Query.Get("$filter"))
}

func TestCreateInvoice(t *testing.T) {
	t.Parallel()

	srv := testutil.NewServer(t, testutil.Response{
		Status: http.StatusCreated,
		Body:   `{"Id":"i2","InvoiceNumber":10043,"CustomerId":"c1","TotalAmount":10000.0}`,
	})
	c := newTestClient(t, srv)

	created, err := c.CreateInvoice(context.Background(), &Invoice{
		CustomerID: "c1",
		Rows: []InvoiceRow{
			{Text: "Consulting services", UnitPrice: 1000.0, Quantity: 10.0},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 10043, created.InvoiceNumber)

	req := srv.LastRequest()
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/invoices", req.Path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	require.Equal(t, "c1", sent["CustomerId"])
	rows, ok := sent["Rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
}

func TestGetUpdateDeleteInvoice(t *testing.T) {
	t.Parallel()

	srv := testutil.NewServer(t,
		testutil.Response{Body: `{"Id":"i1","InvoiceNumber":10042}`},
		testutil.Response{Body: `{"Id":"i1","InvoiceNumber":10042,"CurrencyCode":"EUR"}`},
		testutil.Response{Status: http.StatusNoContent},
	)
	c := newTestClient(t, srv)
	ctx := context.Background()

	got, err := c.GetInvoice(ctx, "i1")
	require.NoError(t, err)
	require.Equal(t, 10042, got.InvoiceNumber)

	updated, err := c.UpdateInvoice(ctx, "i1", &Invoice{CurrencyCode: "EUR"})
	require.NoError(t, err)
	require.Equal(t, "EUR", updated.CurrencyCode)

	require.NoError(t, c.DeleteInvoice(ctx, "i1"))

	reqs := srv.Requests()
	require.Len(t, reqs, 3)
	require.Equal(t, http.MethodGet, reqs[0].Method)
	require.Equal(t, http.MethodPut, reqs[1].Method)
	require.Equal(t, http.MethodDelete, reqs[2].Method)
	require.Equal(t, "/invoices/i1", reqs[2].Path)
}
