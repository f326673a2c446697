package spiris

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spiris/spiris-go/testutil"
)

const customerPage = `{
	"Meta":{"CurrentPage":2,"PageSize":50,"TotalNumberOfPages":3,"TotalNumberOfResults":120},
	"Data":[
		{"Id":"c1","Name":"Acme Corporation","EmailAddress":"contact@acme.com","IsActive":true},
		{"Id":"c2","Name":"Globex","CustomerNumber":"1002"}
	]
}`

func TestListCustomers(t *testing.T) {
	t.Parallel()

	srv := testutil.NewServer(t, testutil.Response{Body: customerPage})
	c := newTestClient(t, srv)

	list, err := c.ListCustomers(context.Background(), &ListOptions{Page: 2, PageSize: 50})
	require.NoError(t, err)
	require.Equal(t, 2, list.Meta.CurrentPage)
	require.Equal(t, 120, list.Meta.TotalResults)
	require.Len(t, list.Data, 2)
	require.Equal(t, "Acme Corporation", list.Data[0].Name)

	req := srv.LastRequest()
	require.Equal(t, http.MethodGet, req.Method)
	require.Equal(t, "/customers", req.Path)
	require.Equal(t, "2", req.Query.Get("page"))
	require.Equal(t, "50", req.Query.Get("pagesize"))
}

func TestListCustomers_NilOptions(t *testing.T) {
	t.Parallel()

	srv := testutil.NewServer(t, testutil.Response{Body: customerPage})
	c := newTestClient(t, srv)

	_, err := c.ListCustomers(context.Background(), nil)
	require.NoError(t, err)

	req := srv.LastRequest()
	require.Empty(t, req.Query)
}

func TestSearchCustomers(t *testing.T) {
	t.Parallel()

	srv := testutil.NewServer(t, testutil.Response{Body: customerPage})
	c := newTestClient(t, srv)

	_, err := c.SearchCustomers(context.Background(), &QueryParams{
		Filter:   "IsActive eq true",
		Select:   "Id,Name",
		OrderBy:  "Name",
		PageSize: 10,
	})
	require.NoError(t, err)

	req := srv.LastRequest()
	require.Equal(t, "/customers", req.Path)
	require.Equal(t, "IsActive eq true", req.Query.Get("$filter"))
	require.Equal(t, "Id,Name", req.Query.Get("$select"))
	require.Equal(t, "Name", req.Query.Get("$orderby"))
	require.Equal(t, "10", req.Query.Get("pagesize"))
}

func TestGetCustomer(t *testing.T) {
	t.Parallel()

	srv := testutil.NewServer(t, testutil.Response{Body: `{"Id":"c1","Name":"Acme Corporation"}`})
	c := newTestClient(t, srv)

	customer, err := c.GetCustomer(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, "c1", customer.ID)
	require.Equal(t, "Acme Corporation", customer.Name)

	req := srv.LastRequest()
	require.Equal(t, http.MethodGet, req.Method)
	require.Equal(t, "/customers/c1", req.Path)
}

func TestCreateCustomer(t *testing.T) {
	t.Parallel()

	srv := testutil.NewServer(t, testutil.Response{
		Status: http.StatusCreated,
		Body:   `{"Id":"generated","CustomerNumber":"1003","Name":"Acme Corporation"}`,
	})
	c := newTestClient(t, srv)

	created, err := c.CreateCustomer(context.Background(), &Customer{
		Name:     "Acme Corporation",
		Email:    "contact@acme.com",
		IsActive: true,
	})
	require.NoError(t, err)
	require.Equal(t, "generated", created.ID)
	require.Equal(t, "1003", created.CustomerNumber)

	req := srv.LastRequest()
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/customers", req.Path)
	require.Equal(t, "application/json", req.Header.Get("Content-Type"))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	require.Equal(t, "Acme Corporation", sent["Name"])
	require.Equal(t, "contact@acme.com", sent["EmailAddress"])
	require.NotContains(t, sent, "Id", "zero fields must be omitted")
}

func TestUpdateCustomer(t *testing.T) {
	t.Parallel()

	srv := testutil.NewServer(t, testutil.Response{Body: `{"Id":"c1","Name":"Renamed"}`})
	c := newTestClient(t, srv)

	updated, err := c.UpdateCustomer(context.Background(), "c1", &Customer{Name: "Renamed"})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)

	req := srv.LastRequest()
	require.Equal(t, http.MethodPut, req.Method)
	require.Equal(t, "/customers/c1", req.Path)
}

func TestDeleteCustomer(t *testing.T) {
	t.Parallel()

	srv := testutil.NewServer(t, testutil.Response{Status: http.StatusNoContent})
	c := newTestClient(t, srv)

	require.NoError(t, c.DeleteCustomer(context.Background(), "c1"))

	req := srv.LastRequest()
	require.Equal(t, http.MethodDelete, req.Method)
	require.Equal(t, "/customers/c1", req.Path)
	require.Empty(t, req.Body)
}

func TestGetCustomer_NotFound(t *testing.T) {
	t.Parallel()

	srv := testutil.NewServer(t, testutil.Response{Status: http.StatusNotFound})
	c := newTestClient(t, srv)

	_, err := c.GetCustomer(context.Background(), "missing")
	require.ErrorIs(t, err, ErrPermanent)

	var pErr *PermanentError
	require.ErrorAs(t, err, &pErr)
	require.Equal(t, http.StatusNotFound, pErr.StatusCode)
	require.Equal(t, 1, srv.RequestCount())
}
