package spiris

import (
	"context"
	"net/http"
)

// Customer is a party invoices are issued to.
type Customer struct {
	ID             string   `json:"Id,omitempty"`
	CustomerNumber string   `json:"CustomerNumber,omitempty"`
	Name           string   `json:"Name,omitempty"`
	Email          string   `json:"EmailAddress,omitempty"`
	Phone          string   `json:"Phone,omitempty"`
	Website        string   `json:"WebsiteAddress,omitempty"`
	OrgNumber      string   `json:"CorporateIdentityNumber,omitempty"`
	VatNumber      string   `json:"VatNumber,omitempty"`
	Address        *Address `json:"InvoiceAddress,omitempty"`
	IsPrivate      bool     `json:"IsPrivatePerson,omitempty"`
	IsActive       bool     `json:"IsActive,omitempty"`
}

// CustomerList is one page of customers.
type CustomerList struct {
	Meta Meta       `json:"Meta"`
	Data []Customer `json:"Data"`
}

// ListCustomers returns one page of customers.
func (c *httpClient) ListCustomers(ctx context.Context, opts *ListOptions) (*CustomerList, error) {
	var out CustomerList
	if err := c.do(ctx, http.MethodGet, opts.values(), nil, &out, "customers"); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchCustomers returns the customers matching the given query.
func (c *httpClient) SearchCustomers(ctx context.Context, params *QueryParams) (*CustomerList, error) {
	var out CustomerList
	if err := c.do(ctx, http.MethodGet, params.values(), nil, &out, "customers"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCustomer returns a single customer by ID.
func (c *httpClient) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	var out Customer
	if err := c.do(ctx, http.MethodGet, nil, nil, &out, "customers", id); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCustomer creates a customer and returns the stored representation,
// including the server-assigned ID and customer number.
func (c *httpClient) CreateCustomer(ctx context.Context, customer *Customer) (*Customer, error) {
	var out Customer
	if err := c.do(ctx, http.MethodPost, nil, customer, &out, "customers"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCustomer replaces a customer and returns the stored representation.
func (c *httpClient) UpdateCustomer(ctx context.Context, id string, customer *Customer) (*Customer, error) {
	var out Customer
	if err := c.do(ctx, http.MethodPut, nil, customer, &out, "customers", id); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCustomer deletes a customer by ID.
func (c *httpClient) DeleteCustomer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, nil, nil, nil, "customers", id)
}
