package spiris

// Meta describes the pagination state of a collection response.
type Meta struct {
	CurrentPage  int `json:"CurrentPage"`
	PageSize     int `json:"PageSize"`
	TotalPages   int `json:"TotalNumberOfPages"`
	TotalResults int `json:"TotalNumberOfResults"`
}

// Address is a postal address attached to a customer.
type Address struct {
	Line1      string `json:"Address1,omitempty"`
	Line2      string `json:"Address2,omitempty"`
	PostalCode string `json:"PostalCode,omitempty"`
	City       string `json:"City,omitempty"`
	// CountryCode is an ISO 3166-1 alpha-2 code, e.g. "SE".
	CountryCode string `json:"CountryCode,omitempty"`
}
