package spiris

import (
	"context"
	"net/http"
)

// Article is a sellable product or service referenced by invoice rows.
type Article struct {
	ID            string  `json:"Id,omitempty"`
	ArticleNumber string  `json:"Number,omitempty"`
	Name          string  `json:"Name,omitempty"`
	UnitPrice     float64 `json:"NetPrice,omitempty"`
	GrossPrice    float64 `json:"GrossPrice,omitempty"`
	UnitName      string  `json:"UnitName,omitempty"`
	VatRatePct    float64 `json:"VatRatePercent,omitempty"`
	StockBalance  float64 `json:"StockBalance,omitempty"`
	IsActive      bool    `json:"IsActive,omitempty"`
}

// ArticleList is one page of articles.
type ArticleList struct {
	Meta Meta      `json:"Meta"`
	Data []Article `json:"Data"`
}

// ListArticles returns one page of articles.
func (c *httpClient) ListArticles(ctx context.Context, opts *ListOptions) (*ArticleList, error) {
	var out ArticleList
	if err := c.do(ctx, http.MethodGet, opts.values(), nil, &out, "articles"); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchArticles returns the articles matching the given query.
func (c *httpClient) SearchArticles(ctx context.Context, params *QueryParams) (*ArticleList, error) {
	var out ArticleList
	if err := c.do(ctx, http.MethodGet, params.values(), nil, &out, "articles"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetArticle returns a single article by ID.
func (c *httpClient) GetArticle(ctx context.Context, id string) (*Article, error) {
	var out Article
	if err := c.do(ctx, http.MethodGet, nil, nil, &out, "articles", id); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateArticle creates an article and returns the stored representation.
func (c *httpClient) CreateArticle(ctx context.Context, article *Article) (*Article, error) {
	var out Article
	if err := c.do(ctx, http.MethodPost, nil, article, &out, "articles"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateArticle replaces an article and returns the stored representation.
func (c *httpClient) UpdateArticle(ctx context.Context, id string, article *Article) (*Article, error) {
	var out Article
	if err := c.do(ctx, http.MethodPut, nil, article, &out, "articles", id); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteArticle deletes an article by ID.
func (c *httpClient) DeleteArticle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, nil, nil, nil, "articles", id)
}
