package shelflife

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type (
	// Product is a single candidate returned by the lookup service.
	Product struct {
		DisplayName string `json:"product_name"`
	}

	LookupService interface {
		Search(ctx context.Context, query string) ([]Product, error)
	}

	openFoodFactsClient struct {
		searchURL  string
		httpClient *http.Client
	}
)

func NewOpenFoodFactsClient(searchURL string, httpClient *http.Client) LookupService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &openFoodFactsClient{
		searchURL:  searchURL,
		httpClient: httpClient,
	}
}

func (c *openFoodFactsClient) Search(ctx context.Context, query string) ([]Product, error) {
	u, err := url.Parse(c.searchURL)
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	q := u.Query()
	q.Set("search_terms", query)
	q.Set("search_simple", "1")
	q.Set("json", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("open food facts error: %s - %s", resp.Status, string(bodyBytes))
	}

	var searchResp struct {
		Products []Product `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return searchResp.Products, nil
}
