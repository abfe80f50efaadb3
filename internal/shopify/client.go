package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"pitstop/internal/models"

	log "github.com/sirupsen/logrus"
)

// maxErrorBody bounds how much of a failed response body is logged.
const maxErrorBody = 512

// Client talks to the Shopify Admin REST API of a single store.
type Client struct {
	baseURL    string
	apiKey     string
	password   string
	pageSize   int
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client (no timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the derived https://<store>/admin/api/<version> root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithPageSize sets the "limit" query parameter on listing calls. 0 leaves it unset.
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

// NewClient creates a client for storeURL (a bare host such as my-store.myshopify.com).
func NewClient(storeURL, apiKey, password, apiVersion string, opts ...Option) *Client {
	c := &Client{
		baseURL:    fmt.Sprintf("https://%s/admin/api/%s", storeURL, apiVersion),
		apiKey:     apiKey,
		password:   password,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type productsResponse struct {
	Products []struct {
		Title    *string `json:"title"`
		Variants []struct {
			Price priceValue `json:"price"`
		} `json:"variants"`
	} `json:"products"`
}

// priceValue accepts a price sent either as a JSON string or a number.
type priceValue string

func (p *priceValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*p = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*p = priceValue(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price must be a string or number: %w", err)
	}
	*p = priceValue(n.String())
	return nil
}

// ListProducts returns the catalog as typed records. Each product carries the
// price of its first variant, if any.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var resp productsResponse
	if err := c.getJSON(ctx, "/products.json", c.listingQuery(), &resp); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(resp.Products))
	for _, p := range resp.Products {
		product := models.Product{}
		if p.Title != nil {
			product.Title = *p.Title
		}
		if len(p.Variants) > 0 {
			product.Price = string(p.Variants[0].Price)
		}
		products = append(products, product)
	}
	return products, nil
}

// FetchProducts is ListProducts with failures and empty catalogs replaced by
// a single placeholder entry, so callers always get a non-empty list.
func (c *Client) FetchProducts(ctx context.Context) []models.Product {
	products, err := c.ListProducts(ctx)
	if err != nil {
		log.WithError(err).Error("Error al obtener productos de Shopify")
		return models.PlaceholderProducts(models.ProductsFetchFailed)
	}
	if len(products) == 0 {
		return models.PlaceholderProducts(models.ProductsEmpty)
	}
	return products
}

type policyEntry struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ListPolicies returns the store policies as label/value pairs. The platform
// answers either with a list of {title, body} objects (body is HTML) or with a
// flat key/value object; both are accepted.
func (c *Client) ListPolicies(ctx context.Context) ([]models.Policy, error) {
	var resp struct {
		Policies json.RawMessage `json:"policies"`
	}
	if err := c.getJSON(ctx, "/policies.json", nil, &resp); err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(string(resp.Policies))
	switch {
	case raw == "" || raw == "null":
		return nil, nil
	case strings.HasPrefix(raw, "["):
		var entries []policyEntry
		if err := json.Unmarshal(resp.Policies, &entries); err != nil {
			return nil, fmt.Errorf("decode policies list: %w", err)
		}
		policies := make([]models.Policy, 0, len(entries))
		for _, e := range entries {
			policies = append(policies, models.Policy{Label: e.Title, Value: HTMLToText(e.Body)})
		}
		return policies, nil
	default:
		var flat map[string]string
		if err := json.Unmarshal(resp.Policies, &flat); err != nil {
			return nil, fmt.Errorf("decode policies map: %w", err)
		}
		keys := make([]string, 0, len(flat))
		for k := range flat {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		policies := make([]models.Policy, 0, len(keys))
		for _, k := range keys {
			policies = append(policies, models.Policy{Label: k, Value: HTMLToText(flat[k])})
		}
		return policies, nil
	}
}

// FetchPolicies is ListPolicies with the same placeholder substitution as FetchProducts.
func (c *Client) FetchPolicies(ctx context.Context) []models.Policy {
	policies, err := c.ListPolicies(ctx)
	if err != nil {
		log.WithError(err).Error("Error al obtener políticas de Shopify")
		return models.PlaceholderPolicies(models.PoliciesFetchFailed)
	}
	if len(policies) == 0 {
		return models.PlaceholderPolicies(models.PoliciesEmpty)
	}
	return policies
}

// Ping checks credentials and connectivity against the shop endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var shop struct {
		Shop struct {
			Name string `json:"name"`
		} `json:"shop"`
	}
	return c.getJSON(ctx, "/shop.json", nil, &shop)
}

func (c *Client) listingQuery() url.Values {
	if c.pageSize <= 0 {
		return nil
	}
	return url.Values{"limit": []string{strconv.Itoa(c.pageSize)}}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.SetBasicAuth(c.apiKey, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("GET %s: %w: %d %s", path, models.ErrUpstreamStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
