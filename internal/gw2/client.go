package gw2

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"gw2-arbitrage/internal/logger"
)

const baseURL = "https://api.guildwars2.com/v2"

// maxPageSize is the largest page the API serves.
// See: https://wiki.guildwars2.com/wiki/API:2#Paging
const maxPageSize = 200

// maxIDsPerRequest is the largest id batch the API accepts before erroring.
const maxIDsPerRequest = 200

// PageStore is a persistent cache for paginated endpoint responses, so the
// large static endpoints (items, recipes) survive across runs.
type PageStore interface {
	GetPages(endpoint string) ([][]byte, bool)
	SetPages(endpoint string, pages [][]byte)
}

// Client is a rate-limited GW2 API client. Static endpoints go through the
// persistent PageStore; price snapshots get a short in-memory TTL; listing
// fetches are coalesced so concurrent callers share one request.
type Client struct {
	http   *http.Client
	sem    chan struct{}
	store  PageStore
	prices *gocache.Cache
	group  singleflight.Group
}

// NewClient creates a client with the given page store, which may be nil to
// disable persistent caching.
func NewClient(store PageStore) *Client {
	return &Client{
		http:   &http.Client{Timeout: 30 * time.Second},
		sem:    make(chan struct{}, 10),
		store:  store,
		prices: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// GetJSON fetches a URL and decodes its JSON body into dst.
func (c *Client) GetJSON(url string, dst interface{}) error {
	body, _, err := c.get(url)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// get performs one rate-limited request and returns the body together with
// the X-Page-Total header value (0 when absent).
func (c *Client) get(url string) (body []byte, pageTotal int, err error) {
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", "gw2-arbitrage/1.0 (github.com)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode != 200 {
		return nil, 0, fmt.Errorf("API %d: %s", resp.StatusCode, string(body))
	}

	if p := resp.Header.Get("X-Page-Total"); p != "" {
		pageTotal, _ = strconv.Atoi(p)
	}
	return body, pageTotal, nil
}

// getAllPages fetches every page of a paginated endpoint. Page 0 establishes
// the page total, the rest are fetched concurrently.
func (c *Client) getAllPages(endpoint string) ([][]byte, error) {
	url := fmt.Sprintf("%s/%s?page=0&page_size=%d", baseURL, endpoint, maxPageSize)
	first, pageTotal, err := c.get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	if pageTotal <= 1 {
		return [][]byte{first}, nil
	}

	pages := make([][]byte, pageTotal)
	pages[0] = first

	var g errgroup.Group
	for p := 1; p < pageTotal; p++ {
		p := p
		g.Go(func() error {
			pageURL := fmt.Sprintf("%s/%s?page=%d&page_size=%d", baseURL, endpoint, p, maxPageSize)
			body, _, err := c.get(pageURL)
			if err != nil {
				return fmt.Errorf("fetch %s page %d: %w", endpoint, p, err)
			}
			pages[p] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// getCachedPages returns a paginated endpoint's pages from the persistent
// store when fresh, fetching and re-caching otherwise.
func (c *Client) getCachedPages(endpoint string) ([][]byte, error) {
	if c.store != nil {
		if pages, ok := c.store.GetPages(endpoint); ok {
			logger.Info("API", fmt.Sprintf("Using cached pages for %s", endpoint))
			return pages, nil
		}
	}

	logger.Info("API", fmt.Sprintf("Fetching %s...", endpoint))
	pages, err := c.getAllPages(endpoint)
	if err != nil {
		return nil, err
	}
	if c.store != nil {
		c.store.SetPages(endpoint, pages)
	}
	return pages, nil
}

// getByIDs fetches an ids-filtered endpoint in batches, concurrently, and
// returns one JSON array body per batch.
func (c *Client) getByIDs(endpoint string, ids []int) ([][]byte, error) {
	var batches [][]int
	for len(ids) > 0 {
		n := maxIDsPerRequest
		if len(ids) < n {
			n = len(ids)
		}
		batches = append(batches, ids[:n])
		ids = ids[n:]
	}

	bodies := make([][]byte, len(batches))
	var g errgroup.Group
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			url := fmt.Sprintf("%s/%s?ids=%s", baseURL, endpoint, joinIDs(batch))
			body, _, err := c.get(url)
			if err != nil {
				return fmt.Errorf("fetch %s ids batch %d: %w", endpoint, i, err)
			}
			bodies[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bodies, nil
}

func joinIDs(ids []int) string {
	s := ""
	for i, id := range ids {
		if i > 0 {
			s += ","
		}
		s += strconv.Itoa(id)
	}
	return s
}
