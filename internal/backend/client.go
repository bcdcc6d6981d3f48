package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bredeby/chunkview/internal/model"
	appErr "github.com/bredeby/chunkview/internal/pkg/errors"
)

// Client talks to the external search/RAG service. The service is
// opaque: it ranks, we consume.
type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) VectorSearch(ctx context.Context, query string, limit int) (*model.SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	var resp model.SearchResponse
	if err := c.getJSON(ctx, "/api/search/vector", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) TextSearch(ctx context.Context, query string, limit int) (*model.SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	var resp model.SearchResponse
	if err := c.getJSON(ctx, "/api/search/text", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) HybridSearch(ctx context.Context, query string, limit int, opts model.HybridOptions) (*model.SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("rrf_k", strconv.Itoa(opts.RRFK))
	var resp model.SearchResponse
	if err := c.getJSON(ctx, "/api/search/hybrid", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetChunks(ctx context.Context, skip, limit int) (*model.ChunkList, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(skip))
	params.Set("limit", strconv.Itoa(limit))
	var list model.ChunkList
	if err := c.getJSON(ctx, "/api/chunks", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) GetChunk(ctx context.Context, id string) (*model.Chunk, error) {
	var chunk model.Chunk
	if err := c.getJSON(ctx, "/api/chunks/"+url.PathEscape(id), nil, &chunk); err != nil {
		return nil, err
	}
	return &chunk, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", appErr.ErrBackend, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", appErr.ErrNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d from %s", appErr.ErrBackend, resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", appErr.ErrBackend, err)
	}
	return nil
}
