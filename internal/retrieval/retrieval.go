// Package retrieval provides the client for the managed document index.
// The index owns ingestion, storage and relevance ranking; this package
// issues queries over HTTP and hands back the passages in the order the
// service returned them. No re-ranking happens on this side.
package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrRetrievalUnavailable indicates the index service could not be
	// reached or returned a non-success status.
	ErrRetrievalUnavailable = errors.New("index service unavailable")

	// ErrEmptyResult indicates the query matched zero passages. Callers may
	// treat this as recoverable and proceed with an empty context.
	ErrEmptyResult = errors.New("no passages found")
)

// DefaultTimeout bounds each query call when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Passage is a retrieved text fragment. Its rank is its position in the
// slice returned by Retrieve.
type Passage struct {
	Content string
}

// Config holds connection settings for the index service.
type Config struct {
	// Endpoint is the base URL of the index service
	Endpoint string

	// IndexID identifies the index to query
	IndexID string

	// Timeout bounds each query call (0 = DefaultTimeout)
	Timeout time.Duration
}

// Retriever queries the managed document index.
type Retriever struct {
	endpoint string
	indexID  string
	client   *http.Client
}

// NewRetriever creates a new Retriever instance.
func NewRetriever(cfg Config) (*Retriever, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("index endpoint cannot be empty")
	}
	if cfg.IndexID == "" {
		return nil, fmt.Errorf("index ID cannot be empty")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Retriever{
		endpoint: cfg.Endpoint,
		indexID:  cfg.IndexID,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// queryRequest is the index service query API request.
type queryRequest struct {
	QueryText  string `json:"QueryText"`
	IndexID    string `json:"IndexId"`
	PageSize   int    `json:"PageSize"`
	PageNumber int    `json:"PageNumber"`
}

// queryResponse is the index service query API response.
type queryResponse struct {
	ResultItems []struct {
		Content string `json:"Content"`
	} `json:"ResultItems"`
}

// Retrieve issues a single synchronous query for the given page of results
// and returns at most pageSize passages in service order.
func (r *Retriever) Retrieve(ctx context.Context, query string, pageSize, page int) ([]Passage, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("pageSize must be positive, got %d", pageSize)
	}
	if page <= 0 {
		return nil, fmt.Errorf("page must be positive, got %d", page)
	}

	reqBody := queryRequest{
		QueryText:  query,
		IndexID:    r.indexID,
		PageSize:   pageSize,
		PageNumber: page,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling query request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+"/query", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: index service returned status %d", ErrRetrievalUnavailable, resp.StatusCode)
	}

	var queryResp queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&queryResp); err != nil {
		return nil, fmt.Errorf("%w: decoding query response: %v", ErrRetrievalUnavailable, err)
	}

	if len(queryResp.ResultItems) == 0 {
		return nil, ErrEmptyResult
	}

	// The service contract caps results at PageSize; enforce it locally so a
	// misbehaving index cannot inflate the context.
	items := queryResp.ResultItems
	if len(items) > pageSize {
		items = items[:pageSize]
	}

	passages := make([]Passage, len(items))
	for i, item := range items {
		passages[i] = Passage{Content: item.Content}
	}

	return passages, nil
}
