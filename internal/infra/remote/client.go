// Package remote implements the HTTP remote sink and seed source used by
// the persistence gateway.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"archcore/pkg/domain"
)

// Compile-time contract assertions.
var (
	_ domain.RemoteSink = (*Sink)(nil)
	_ domain.SeedSource = (*HTTPSeed)(nil)
	_ domain.SeedSource = (*FileSeed)(nil)
)

// Sink posts full-document saves to a remote save endpoint.
type Sink struct {
	url    string
	client *http.Client
}

// NewSink builds a sink posting to the given URL. A nil client uses a
// default with a 10 second timeout.
func NewSink(url string, client *http.Client) *Sink {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Sink{url: url, client: client}
}

type saveResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Save posts the document and returns the server acknowledgment
// timestamp.
func (s *Sink) Save(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("post save: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("save rejected: %s", resp.Status)
	}
	var ack saveResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return "", fmt.Errorf("decode save response: %w", err)
	}
	return ack.Timestamp, nil
}

// HTTPSeed fetches the bootstrap document from a URL.
type HTTPSeed struct {
	url    string
	client *http.Client
}

// NewHTTPSeed builds a seed source fetching from the given URL.
func NewHTTPSeed(url string, client *http.Client) *HTTPSeed {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPSeed{url: url, client: client}
}

// Fetch downloads the seed document.
func (s *HTTPSeed) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build seed request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch seed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed fetch failed: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// FileSeed reads the bootstrap document from disk.
type FileSeed struct {
	path string
}

// NewFileSeed builds a seed source reading the given file.
func NewFileSeed(path string) *FileSeed {
	return &FileSeed{path: path}
}

// Fetch reads the seed document.
func (s *FileSeed) Fetch(context.Context) ([]byte, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return payload, nil
}

// OpenSeedSource interprets a seed location as a URL when it carries an
// http scheme and a file path otherwise. An empty location yields nil.
func OpenSeedSource(location string, client *http.Client) domain.SeedSource {
	if location == "" {
		return nil
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSeed(location, client)
	}
	return NewFileSeed(location)
}
