// Package remote fetches question banks from the hosted bank service
// and mirrors them into the local YAML directories.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"

	"github.com/skotani/lingrade/internal/questionbank"
)

type Client struct {
	httpClient       *resty.Client
	cache            *FileCache
	maxRetryAttempts uint
}

// NewClient builds a client for the bank service. The API key goes
// into the Authorization header; an empty cacheDir disables caching.
func NewClient(baseURL, apiKey string, retryAttempts uint, cacheDir string) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		httpClient.SetHeader("Authorization", "Bearer "+apiKey)
	}

	var cache *FileCache
	if cacheDir != "" {
		cache = NewFileCache(cacheDir)
	}
	return &Client{
		httpClient:       httpClient,
		cache:            cache,
		maxRetryAttempts: retryAttempts,
	}
}

type bankListResponse struct {
	Banks []bankSummary `json:"banks"`
}

type bankSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	if strings.Contains(errStr, "response error 5") {
		return true
	}
	if strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}

// ListBanks returns the IDs of every bank the service hosts. The body
// is decoded by hand so a response with a missing or wrong Content-Type
// header cannot silently produce an empty list.
func (client *Client) ListBanks(ctx context.Context) ([]string, error) {
	var body []byte
	if err := client.withRetry(ctx, "list banks", func() error {
		response, err := client.httpClient.R().
			SetContext(ctx).
			Get("/v1/banks")
		if err != nil {
			return fmt.Errorf("httpClient.R().Get > %w", err)
		}
		if response.IsError() {
			return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
		}
		body = response.Body()
		return nil
	}); err != nil {
		return nil, err
	}

	var result bankListResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}

	ids := make([]string, 0, len(result.Banks))
	for _, bank := range result.Banks {
		ids = append(ids, bank.ID)
	}
	return ids, nil
}

// FetchBank downloads one bank, serving from the file cache when the
// bank was fetched before.
func (client *Client) FetchBank(ctx context.Context, bankID string) (*questionbank.Bank, error) {
	fetch := func() ([]byte, error) {
		var body []byte
		err := client.withRetry(ctx, "fetch bank "+bankID, func() error {
			response, err := client.httpClient.R().
				SetContext(ctx).
				Get("/v1/banks/" + bankID)
			if err != nil {
				return fmt.Errorf("httpClient.R().Get > %w", err)
			}
			if response.IsError() {
				return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
			}
			body = response.Body()
			return nil
		})
		return body, err
	}

	var contents []byte
	var err error
	if client.cache != nil {
		contents, err = client.cache.cache(bankID, fetch)
	} else {
		contents, err = fetch()
	}
	if err != nil {
		return nil, err
	}

	var bank questionbank.Bank
	if err := json.Unmarshal(contents, &bank); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return &bank, nil
}

// Sync downloads every hosted bank and writes each one as a YAML file
// under dir, where the local repository picks them up. It returns the
// number of banks written.
func (client *Client) Sync(ctx context.Context, dir string) (int, error) {
	ids, err := client.ListBanks(ctx)
	if err != nil {
		return 0, fmt.Errorf("client.ListBanks > %w", err)
	}

	written := 0
	for _, id := range ids {
		bank, err := client.FetchBank(ctx, id)
		if err != nil {
			return written, fmt.Errorf("client.FetchBank(%s) > %w", id, err)
		}
		if errs := bank.Validate(); len(errs) > 0 {
			slog.Warn("skipping bank with authoring errors", "bank", id, "errors", len(errs))
			continue
		}

		path := filepath.Join(dir, bank.ID+".yaml")
		if err := questionbank.WriteYamlFile(path, bank); err != nil {
			return written, fmt.Errorf("questionbank.WriteYamlFile(%s) > %w", path, err)
		}
		written++
	}
	return written, nil
}

func (client *Client) withRetry(ctx context.Context, operation string, fn func() error) error {
	return retry.Do(
		func() error {
			err := fn()
			if err != nil && !isRetryableError(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Info("retrying bank service call",
				"operation", operation,
				"attempt", n+1,
				"error", err)
		}),
	)
}
