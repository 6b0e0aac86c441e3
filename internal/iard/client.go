// Package iard talks to the IARD Solutions analysis API: one POST per file
// bundle, authenticated with an API key header.
package iard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/config"
	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/httpclient"
)

const apiKeyHeader = "X-API-KEY"

// Client submits analysis bundles to the remote service.
type Client struct {
	httpc  *resty.Client
	url    string
	apiKey string
}

// New builds a service client from the global configuration. The API key is
// required; submissions without one are rejected by the service.
func New(cfg *config.Config, logger hclog.Logger) (*Client, error) {
	if cfg.Service.APIKey == "" {
		return nil, fmt.Errorf("no API key configured: set SOLIDITY_ANALYZER_API_KEY or the service.api_key directive")
	}

	httpc := httpclient.InitializeRestyClient(logger, cfg)

	return &Client{
		httpc:  httpc,
		url:    cfg.Service.Endpoint,
		apiKey: cfg.Service.APIKey,
	}, nil
}

// Endpoint returns the resolved service URL.
func (c *Client) Endpoint() string {
	return c.url
}

// Analyze submits one bundle and returns the raw findings. A transport error
// or a non-200 status is returned as an error; the caller decides whether the
// failure is fatal for the whole run or only for this bundle.
func (c *Client) Analyze(ctx context.Context, bundle map[string]SourceContent) (*AnalysisResponse, error) {
	var result AnalysisResponse

	resp, err := c.httpc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(apiKeyHeader, c.apiKey).
		SetBody(AnalysisRequest{Code: bundle}).
		SetResult(&result).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%d on analysis submission: %s", resp.StatusCode(), resp.String())
	}

	return &result, nil
}
