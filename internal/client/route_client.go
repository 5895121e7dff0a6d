package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"vehicle-service/internal/config"
	"vehicle-service/internal/model"
)

type RouteClient struct {
	baseURL       string
	internalToken string
	httpClient    *http.Client
}

func NewRouteClient(cfg *config.Config) *RouteClient {
	timeout := cfg.Routes.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RouteClient{
		baseURL:       cfg.Routes.BaseURL,
		internalToken: cfg.Routes.InternalToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Resolve looks up a route by id against the route service. A definitive 404
// comes back as (nil, nil); transport failures and unexpected statuses are
// returned as errors so callers can tell an outage apart from a missing route.
func (c *RouteClient) Resolve(ctx context.Context, routeID string) (*model.RouteRef, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("route service URL is not configured")
	}
	if routeID == "" {
		return nil, nil
	}

	u, err := url.Parse(c.baseURL + "/routes/" + url.PathEscape(routeID))
	if err != nil {
		return nil, fmt.Errorf("invalid route service URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.internalToken != "" {
		req.Header.Set("X-Internal-Token", c.internalToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("route service returned status %d: %s", resp.StatusCode, string(body))
	}

	var route model.RouteRef
	if err := json.Unmarshal(body, &route); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if route.ID == "" {
		route.ID = routeID
	}
	return &route, nil
}
