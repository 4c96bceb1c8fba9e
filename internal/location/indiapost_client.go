package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/subham11/farmer-advisor-go/core"
	"github.com/subham11/farmer-advisor-go/pkg/memory"
	"github.com/subham11/farmer-advisor-go/resilience"
)

// indiaPostResponse mirrors one element of the India Post API's JSON array.
type indiaPostResponse struct {
	Status     string `json:"Status"`
	PostOffice []struct {
		Name         string `json:"Name"`
		State        string `json:"State"`
		District     string `json:"District"`
		Division     string `json:"Division"`
		Region       string `json:"Region"`
		Circle       string `json:"Circle"`
		Block        string `json:"Block"`
		BranchType   string `json:"BranchType"`
		DeliveryStatus string `json:"DeliveryStatus"`
	} `json:"PostOffice"`
}

// IndiaPostClient looks up pincode location detail via the India Post
// directory: a pooled transport wrapped in otelhttp, bounded timeout,
// circuit breaker plus retry around every call.
type IndiaPostClient struct {
	baseURL string
	client  *http.Client
	cb      *resilience.CircuitBreaker
	retry   *resilience.RetryConfig
	logger  core.Logger
}

// NewIndiaPostClient constructs a client against baseURL (normally
// https://api.postalpincode.in) with the given timeout.
func NewIndiaPostClient(baseURL string, timeout time.Duration, cbConfig core.CircuitBreakerConfig, logger core.Logger) *IndiaPostClient {
	if logger == nil {
		logger = core.NoOpLogger{}
	}
	transport := otelhttp.NewTransport(&http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	})
	return &IndiaPostClient{
		baseURL: baseURL,
		client:  &http.Client{Transport: transport, Timeout: timeout},
		cb:      resilience.NewCircuitBreaker("india_post", cbConfig, logger),
		retry:   resilience.DefaultRetryConfig(),
		logger:  logger,
	}
}

// Lookup fetches the post offices for pincode. Returns (nil, false) on any
// network failure, non-Success status, or an empty PostOffice list — the
// caller falls through to the next resolution step, it never errors.
func (c *IndiaPostClient) Lookup(ctx context.Context, pincode string) (*memory.LocationPayload, bool) {
	var payload *memory.LocationPayload

	err := resilience.RetryWithCircuitBreaker(ctx, c.retry, c.cb, func() error {
		url := fmt.Sprintf("%s/pincode/%s", c.baseURL, pincode)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: india post status %d", core.ErrUpstreamUnavailable, resp.StatusCode)
		}

		var decoded []indiaPostResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("%w: decode india post response: %v", core.ErrUpstreamUnavailable, err)
		}
		if len(decoded) == 0 || decoded[0].Status != "Success" || len(decoded[0].PostOffice) == 0 {
			return fmt.Errorf("%w: india post no match for %s", core.ErrUpstreamUnavailable, pincode)
		}

		offices := decoded[0].PostOffice
		names := make([]string, 0, len(offices))
		for _, po := range offices {
			names = append(names, po.Name)
		}
		primary := offices[0]
		payload = &memory.LocationPayload{
			State:           primary.State,
			District:        primary.District,
			Division:        primary.Division,
			Region:          primary.Region,
			Circle:          primary.Circle,
			Block:           primary.Block,
			PostOffices:     names,
			PrimaryLocation: primary.Name,
		}
		return nil
	})

	if err != nil {
		c.logger.Warn("india post lookup failed", map[string]interface{}{"pincode": pincode, "error": err.Error()})
		return nil, false
	}
	return payload, true
}
