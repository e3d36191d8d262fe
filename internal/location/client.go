package location

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"foodorder-be/internal/logger"
	"foodorder-be/internal/metrics"

	"go.uber.org/zap"
)

// Client calls the logistics provider's master-data API. Every call is a single
// round trip: no retries, no caching.
type Client struct {
	baseURL    string
	token      string
	provinceID int
	httpClient *http.Client
}

func NewClient(baseURL, token string, provinceID int) *Client {
	if token == "" {
		logger.L().Warn("shipping provider token is empty")
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		provinceID: provinceID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Districts lists the districts of the configured province.
func (c *Client) Districts(ctx context.Context) ([]District, error) {
	var env providerEnvelope[providerDistrict]
	if err := c.post(ctx, "districts", "/master-data/district", map[string]int{"province_id": c.provinceID}, &env); err != nil {
		return nil, err
	}
	return mapDistricts(env.Data), nil
}

// Wards lists the wards of one district.
func (c *Client) Wards(ctx context.Context, districtID int64) ([]Ward, error) {
	var env providerEnvelope[providerWard]
	if err := c.post(ctx, "wards", "/master-data/ward", map[string]int64{"district_id": districtID}, &env); err != nil {
		return nil, err
	}
	return mapWards(env.Data), nil
}

// post sends one request and decodes the provider envelope into out.
// out must expose the provider code and message via envelopeStatus.
func (c *Client) post(ctx context.Context, endpoint, path string, body any, out envelopeStatus) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "client"),
		zap.String("endpoint", endpoint),
	)

	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("failed to marshal provider request", zap.Error(err))
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstream(endpoint, "unreachable")
		log.Error("provider request failed", zap.Error(err))
		return ErrProviderUnreachable
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordUpstream(endpoint, "unreachable")
		log.Error("failed to read provider response", zap.Error(err))
		return ErrProviderUnreachable
	}

	decodeErr := json.Unmarshal(bodyBytes, out)

	if resp.StatusCode >= http.StatusMultipleChoices {
		metrics.RecordUpstream(endpoint, "failed")
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && out.message() != "" {
			msg = out.message()
		}
		log.Error("provider returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return fmt.Errorf("%w: %s", ErrRequestFailed, msg)
	}

	if decodeErr != nil {
		metrics.RecordUpstream(endpoint, "failed")
		log.Error("failed decoding provider response", zap.Error(decodeErr))
		return fmt.Errorf("%w: %v", ErrRequestFailed, decodeErr)
	}

	if out.code() != http.StatusOK {
		metrics.RecordUpstream(endpoint, "failed")
		log.Error("provider returned error code",
			zap.Int("code", out.code()),
			zap.String("message", out.message()),
		)
		return fmt.Errorf("%w: %s", ErrRequestFailed, out.message())
	}

	metrics.RecordUpstream(endpoint, "ok")
	log.Debug("provider call succeeded")
	return nil
}

type envelopeStatus interface {
	code() int
	message() string
}

func (e *providerEnvelope[T]) code() int       { return e.Code }
func (e *providerEnvelope[T]) message() string { return e.Message }
