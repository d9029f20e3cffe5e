package adapter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/config"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/go-resty/resty/v2"
)

// maxStreamLineSize caps one ndjson line. A line holds at most one page of
// records.
const maxStreamLineSize = 16 << 20

type httpServerAdapter struct {
	client *resty.Client

	// streamClient has no request timeout: a streaming pull may legitimately
	// outlive any sane per-request bound and is cancelled via ctx instead.
	streamClient *resty.Client

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// cfg.BaseURL and configures the underlying client with the resolved base
// URL and request timeout. The token from cfg, when present, is stored as
// the initial bearer token.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(cfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	streamClient := resty.New().
		SetBaseURL(baseURL).
		SetDoNotParseResponse(true)

	adapter := &httpServerAdapter{client: client, streamClient: streamClient, logger: logger}
	adapter.SetToken(cfg.Token)

	return adapter, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

// FullPull implements [ServerAdapter]. It POSTs to /api/sync/pull/full and
// decodes the complete snapshot payload.
func (h *httpServerAdapter) FullPull(ctx context.Context) (models.FullPullResponse, error) {
	var pullResponse models.FullPullResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		SetResult(&pullResponse).
		Post("/api/sync/pull/full")
	if err != nil {
		return models.FullPullResponse{}, fmt.Errorf("full pull request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FullPullResponse{}, err
	}

	return pullResponse, nil
}

// IncrementalPull implements [ServerAdapter]. It POSTs the client's
// watermarks to /api/sync/pull/incremental and decodes the per-entity
// deltas.
func (h *httpServerAdapter) IncrementalPull(ctx context.Context, req models.IncrementalPullRequest) (models.IncrementalPullResponse, error) {
	var pullResponse models.IncrementalPullResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&pullResponse).
		Post("/api/sync/pull/incremental")
	if err != nil {
		return models.IncrementalPullResponse{}, fmt.Errorf("incremental pull request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.IncrementalPullResponse{}, err
	}

	return pullResponse, nil
}

// Push implements [ServerAdapter]. It POSTs the mutation batch to
// /api/sync/push and decodes the per-mutation outcomes.
func (h *httpServerAdapter) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	var pushResponse models.PushResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&pushResponse).
		Post("/api/sync/push")
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("push request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushResponse{}, err
	}

	return pushResponse, nil
}

// StreamPull implements [ServerAdapter]. It GETs /api/sync/pull/stream and
// decodes newline-delimited chunks as they arrive, invoking apply for each
// data chunk. The stream is valid only if the last decoded chunk is the
// terminal marker; otherwise [ErrStreamInterrupted] is returned.
func (h *httpServerAdapter) StreamPull(ctx context.Context, apply func(models.SyncChunk) error) (time.Time, error) {
	resp, err := h.streamClient.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		Get("/api/sync/pull/stream")
	if err != nil {
		return time.Time{}, fmt.Errorf("stream pull request: %w", err)
	}

	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return time.Time{}, fmt.Errorf("stream pull: http %d", resp.StatusCode())
	}

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), maxStreamLineSize)

	var sawMarker bool
	var watermark time.Time

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk models.SyncChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return time.Time{}, fmt.Errorf("stream pull decode chunk: %w", err)
		}

		if chunk.Done {
			if chunk.Watermark != nil {
				watermark = *chunk.Watermark
			}
			sawMarker = true
			break
		}

		if err := apply(chunk); err != nil {
			return time.Time{}, fmt.Errorf("stream pull apply chunk: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return time.Time{}, fmt.Errorf("stream pull read: %w", err)
	}

	if !sawMarker {
		return time.Time{}, ErrStreamInterrupted
	}

	return watermark, nil
}
