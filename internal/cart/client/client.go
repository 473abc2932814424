package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/calyptra/storefront/internal/cart/otel"
	"github.com/calyptra/storefront/cart/pkg/request"
	"github.com/calyptra/storefront/cart/pkg/response"
	inErrors "github.com/calyptra/storefront/internal/common/errors"
	inHttp "github.com/calyptra/storefront/internal/common/http"
	"github.com/calyptra/storefront/internal/config"
	"github.com/calyptra/storefront/internal/log"
	inOtel "github.com/calyptra/storefront/internal/otel"
)

const defaultTimeout = 30 * time.Second

// Client calls the upstream commerce cart endpoints. Every request is
// scoped to a session cart through the session header; a bounded
// timeout keeps a hung upstream from leaving a mutation pending
// forever.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.CartApi) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
	}
}

func (t *Client) FetchCart(
	c context.Context,
	sessionID string,
) (response.CartSnapshot, error) {
	return t.do(c, sessionID, http.MethodGet, "/cart.js", nil)
}

func (t *Client) AddLine(
	c context.Context,
	sessionID string,
	param request.AddLine,
) (response.CartSnapshot, error) {
	body := map[string]interface{}{
		"id":       param.VariantID,
		"quantity": param.Quantity,
	}
	if len(param.Properties) > 0 {
		body["properties"] = param.Properties
	}
	return t.do(c, sessionID, http.MethodPost, "/cart/add.js", body)
}

func (t *Client) ChangeLine(
	c context.Context,
	sessionID string,
	lineKey string,
	quantity int64,
) (response.CartSnapshot, error) {
	body := map[string]interface{}{
		"id":       lineKey,
		"quantity": quantity,
	}
	return t.do(c, sessionID, http.MethodPost, "/cart/change.js", body)
}

func (t *Client) BulkUpdate(
	c context.Context,
	sessionID string,
	updates map[string]int64,
) (response.CartSnapshot, error) {
	body := map[string]interface{}{
		"updates": updates,
	}
	return t.do(c, sessionID, http.MethodPost, "/cart/update.js", body)
}

func (t *Client) do(
	c context.Context,
	sessionID string,
	method string,
	path string,
	body map[string]interface{},
) (response.CartSnapshot, error) {
	c, span := otel.Tracer.Start(c, "Client "+path)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Client do").
		Str(log.KeySessionID, sessionID).
		Str("path", path).
		Logger()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			err = fmt.Errorf("failed encoding request body with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.CartSnapshot{}, err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(c, method, t.baseURL+path, reader)
	if err != nil {
		err = fmt.Errorf("failed creating request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartSnapshot{}, err
	}
	req.Header.Add(inHttp.HeaderContentType, inHttp.ValueJson)
	req.Header.Add("Accept", inHttp.ValueJson)
	req.Header.Add(inHttp.HeaderCartSession, sessionID)
	if requestId := log.RequestIDFromContext(c); requestId != "" {
		req.Header.Add(inHttp.HeaderRequestID, requestId)
	}

	logger.Trace().Msg("calling upstream cart api")
	resp, err := t.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf(
			"failed calling upstream cart api with error=%w: %w",
			inErrors.ErrCartMutationFailed,
			err,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartSnapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err = fmt.Errorf(
			"upstream responded status=%d description=%s with error=%w",
			resp.StatusCode,
			decodeErrorDescription(resp),
			inErrors.ErrCartMutationFailed,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartSnapshot{}, err
	}

	payload := cartPayload{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		err = fmt.Errorf("failed decoding cart payload with error=%w: %w",
			inErrors.ErrMalformedCart,
			err,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartSnapshot{}, err
	}

	snapshot, err := payload.Snapshot()
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartSnapshot{}, err
	}
	logger.Trace().Int64(log.KeyItemCount, snapshot.ItemCount).Msg("called upstream cart api")
	return snapshot, nil
}

// decodeErrorDescription extracts a human readable reason from an
// upstream error body, falling back to a generic message.
func decodeErrorDescription(resp *http.Response) string {
	payload := errorPayload{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Description != "" {
			return payload.Description
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return "cart request failed, please try again"
}
