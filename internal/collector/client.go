// Package collector implements the blocking RPC primitive used for every
// outbound call to the collector: serialize+gzip a payload, POST to the
// invoke_raw_method endpoint, parse the envelope, classify failures.
package collector

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/newrelic/go-apm-agent/internal/limits"
	"github.com/newrelic/go-apm-agent/pkg/log"
)

const (
	userAgent = "NewRelic-Go-APM-Agent/1.0"
	pathInvokeRawMethod = "/agent_listener/invoke_raw_method"
)

var clog = log.WithComponent("collector")

// Client issues RPCs against the collector's invoke_raw_method endpoint.
type Client struct {
	HTTPClient *http.Client
	License    string

	// Scheme defaults to "https"; tests override it to talk to a plain
	// httptest.Server.
	Scheme string
}

// NewClient builds a Client with a default http.Client; callers that need a
// different transport (proxying, custom TLS) can set HTTPClient directly.
func NewClient(license string) *Client {
	return &Client{
		HTTPClient: &http.Client{},
		License:    license,
		Scheme:     "https",
	}
}

// RPC performs one invoke_raw_method call and decodes {"return_value": T}
// into out. runID is omitted from the query string when empty.
func (c *Client) RPC(ctx context.Context, host, method, runID string, headers map[string]string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshaling payload")
	}

	compressed, err := gzipCompress(body)
	if err != nil {
		return errors.Wrap(err, "compressing payload")
	}
	if len(compressed) > limits.MaxPayloadSize {
		return &Error{Kind: PayloadTooLarge}
	}

	scheme := c.Scheme
	if scheme == "" {
		scheme = "https"
	}
	u := &url.URL{
		Scheme: scheme,
		Host:   host,
		Path:   pathInvokeRawMethod,
	}
	q := u.Query()
	q.Set("license_key", c.License)
	q.Set("marshal_format", "json")
	q.Set("method", method)
	q.Set("protocol_version", fmt.Sprintf("%d", limits.ProtocolVersion))
	if runID != "" {
		q.Set("run_id", runID)
	}
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, limits.RPCTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(compressed))
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Content-Encoding", "gzip")
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &Error{Kind: Http, cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: Http, cause: err}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		clog.WithField("method", method).WithField("status", resp.StatusCode).Warn("collector rejected request")
		return &Error{Kind: StatusError, Status: resp.StatusCode, Body: respBody}
	}

	if out == nil {
		return nil
	}

	var envelope struct {
		ReturnValue json.RawMessage `json:"return_value"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return errors.Wrap(err, "decoding envelope")
	}
	if err := json.Unmarshal(envelope.ReturnValue, out); err != nil {
		return errors.Wrap(err, "decoding return_value")
	}
	return nil
}

func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
