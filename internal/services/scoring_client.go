package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/harvey-allen/credit-risk-app/internal/creditform"
	"github.com/harvey-allen/credit-risk-app/internal/utils"
)

// ScoringPath is the endpoint the form posts to, relative to the scoring
// backend's base URL.
const ScoringPath = "/calculate/credit-parameters/"

// ScoringClient posts applications to the external scoring backend.
type ScoringClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewScoringClient builds a client for baseURL. A nil httpClient gets a
// plain client with no timeout; submissions are never cut short or retried.
func NewScoringClient(baseURL string, httpClient *http.Client) *ScoringClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ScoringClient{
		endpoint:   strings.TrimRight(baseURL, "/") + ScoringPath,
		httpClient: httpClient,
	}
}

func (c *ScoringClient) Endpoint() string { return c.endpoint }

// Ping checks that the endpoint is an absolute http(s) URL. It does not call
// the backend.
func (c *ScoringClient) Ping(_ context.Context) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return fmt.Errorf("scoring endpoint %q: %w", c.endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("scoring endpoint %q is not an absolute http(s) URL", c.endpoint)
	}
	return nil
}

// ScoreApplication implements creditform.Scorer.
func (c *ScoringClient) ScoreApplication(ctx context.Context, app creditform.Application) (*creditform.ScoreResult, error) {
	body, err := json.Marshal(app)
	if err != nil {
		return nil, fmt.Errorf("encode application: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &creditform.TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &creditform.TransportError{Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &creditform.TransportError{Err: err}
	}

	logger := utils.Logger.WithField("status", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("Scoring backend rejected application")
		return nil, decodeScoringError(resp.StatusCode, respBody)
	}

	logger.Debug("Scoring backend accepted application")
	return decodeScoreResult(respBody), nil
}

func decodeScoreResult(body []byte) *creditform.ScoreResult {
	if !gjson.ValidBytes(body) {
		return &creditform.ScoreResult{}
	}
	score := gjson.GetBytes(body, "credit_score")
	if !score.Exists() || isFalsy(score) {
		return &creditform.ScoreResult{}
	}
	return &creditform.ScoreResult{CreditScore: score.String()}
}

// isFalsy reports null, false, 0 and "" as absent. Objects and arrays count
// as present even when empty.
func isFalsy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return v.Num == 0
	case gjson.String:
		return v.Str == ""
	}
	return false
}

// decodeScoringError keeps the server's field order so messages read the way
// the backend wrote them.
func decodeScoringError(status int, body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &creditform.ServerError{StatusCode: status}
	}
	if !gjson.ValidBytes(trimmed) {
		return &creditform.ServerError{StatusCode: status, Body: string(trimmed)}
	}

	parsed := gjson.ParseBytes(trimmed)
	switch {
	case parsed.IsObject():
		var out creditform.FieldErrors
		parsed.ForEach(func(key, value gjson.Result) bool {
			out = append(out, creditform.FieldError{Field: key.String(), Messages: messagesOf(value)})
			return true
		})
		return out
	case parsed.IsArray():
		var out creditform.FieldErrors
		for i, value := range parsed.Array() {
			out = append(out, creditform.FieldError{Field: strconv.Itoa(i), Messages: messagesOf(value)})
		}
		return out
	case isFalsy(parsed):
		return &creditform.ServerError{StatusCode: status}
	case parsed.Type == gjson.String:
		return &creditform.ServerError{StatusCode: status, Body: parsed.String()}
	default:
		return &creditform.ServerError{StatusCode: status, Body: string(trimmed)}
	}
}

func messagesOf(v gjson.Result) []string {
	if v.IsArray() {
		var msgs []string
		for _, m := range v.Array() {
			msgs = append(msgs, m.String())
		}
		return msgs
	}
	if v.Type == gjson.Null {
		return []string{"null"}
	}
	return []string{v.String()}
}

// unwrapURLError drops the `Post "<url>":` prefix net/http adds so the
// banner shows only the underlying cause.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
