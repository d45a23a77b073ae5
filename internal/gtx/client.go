// Package gtx talks to the unofficial Google web translation endpoint.
// There is no SDK and no contract: requests mimic a browser and responses
// are scraped. Treat every part of this package as unstable by nature.
package gtx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/oukeidos/kvlate/internal/apperrors"
	"github.com/oukeidos/kvlate/internal/httpclient"
	"github.com/oukeidos/kvlate/internal/language"
	"github.com/oukeidos/kvlate/internal/mask"
)

const (
	// DefaultBaseURL is the unofficial web endpoint. client=gtx is the
	// identifier the translate widget itself uses.
	DefaultBaseURL = "https://translate.googleapis.com/translate_a/single"

	clientID = "gtx"

	// The endpoint serves captchas to unknown agents, hence the browser UA.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Config configures a Client.
type Config struct {
	// BaseURL overrides the endpoint, mainly for tests.
	BaseURL string
	// Timeout is the per-request timeout. Zero means httpclient.DefaultTimeout.
	Timeout time.Duration
	// Insecure skips TLS certificate verification for this client only.
	// The endpoint's certificate chain fails validation in some corporate
	// environments; enabling this trades TLS guarantees for compatibility.
	Insecure bool
}

// Client issues translation requests against the endpoint.
type Client struct {
	httpc   *http.Client
	baseURL string
}

// Result is one completed translation round trip.
type Result struct {
	// Text is the translated text with placeholders restored.
	Text string
	// Elapsed is wall-clock time from request start to parsed response.
	Elapsed time.Duration
	// DroppedTokens lists placeholder indices the remote end lost; the
	// corresponding placeholders are gone from Text.
	DroppedTokens []string
}

// NewClient creates a Client. A zero Config gives a secure client against
// the real endpoint with the shared default timeout.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	var httpc *http.Client
	if cfg.Timeout == 0 && !cfg.Insecure {
		httpc = httpclient.GetDefaultClient()
	} else {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = httpclient.DefaultTimeout
		}
		httpc = httpclient.NewClient(timeout, cfg.Insecure)
	}
	return &Client{
		httpc:   httpc,
		baseURL: baseURL,
	}
}

// Translate sends one masked translation request and returns the
// unmasked result. Language arguments are human-readable names; unknown
// names degrade to an empty code rather than failing here, matching the
// resolver's contract.
func (c *Client) Translate(ctx context.Context, text, sourceName, targetName string) (Result, error) {
	start := time.Now()

	masked, tokens := mask.Mask(text)
	sourceCode := language.Resolve(sourceName)
	targetCode := language.Resolve(targetName)

	reqURL, err := c.buildURL(masked, sourceCode, targetCode)
	if err != nil {
		return Result{}, apperrors.New(apperrors.KindBadRequest, "could not build request URL", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result{}, apperrors.New(apperrors.KindBadRequest, "could not build request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Charset", "utf-8")

	body, resp, err := httpclient.DoAndRead(c.httpc, req)
	if err != nil {
		return Result{}, apperrors.Transport(err)
	}
	if err := classifyStatus(resp.StatusCode); err != nil {
		return Result{}, err
	}

	parsed := parseBody(string(body), sourceCode)
	dropped := mask.Dropped(parsed, tokens)
	out := mask.Unmask(parsed, tokens)

	return Result{
		Text:          out,
		Elapsed:       time.Since(start),
		DroppedTokens: dropped,
	}, nil
}

func (c *Client) buildURL(text, sourceCode, targetCode string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("client", clientID)
	q.Set("sl", sourceCode)
	q.Set("tl", targetCode)
	q.Set("dt", "t")
	q.Set("ie", "UTF-8")
	q.Set("oe", "UTF-8")
	q.Set("q", text)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func classifyStatus(status int) error {
	switch {
	case status == http.StatusTooManyRequests:
		return apperrors.RateLimit(fmt.Errorf("endpoint returned status %d", status))
	case status >= 500:
		return apperrors.Transport(fmt.Errorf("endpoint returned status %d", status))
	case status >= 400:
		return apperrors.BadRequest(fmt.Errorf("endpoint returned status %d", status))
	default:
		return nil
	}
}
