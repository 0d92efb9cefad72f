package youtube

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/byunchangill/youtube-hot-finder/internal/model"
	"github.com/byunchangill/youtube-hot-finder/pkg/hash"
)

// CredentialSource supplies the credential for the next outbound call.
// Select never fails with "no credential": when the pool is exhausted it
// hands out a best-effort fallback which may itself be over quota.
type CredentialSource interface {
	Select(ctx context.Context) (model.Credential, error)
}

// Client issues single synchronous GET requests against the Data API.
// It performs no retries and no quota accounting; both are caller policy.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	limiter *rate.Limiter
}

// NewClient builds a gateway client. rps throttles outbound calls so a
// burst of user requests cannot trip the provider's per-second limits.
func NewClient(baseURL string, creds CredentialSource, httpClient *http.Client, rps float64) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		creds:   creds,
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
	}
}

// Execute selects a credential, issues one GET against the endpoint and
// decodes a 200 response into out. Non-200 responses are classified via
// Classify; transport and decode failures surface as NetworkError. The
// credential used is returned in all cases so the caller can meter usage
// or deactivate it.
func (c *Client) Execute(ctx context.Context, endpoint string, params map[string]string, out any) (model.Credential, error) {
	cred, err := c.creds.Select(ctx)
	if err != nil {
		return model.Credential{}, &NetworkError{Op: "select credential", Err: err}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return cred, &NetworkError{Op: "throttle wait", Err: err}
	}

	reqURL := c.buildURL(endpoint, params, cred.Key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return cred, &NetworkError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	log.Printf("youtube: GET /%s (credential=%s)", endpoint, hash.SecretFingerprint(cred.Key))

	resp, err := c.http.Do(req)
	if err != nil {
		return cred, &NetworkError{Op: "execute request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return cred, &NetworkError{Op: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return cred, Classify(resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return cred, &NetworkError{Op: "decode response", Err: err}
		}
	}
	return cred, nil
}

// buildURL appends the key parameter plus all non-blank caller parameters.
// Blank values are omitted entirely rather than sent empty.
func (c *Client) buildURL(endpoint string, params map[string]string, key string) string {
	values := url.Values{}
	values.Set("key", key)
	for k, v := range params {
		if strings.TrimSpace(v) == "" {
			continue
		}
		values.Set(k, v)
	}
	return c.baseURL + "/" + endpoint + "?" + values.Encode()
}
