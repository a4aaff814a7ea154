// Package github_store is a client for JSON documents kept in a GitHub
// repository via the contents API. Writes use the file's last-known sha as an
// optimistic concurrency marker; conflicting writers retry.
package github_store

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"newsroom/config"
	"newsroom/utils/errors"
	"newsroom/utils/logger"
)

type Client struct {
	httpClient *http.Client
	apiBase    string
	repo       string
	token      string

	maxRetries     int
	conflictDelay  time.Duration
	postWriteDelay time.Duration
	quotaThreshold int

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

func NewClient(cfg config.GitHubConfig) *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: cfg.RequestTimeout},
		apiBase:        strings.TrimSuffix(cfg.APIBase, "/"),
		repo:           cfg.Repo,
		token:          cfg.Token,
		maxRetries:     cfg.MaxRetries,
		conflictDelay:  cfg.ConflictDelay,
		postWriteDelay: cfg.PostWriteDelay,
		quotaThreshold: cfg.QuotaThreshold,
		sleep:          time.Sleep,
	}
}

type contentsResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

// ReadJSON fetches the document at path. A missing file yields nil without an
// error; every other failure is labeled with the path.
func (c *Client) ReadJSON(ctx context.Context, path string) (json.RawMessage, error) {
	c.waitForQuota(ctx)

	content, _, found, err := c.getFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return content, nil
}

// WriteJSON serializes doc with stable human-readable formatting and commits
// it to path. Conflicts are retried up to the configured attempt count; a
// rate-limit response with a known reset time is waited out without consuming
// an attempt.
func (c *Client) WriteJSON(ctx context.Context, path string, doc any, message string) error {
	content, err := marshalStable(doc)
	if err != nil {
		return errors.StorageError(fmt.Sprintf("failed to serialize document %s", path), err, map[string]interface{}{"path": path})
	}

	var lastConflict error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		c.waitForQuota(ctx)

		_, sha, _, err := c.getFile(ctx, path)
		if err != nil {
			return err
		}

		resp, err := c.putFile(ctx, path, content, message, sha)
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
			c.sleep(c.postWriteDelay)
			return nil

		case resp.StatusCode == http.StatusConflict:
			lastConflict = fmt.Errorf("status %d", resp.StatusCode)
			logger.Logger.Warn("document update conflict, retrying",
				"path", path, "attempt", attempt+1, "max_attempts", c.maxRetries)
			c.sleep(c.conflictDelay)
			continue

		case isRateLimited(resp):
			reset, ok := rateLimitReset(resp)
			if !ok {
				return errors.RateLimitError(fmt.Sprintf("store rate limit exceeded writing %s", path), nil,
					map[string]interface{}{"path": path})
			}
			wait := time.Until(reset) + time.Second
			if wait > 0 {
				logger.Logger.Warn("store rate limited, waiting for reset", "path", path, "wait", wait)
				c.sleep(wait)
			}
			// Rate-limit waits do not consume a retry attempt.
			attempt--
			continue

		default:
			return errors.StorageError(fmt.Sprintf("store rejected write to %s", path),
				fmt.Errorf("status %d: %s", resp.StatusCode, resp.body),
				map[string]interface{}{"path": path})
		}
	}

	return errors.ConflictError(fmt.Sprintf("update conflict on %s: retries exhausted", path), lastConflict,
		map[string]interface{}{"path": path, "attempts": c.maxRetries})
}

func (c *Client) getFile(ctx context.Context, path string) (content []byte, sha string, found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentsURL(path), nil)
	if err != nil {
		return nil, "", false, errors.StorageError(fmt.Sprintf("failed to build request for %s", path), err, nil)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", false, errors.StorageError(fmt.Sprintf("failed to read %s", path), err, map[string]interface{}{"path": path})
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", false, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, "", false, errors.StorageError(fmt.Sprintf("store returned status %d for %s", resp.StatusCode, path),
			fmt.Errorf("%s", string(body)), map[string]interface{}{"path": path})
	}

	var decoded contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, "", false, errors.StorageError(fmt.Sprintf("failed to decode contents response for %s", path), err,
			map[string]interface{}{"path": path})
	}

	// The contents API base64-encodes file bodies with embedded newlines.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(decoded.Content, "\n", ""))
	if err != nil {
		return nil, "", false, errors.StorageError(fmt.Sprintf("failed to decode content of %s", path), err,
			map[string]interface{}{"path": path})
	}

	return raw, decoded.SHA, true, nil
}

type putResult struct {
	StatusCode  int
	body        string
	resetHeader string
}

func (c *Client) putFile(ctx context.Context, path string, content []byte, message, sha string) (*putResult, error) {
	payload := putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     sha,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.StorageError(fmt.Sprintf("failed to marshal write request for %s", path), err, nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return nil, errors.StorageError(fmt.Sprintf("failed to build write request for %s", path), err, nil)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.StorageError(fmt.Sprintf("failed to write %s", path), err, map[string]interface{}{"path": path})
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	return &putResult{
		StatusCode:  resp.StatusCode,
		body:        string(respBody),
		resetHeader: resp.Header.Get("X-RateLimit-Reset"),
	}, nil
}

// waitForQuota proactively checks remaining API quota and sleeps until reset
// when it is nearly exhausted. Quota check failures never block the caller.
func (c *Client) waitForQuota(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/rate_limit", nil)
	if err != nil {
		return
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	var decoded struct {
		Resources struct {
			Core struct {
				Remaining int   `json:"remaining"`
				Reset     int64 `json:"reset"`
			} `json:"core"`
		} `json:"resources"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return
	}

	if decoded.Resources.Core.Remaining >= c.quotaThreshold {
		return
	}

	wait := time.Until(time.Unix(decoded.Resources.Core.Reset, 0)) + time.Second
	if wait > 0 {
		logger.Logger.Warn("store quota nearly exhausted, waiting for reset",
			"remaining", decoded.Resources.Core.Remaining, "wait", wait)
		c.sleep(wait)
	}
}

func (c *Client) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/contents/%s", c.apiBase, c.repo, path)
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
}

func isRateLimited(resp *putResult) bool {
	return resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests
}

// rateLimitReset pulls the reset time out of a rate-limited response body's
// accompanying headers captured at request time. The contents API reports the
// reset as a Unix epoch in X-RateLimit-Reset.
func rateLimitReset(resp *putResult) (time.Time, bool) {
	if resp.resetHeader == "" {
		return time.Time{}, false
	}
	epoch, err := strconv.ParseInt(resp.resetHeader, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(epoch, 0), true
}

// marshalStable renders doc as indented UTF-8 JSON without HTML escaping so
// commits stay human-readable and diffs stay minimal.
func marshalStable(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
