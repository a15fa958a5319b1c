package content

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"travel_assistant/internal/adapters/observability"
	"travel_assistant/internal/domain"
)

// Client reads plans, FAQs and contact details from the content backend
// that the admin screens publish to.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("content API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ListPlanIDs accepts either a bare list of plan objects, a {"ids": [...]}
// document or a {"data": [...]} envelope.
func (c *Client) ListPlanIDs(ctx context.Context) ([]int64, error) {
	var raw json.RawMessage
	if err := c.getFirst(ctx, "plans", []string{
		c.base + "/plans",
		c.base + "/travel-plans",
	}, &raw); err != nil {
		return nil, err
	}
	return decodeIDs(raw)
}

func (c *Client) GetPlan(ctx context.Context, id int64) (map[string]any, error) {
	var out map[string]any
	return out, c.getFirst(ctx, "plan", []string{
		fmt.Sprintf("%s/plans/%d", c.base, id),
		fmt.Sprintf("%s/travel-plans/%d", c.base, id),
	}, &out)
}

func (c *Client) GetFAQs(ctx context.Context) ([]map[string]any, error) {
	var raw json.RawMessage
	if err := c.getFirst(ctx, "faqs", []string{c.base + "/faqs"}, &raw); err != nil {
		return nil, err
	}
	return decodeList(raw)
}

func (c *Client) GetContact(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	return out, c.getFirst(ctx, "contact", []string{
		c.base + "/contact",
		c.base + "/contact-info",
	}, &out)
}

func decodeList(raw json.RawMessage) ([]map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var env struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("content: decode list: %w", err)
	}
	return env.Data, nil
}

func decodeIDs(raw json.RawMessage) ([]int64, error) {
	var ids struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.Unmarshal(raw, &ids); err == nil && len(ids.IDs) > 0 {
		return ids.IDs, nil
	}
	list, err := decodeList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(list))
	for _, m := range list {
		switch v := m["id"].(type) {
		case float64:
			out = append(out, int64(v))
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				out = append(out, n)
			}
		}
	}
	return out, nil
}

// getFirst tries each URL in order, moving on only when the previous one 404s.
func (c *Client) getFirst(ctx context.Context, endpoint string, urls []string, out any) error {
	var last error
	for _, u := range urls {
		if err := c.get(ctx, endpoint, u, out); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				last = err
				continue
			}
			return err
		}
		return nil
	}
	if last != nil {
		return last
	}
	return errors.New("content: no candidate URL succeeded")
}

// get retries on 429 and transient 5xx, honoring Retry-After when present.
func (c *Client) get(ctx context.Context, endpoint, url string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-API-Key", c.key)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "travel-assistant/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("content", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("content", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return domain.ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return domain.ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return domain.ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("content: remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("content: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter understands both the seconds and HTTP-date forms; 0 means absent.
func retryAfter(resp *http.Response) time.Duration {
	h := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms with up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	return base + time.Duration(0.5*float64(b[0])/255.0*float64(base))
}
