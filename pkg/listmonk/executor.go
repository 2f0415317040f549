package listmonk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/bft-labs/listmonk-mcp/pkg/log"
)

// Execute issues one call through the connected session.
//
// Connectivity failures (refused, reset, DNS, timeout) are retried up to
// MaxRetries times with delays of 1s, 2s, 4s... Any response that arrives,
// whatever its status, ends the loop and is normalized exactly once:
// 2xx yields the decoded payload, anything else an *APIError carrying the
// status. Cancelling ctx aborts the in-flight attempt and suppresses
// further retries.
func (c *Client) Execute(ctx context.Context, req Request) (Payload, error) {
	s, err := c.current()
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, s, req)
}

func (c *Client) execute(ctx context.Context, s *session, req Request) (Payload, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := resolve(c.base, req.Path)
	if err != nil {
		return nil, invalidRequest(err)
	}
	if q := encodeQuery(req.Query); q != "" {
		if target.RawQuery != "" {
			target.RawQuery += "&"
		}
		target.RawQuery += q
	}

	var body []byte
	if req.Body != nil {
		if body, err = json.Marshal(req.Body); err != nil {
			return nil, invalidRequest(fmt.Errorf("marshal request body: %w", err))
		}
	}

	proto, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
	if err != nil {
		return nil, invalidRequest(err)
	}
	for k, v := range s.headers {
		proto.Header[k] = v
	}
	requestID := uuid.NewString()
	proto.Header.Set("X-Request-ID", requestID)

	rt := route(req.Path)
	start := time.Now()
	attempt := 0

	var (
		payload Payload
		result  error
		status  int
	)
	op := func() error {
		attempt++
		c.logger.Debug("listmonk request",
			log.String("method", method),
			log.String("route", rt),
			log.String("request_id", requestID),
			log.Int("attempt", attempt))

		code, respBody, err := c.roundTrip(ctx, s, proto, body)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		status = code
		payload, result = normalize(code, respBody)
		return nil
	}
	notify := func(err error, delay time.Duration) {
		c.metrics.retry(method, rt)
		c.logger.Warn("listmonk request failed, retrying",
			log.String("method", method),
			log.String("route", rt),
			log.String("request_id", requestID),
			log.Int("attempt", attempt),
			log.Duration("delay", delay),
			log.Err(err))
	}

	var timer backoff.Timer
	if c.newTimer != nil {
		timer = c.newTimer()
	}
	err = backoff.RetryNotifyWithTimer(op, c.retryPolicy(ctx), notify, timer)
	c.metrics.observe(method, rt, status, time.Since(start))

	if err != nil {
		c.logger.Error("listmonk request failed",
			log.String("method", method),
			log.String("route", rt),
			log.String("request_id", requestID),
			log.Int("attempts", attempt),
			log.Err(err))
		return nil, transportError(err)
	}
	if result != nil {
		c.logger.Debug("listmonk returned an error",
			log.String("route", rt),
			log.String("request_id", requestID),
			log.Int("status", status),
			log.Err(result))
		return nil, result
	}
	return payload, nil
}

// roundTrip performs one attempt bounded by the configured timeout.
func (c *Client) roundTrip(ctx context.Context, s *session, proto *http.Request, body []byte) (int, []byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	req := proto.Clone(attemptCtx)
	if body != nil {
		req.Body = io.NopCloser(bytes.NewReader(body))
		req.ContentLength = int64(len(body))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	respBody, err := readResponse(resp)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// retryPolicy yields 2^n * baseDelay for attempt n, at most MaxRetries times,
// stopping early once MaxElapsedTime (if set) would be exceeded.
func (c *Client) retryPolicy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.baseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = time.Duration(math.MaxInt64)
	b.MaxElapsedTime = c.cfg.maxElapsedTime
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.cfg.maxRetries)), ctx)
}
