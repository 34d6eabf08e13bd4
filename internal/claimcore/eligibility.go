package claimcore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ErrNotEligible is the terminal "address has no claim" answer from the
// proof service. Not an error condition for the batch; callers match it
// with errors.Is.
var ErrNotEligible = errors.New("address not eligible")

const (
	eligibilityTimeout = 30 * time.Second

	DefaultEligibilityRetries = 3
	DefaultEligibilityDelay   = 2 * time.Second
)

// EligibilityClient queries the merkle-proof service for (balance, proof).
type EligibilityClient struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger

	retries int
	delay   time.Duration
}

func NewEligibilityClient(baseURL string, log *zap.Logger) *EligibilityClient {
	return &EligibilityClient{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: eligibilityTimeout},
		log:     log,
		retries: DefaultEligibilityRetries,
		delay:   DefaultEligibilityDelay,
	}
}

// SetRetryPolicy overrides the attempt count and inter-attempt delay.
// Non-positive values keep the defaults.
func (c *EligibilityClient) SetRetryPolicy(retries int, delay time.Duration) {
	if retries > 0 {
		c.retries = retries
	}
	if delay > 0 {
		c.delay = delay
	}
}

type proofResponse struct {
	Data *struct {
		Balance string   `json:"balance"`
		Proof   []string `json:"proof"`
	} `json:"data"`
}

// Check performs one query. Returns ErrNotEligible for the canonical 404,
// for a 200 with a missing/empty payload, and for a zero-balance or
// proof-less record; any other failure is transient and may be retried.
func (c *EligibilityClient) Check(ctx context.Context, address common.Address, signature string) (*EligibilityRecord, error) {
	u := fmt.Sprintf("%s?address=%s&signature=%s", c.baseURL,
		url.QueryEscape(address.Hex()), url.QueryEscape(signature))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("proof service: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Canonical negative: the address is not in the distribution.
		return nil, ErrNotEligible
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("proof service: http %d: %s", resp.StatusCode, body)
	}

	var out proofResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("proof service: decode: %w", err)
	}
	if out.Data == nil {
		// 200 without the expected shape reads as not eligible, not as an
		// outage: the server answers this way for unknown addresses.
		c.log.Warn("proof response without data field", zap.String("address", address.Hex()))
		return nil, ErrNotEligible
	}

	balance := new(big.Int)
	if out.Data.Balance != "" {
		if _, ok := balance.SetString(out.Data.Balance, 10); !ok {
			return nil, fmt.Errorf("proof service: bad balance %q", out.Data.Balance)
		}
	}
	proof := make([]common.Hash, 0, len(out.Data.Proof))
	for _, h := range out.Data.Proof {
		proof = append(proof, common.HexToHash(h))
	}

	rec := &EligibilityRecord{Address: address, Balance: balance, Proof: proof}
	if !rec.Eligible() {
		c.log.Info("address not eligible",
			zap.String("address", address.Hex()),
			zap.String("balance", balance.String()),
			zap.Int("proof_len", len(proof)))
		return nil, ErrNotEligible
	}
	return rec, nil
}

// CheckWithRetry re-invokes Check for transient failures, up to the
// configured attempt count with a fixed delay. A NotEligible answer on the
// first attempt returns immediately; after a transient failure the same
// answer does not short-circuit the remaining attempts.
func (c *EligibilityClient) CheckWithRetry(ctx context.Context, address common.Address, signature string) (*EligibilityRecord, error) {
	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		rec, err := c.Check(ctx, address, signature)
		if err == nil {
			return rec, nil
		}
		lastErr = err
		if errors.Is(err, ErrNotEligible) && attempt == 0 {
			return nil, err
		}
		c.log.Warn("eligibility attempt failed",
			zap.Int("attempt", attempt+1), zap.Int("max", c.retries), zap.Error(err))

		if attempt < c.retries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.delay):
			}
		}
	}
	return nil, lastErr
}
