package lottoapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/ArowuTest/lotto645-backend/pkg/kvstore"
	"github.com/cenkalti/backoff/v4"
)

var (
	// ErrDrawNotFound means the round does not exist or is not drawn yet
	ErrDrawNotFound = errors.New("draw not found or not yet drawn")
	// ErrLatestUnknown means probing found no drawn round at all
	ErrLatestUnknown = errors.New("unable to determine latest draw")
)

// firstDrawDate is the date of round 1; rounds are weekly on Saturdays
var firstDrawDate = time.Date(2002, time.December, 7, 20, 45, 0, 0, time.FixedZone("KST", 9*60*60))

// Client fetches official draw results
type Client struct {
	BaseURL    string
	MockAPI    bool
	MaxRetries int
	CacheTTL   time.Duration

	// InitialBackoff is the first retry delay
	InitialBackoff time.Duration

	client *http.Client
	cache  kvstore.Store
	now    func() time.Time
}

// Draw is one official result
type Draw struct {
	DrawNumber int    `json:"round"`
	Date       string `json:"date"`
	Numbers    [6]int `json:"nums"`
	Bonus      int    `json:"bonus"`
}

// drawResponse mirrors the official JSON payload
type drawResponse struct {
	ReturnValue string `json:"returnValue"`
	DrwNo       int    `json:"drwNo"`
	DrwNoDate   string `json:"drwNoDate"`
	DrwtNo1     int    `json:"drwtNo1"`
	DrwtNo2     int    `json:"drwtNo2"`
	DrwtNo3     int    `json:"drwtNo3"`
	DrwtNo4     int    `json:"drwtNo4"`
	DrwtNo5     int    `json:"drwtNo5"`
	DrwtNo6     int    `json:"drwtNo6"`
	BnusNo      int    `json:"bnusNo"`
}

func (r drawResponse) toDraw() Draw {
	d := Draw{
		DrawNumber: r.DrwNo,
		Date:       r.DrwNoDate,
		Numbers:    [6]int{r.DrwtNo1, r.DrwtNo2, r.DrwtNo3, r.DrwtNo4, r.DrwtNo5, r.DrwtNo6},
		Bonus:      r.BnusNo,
	}
	sort.Ints(d.Numbers[:])
	return d
}

// NewClient creates a new official results client. cache may be nil.
func NewClient(baseURL string, mockAPI bool, cache kvstore.Store) *Client {
	return &Client{
		BaseURL:        baseURL,
		MockAPI:        mockAPI,
		MaxRetries:     2,
		CacheTTL:       time.Hour,
		InitialBackoff: 200 * time.Millisecond,
		client:         &http.Client{Timeout: 10 * time.Second},
		cache:          cache,
		now:            time.Now,
	}
}

// SetTimeout changes the per-request HTTP timeout
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.client.Timeout = d
	}
}

// FetchDraw returns round n
func (c *Client) FetchDraw(ctx context.Context, n int) (Draw, error) {
	if n <= 0 {
		return Draw{}, fmt.Errorf("invalid draw number %d", n)
	}
	if c.MockAPI {
		return c.mockFetchDraw(n)
	}

	key := "round/" + strconv.Itoa(n)
	var cached Draw
	if c.getCache(key, &cached) {
		return cached, nil
	}

	resp, err := c.requestDraw(ctx, n)
	if err != nil {
		return Draw{}, err
	}
	if resp.ReturnValue != "success" {
		return Draw{}, fmt.Errorf("round %d: %w", n, ErrDrawNotFound)
	}

	d := resp.toDraw()
	c.setCache(key, d)
	return d, nil
}

// FetchRange returns the drawn rounds in start..end, ascending. Rounds that
// are not drawn are skipped. On any other error the rounds fetched so far
// are returned with it.
func (c *Client) FetchRange(ctx context.Context, start, end int) ([]Draw, error) {
	if start < 1 {
		start = 1
	}
	if start > end {
		return nil, fmt.Errorf("invalid range %d..%d", start, end)
	}

	draws := make([]Draw, 0, end-start+1)
	for n := start; n <= end; n++ {
		d, err := c.FetchDraw(ctx, n)
		if errors.Is(err, ErrDrawNotFound) {
			continue
		}
		if err != nil {
			return draws, err
		}
		draws = append(draws, d)
	}
	return draws, nil
}

// LatestDrawNumber finds the newest drawn round by doubling from 1024 and
// then binary searching between the last hit and the first miss
func (c *Client) LatestDrawNumber(ctx context.Context) (int, error) {
	if c.MockAPI {
		return c.mockLatest(), nil
	}

	const key = "latest"
	var cached int
	if c.getCache(key, &cached) && cached > 0 {
		return cached, nil
	}

	// a probe that failed in transport counts as a miss, so the answer is
	// only cached when every probe got a definite reply
	degraded := false
	exists := func(n int) (bool, error) {
		ok, definite, err := c.exists(ctx, n)
		if !definite {
			degraded = true
		}
		return ok, err
	}

	n, lastOK := 1024, 0
	for i := 0; i < 15; i++ {
		ok, err := exists(n)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		lastOK = n
		n *= 2
	}

	if lastOK == 0 {
		for _, a := range []int{1000, 900, 800, 700, 600, 512, 400, 300, 256, 128, 64, 32, 16, 8, 4, 2, 1} {
			ok, err := exists(a)
			if err != nil {
				return 0, err
			}
			if ok {
				lastOK = a
				n = a * 2
				break
			}
		}
		if lastOK == 0 {
			return 0, ErrLatestUnknown
		}
	}

	lo, hi := lastOK, n
	for lo+1 < hi {
		mid := (lo + hi) / 2
		ok, err := exists(mid)
		if err != nil {
			return 0, err
		}
		if ok {
			lo = mid
		} else {
			hi = mid
		}
	}

	if degraded {
		slog.Warn("Latest round found with failed probes, not caching", "round", lo)
		return lo, nil
	}
	c.setCache(key, lo)
	return lo, nil
}

// exists reports whether round n is drawn. definite is false when the request
// failed for a reason other than the round not being drawn; such rounds are
// reported as not drawn. A cancelled context is returned as an error.
func (c *Client) exists(ctx context.Context, n int) (drawn, definite bool, err error) {
	_, err = c.FetchDraw(ctx, n)
	if err == nil {
		return true, true, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, false, ctxErr
	}
	if errors.Is(err, ErrDrawNotFound) {
		return false, true, nil
	}
	slog.Debug("Probe request failed", "round", n, "error", err)
	return false, false, nil
}

func (c *Client) requestDraw(ctx context.Context, n int) (drawResponse, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return drawResponse{}, fmt.Errorf("invalid base url: %w", err)
	}
	u = u.JoinPath("common.do")
	q := u.Query()
	q.Set("method", "getLottoNumber")
	q.Set("drwNo", strconv.Itoa(n))
	u.RawQuery = q.Encode()

	var out drawResponse
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0")
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("official api returned %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("official api returned %d", resp.StatusCode))
		}

		var body drawResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			// the endpoint answers with an HTML page for unknown rounds
			body = drawResponse{ReturnValue: "fail"}
		}
		out = body
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.InitialBackoff
	retries := c.MaxRetries
	if retries < 0 {
		retries = 0
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(retries)), ctx)

	err = backoff.RetryNotify(operation, policy, func(err error, next time.Duration) {
		slog.Warn("Official API request failed, retrying", "round", n, "error", err, "next", next)
	})
	if err != nil {
		return drawResponse{}, fmt.Errorf("fetch round %d: %w", n, err)
	}
	return out, nil
}

func (c *Client) getCache(key string, v any) bool {
	if c.cache == nil {
		return false
	}
	found, err := c.cache.GetAny(key, v)
	if err != nil {
		slog.Warn("Official API cache read failed", "key", key, "error", err)
		return false
	}
	return found
}

func (c *Client) setCache(key string, v any) {
	if c.cache == nil {
		return
	}
	if err := c.cache.SetAny(key, v, c.CacheTTL); err != nil {
		slog.Warn("Official API cache write failed", "key", key, "error", err)
	}
}

// mockLatest counts weekly rounds since round 1
func (c *Client) mockLatest() int {
	elapsed := c.now().Sub(firstDrawDate)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed/(7*24*time.Hour)) + 1
}

// mockFetchDraw returns a deterministic synthetic result for round n
func (c *Client) mockFetchDraw(n int) (Draw, error) {
	if n > c.mockLatest() {
		return Draw{}, fmt.Errorf("round %d: %w", n, ErrDrawNotFound)
	}

	rng := rand.New(rand.NewPCG(uint64(n), 645))
	picked := rng.Perm(45)[:7]
	d := Draw{
		DrawNumber: n,
		Date:       firstDrawDate.AddDate(0, 0, 7*(n-1)).Format("2006-01-02"),
		Bonus:      picked[6] + 1,
	}
	for i := 0; i < 6; i++ {
		d.Numbers[i] = picked[i] + 1
	}
	sort.Ints(d.Numbers[:])
	return d, nil
}
