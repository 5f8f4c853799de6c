// Package currency converts itinerary prices between currencies.
//
// Every Converter falls back to returning the amount unchanged when a rate is
// unavailable, so callers never have to handle a conversion failure.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_ENDPOINT = "https://api.exchangerate-api.com"
	DEFAULT_TTL      = time.Hour
	DEFAULT_TIMEOUT  = 5 * time.Second
)

var log = logrus.WithField("module", "currency")

type rateTable struct {
	rates   map[string]float64
	fetched time.Time
}

// HTTPConverter 通过exchangerate-api查询汇率，按基准货币缓存
type HTTPConverter struct {
	endpoint string
	ttl      time.Duration
	client   *http.Client

	cache *xsync.MapOf[string, rateTable]
	now   func() time.Time
}

type Option func(*HTTPConverter)

func WithTTL(ttl time.Duration) Option {
	return func(c *HTTPConverter) { c.ttl = ttl }
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPConverter) { c.client = client }
}

func NewHTTPConverter(endpoint string, opts ...Option) *HTTPConverter {
	if endpoint == "" {
		endpoint = DEFAULT_ENDPOINT
	}
	c := &HTTPConverter{
		endpoint: strings.TrimRight(endpoint, "/"),
		ttl:      DEFAULT_TTL,
		client:   &http.Client{Timeout: DEFAULT_TIMEOUT},
		cache:    xsync.NewMapOf[string, rateTable](),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert 将amount从from转换为to
// 汇率服务不可用时原样返回amount；基准货币表中没有to时汇率按1处理
func (c *HTTPConverter) Convert(ctx context.Context, amount float64, from, to string) float64 {
	from, to = normalize(from), normalize(to)
	if from == to {
		return amount
	}
	rates, err := c.rates(ctx, from)
	if err != nil {
		log.Warnf("failed to fetch conversion rate %s->%s: %v", from, to, err)
		return amount
	}
	rate, ok := rates[to]
	if !ok {
		log.Warnf("no conversion rate %s->%s, keep amount unchanged", from, to)
		return amount
	}
	return amount * rate
}

func (c *HTTPConverter) rates(ctx context.Context, base string) (map[string]float64, error) {
	if t, ok := c.cache.Load(base); ok && c.now().Sub(t.fetched) < c.ttl {
		return t.rates, nil
	}
	rates, err := c.fetch(ctx, base)
	if err != nil {
		return nil, err
	}
	c.cache.Store(base, rateTable{rates: rates, fetched: c.now()})
	return rates, nil
}

type latestResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

func (c *HTTPConverter) fetch(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/v4/latest/%s", c.endpoint, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code %d from %s", res.StatusCode, url)
	}
	var body latestResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	log.Debugf("fetched %d rates for %s", len(body.Rates), base)
	return body.Rates, nil
}

// Static 固定汇率表，键为from+to（如"INRUSD"）
type Static map[string]float64

func (s Static) Convert(ctx context.Context, amount float64, from, to string) float64 {
	from, to = normalize(from), normalize(to)
	if from == to {
		return amount
	}
	if rate, ok := s[from+to]; ok {
		return amount * rate
	}
	if rate, ok := s[to+from]; ok && rate != 0 {
		return amount / rate
	}
	return amount
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
