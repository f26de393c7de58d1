package playstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/NeuralTrust/AppVerdict/pkg/domain/app"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
)

const (
	DefaultCountry     = "us"
	DefaultLang        = "en"
	DefaultReviewCount = 5
	DefaultTimeout     = 30 * time.Second

	misspelledBusiness = "buisness"
	business           = "business"
)

var ErrBaseURLRequired = errors.New("scraper base url is required")

type Config struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	ReviewCount int           `mapstructure:"review_count"`
	Country     string        `mapstructure:"country"`
	Lang        string        `mapstructure:"lang"`
	// MaxConns caps concurrent connections to the scraper service.
	MaxConns int `mapstructure:"max_conns"`
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ReviewCount <= 0 {
		c.ReviewCount = DefaultReviewCount
	}
	if c.Country == "" {
		c.Country = DefaultCountry
	}
	if c.Lang == "" {
		c.Lang = DefaultLang
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

// Client talks to a store-scraping service that returns app records as JSON.
// It also serves as the developer directory for the feature extractor.
type Client interface {
	Search(ctx context.Context, query string, topN int) ([]app.RawAppRecord, error)
	DeveloperApps(ctx context.Context, developerID string) ([]app.RawAppRecord, error)
	AppCount(ctx context.Context, developerID string) (int, error)
}

type client struct {
	cfg     Config
	http    httpx.Client
	breaker httpx.CircuitBreaker
	logger  *logrus.Logger
}

func NewClient(logger *logrus.Logger, cfg Config, httpClient httpx.Client, breaker httpx.CircuitBreaker) (Client, error) {
	cfg = cfg.withDefaults()
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid scraper base url: %w", err)
	}
	return &client{
		cfg:     cfg,
		http:    httpClient,
		breaker: breaker,
		logger:  logger,
	}, nil
}

// Search returns at most topN records for query. An empty result for the
// common "buisness" misspelling is retried once with the corrected query.
func (c *client) Search(ctx context.Context, query string, topN int) ([]app.RawAppRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query is required")
	}
	if topN <= 0 {
		return []app.RawAppRecord{}, nil
	}

	c.logger.WithFields(logrus.Fields{
		"query":   query,
		"country": c.cfg.Country,
		"top_n":   topN,
	}).Info("searching apps")

	params := url.Values{}
	params.Set("q", query)
	params.Set("n", strconv.Itoa(topN))
	params.Set("review_count", strconv.Itoa(c.cfg.ReviewCount))
	params.Set("country", c.cfg.Country)
	params.Set("lang", c.cfg.Lang)

	records, err := c.fetch(ctx, c.cfg.BaseURL+"/apps?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	if len(records) == 0 {
		c.logger.WithField("query", query).Warn("no results found, check the spelling or try another query")
		if strings.EqualFold(query, misspelledBusiness) {
			c.logger.Infof("retrying with corrected query %q", business)
			return c.Search(ctx, business, topN)
		}
		return records, nil
	}
	if len(records) > topN {
		records = records[:topN]
	}
	return records, nil
}

func (c *client) DeveloperApps(ctx context.Context, developerID string) ([]app.RawAppRecord, error) {
	if strings.TrimSpace(developerID) == "" {
		return nil, errors.New("developer id is required")
	}
	params := url.Values{}
	params.Set("country", c.cfg.Country)
	params.Set("lang", c.cfg.Lang)

	endpoint := fmt.Sprintf("%s/developers/%s/apps?%s", c.cfg.BaseURL, url.PathEscape(developerID), params.Encode())
	records, err := c.fetch(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("developer %s apps: %w", developerID, err)
	}
	return records, nil
}

func (c *client) AppCount(ctx context.Context, developerID string) (int, error) {
	records, err := c.DeveloperApps(ctx, developerID)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (c *client) fetch(ctx context.Context, endpoint string) ([]app.RawAppRecord, error) {
	var resp *httpx.Response
	call := func() error {
		r, err := c.http.Get(ctx, endpoint)
		if err != nil {
			return err
		}
		// 4xx is the caller's problem and must not trip the breaker.
		if r.StatusCode >= 500 {
			return &StatusError{Code: r.StatusCode, Body: truncate(string(r.Body), 256)}
		}
		resp = r
		return nil
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(call)
	} else {
		err = call()
	}
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(string(resp.Body), 256)}
	}
	return app.DecodeRecords(resp.Body)
}

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scraper returned status %d: %s", e.Code, e.Body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
