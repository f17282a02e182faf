package rates

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/exemptledger/internal/domain"
)

// DefaultTCMBURL is the central bank's daily rate feed.
const DefaultTCMBURL = "https://www.tcmb.gov.tr/kurlar/today.xml"

// TCMBConfig configures a TCMBSource.
type TCMBConfig struct {
	URL            string
	Client         *http.Client
	Logger         zerolog.Logger
	MaxElapsedTime time.Duration // total retry budget
}

// TCMBSource fetches rates from the central bank XML feed, retrying
// transient failures with exponential backoff.
type TCMBSource struct {
	url             string
	client          *http.Client
	logger          zerolog.Logger
	initialInterval time.Duration
	maxElapsedTime  time.Duration
}

// NewTCMBSource creates a new TCMBSource.
func NewTCMBSource(cfg TCMBConfig) *TCMBSource {
	if cfg.URL == "" {
		cfg.URL = DefaultTCMBURL
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.MaxElapsedTime == 0 {
		cfg.MaxElapsedTime = 30 * time.Second
	}

	return &TCMBSource{
		url:             cfg.URL,
		client:          cfg.Client,
		logger:          cfg.Logger,
		initialInterval: 200 * time.Millisecond,
		maxElapsedTime:  cfg.MaxElapsedTime,
	}
}

type tcmbFeed struct {
	XMLName    xml.Name       `xml:"Tarih_Date"`
	Date       string         `xml:"Date,attr"`
	Currencies []tcmbCurrency `xml:"Currency"`
}

type tcmbCurrency struct {
	Code         string `xml:"CurrencyCode,attr"`
	Unit         int64  `xml:"Unit"`
	Name         string `xml:"Isim"`
	ForexBuying  string `xml:"ForexBuying"`
	ForexSelling string `xml:"ForexSelling"`
}

// FetchRates downloads and parses the feed. Failures wrap
// domain.ErrRateUnavailable.
func (s *TCMBSource) FetchRates(ctx context.Context) (*domain.RateTable, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initialInterval
	b.MaxElapsedTime = s.maxElapsedTime

	var table *domain.RateTable
	attempt := 0

	err := backoff.Retry(func() error {
		attempt++
		t, err := s.fetch(ctx)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Str("url", s.url).
				Msg("rate feed fetch failed")
			return err
		}
		table = t
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: tcmb: %v", domain.ErrRateUnavailable, err)
	}

	return table, nil
}

func (s *TCMBSource) fetch(ctx context.Context) (*domain.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	table, err := parseTCMB(body)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	return table, nil
}

var errNoRates = errors.New("feed has no supported currencies")

func parseTCMB(body []byte) (*domain.RateTable, error) {
	var feed tcmbFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	fetchedAt := time.Now().UTC()
	if d, err := time.Parse("01/02/2006", feed.Date); err == nil {
		fetchedAt = d
	}

	table := &domain.RateTable{FetchedAt: fetchedAt}
	for _, c := range feed.Currencies {
		code := domain.Currency(strings.TrimSpace(c.Code))
		if !code.IsValid() {
			continue
		}

		buying, err := decimal.NewFromString(strings.TrimSpace(c.ForexBuying))
		if err != nil {
			return nil, fmt.Errorf("%s buying rate: %w", code, err)
		}
		selling, err := decimal.NewFromString(strings.TrimSpace(c.ForexSelling))
		if err != nil {
			return nil, fmt.Errorf("%s selling rate: %w", code, err)
		}
		if c.Unit > 1 {
			unit := decimal.NewFromInt(c.Unit)
			buying = buying.Div(unit)
			selling = selling.Div(unit)
		}

		name := currencyNames[code]
		if name == "" {
			name = c.Name
		}
		table.Rates = append(table.Rates, domain.ExchangeRate{
			Code:    code,
			Name:    name,
			Buying:  buying,
			Selling: selling,
		})
	}

	if len(table.Rates) == 0 {
		return nil, errNoRates
	}
	return table, nil
}
