// Package cbr implements the exchange-rate source against the Central Bank
// of Russia daily-rates web service (GetCursOnDate). The wire protocol is
// SOAP 1.2 over HTTP; callers only see the provider.RateSource contract.
package cbr

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/linnik/docgen/pkg/config"
	"github.com/linnik/docgen/pkg/domain"
)

const sourceName = "cbr"

// Client fetches daily exchange rates from the CBR web service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a CBR client from config.
func New(cfg config.CBR, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Name returns the source's name for logging.
func (c *Client) Name() string { return sourceName }

const envelopeTemplate = `<?xml version="1.0" encoding="utf-8"?>
<soap12:Envelope
    xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
    xmlns:xsd="http://www.w3.org/2001/XMLSchema"
    xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
  <soap12:Body>
    <GetCursOnDate xmlns="http://web.cbr.ru/">
      <On_date>%s</On_date>
    </GetCursOnDate>
  </soap12:Body>
</soap12:Envelope>`

// valuteCurs is one currency row of the GetCursOnDate response. Vcurs is the
// quoted value of Vnom units of the currency, so the per-unit rate is
// Vcurs / Vnom.
type valuteCurs struct {
	VchCode string `xml:"VchCode"`
	Vnom    string `xml:"Vnom"`
	Vcurs   string `xml:"Vcurs"`
}

// GetRate fetches the rate for the currency on the given date. Both a
// missing rate and any transport or parse failure surface as
// domain.ErrRateUnavailable; the distinction only matters for logs.
func (c *Client) GetRate(ctx context.Context, currency string, on time.Time) (*domain.ExchangeRate, error) {
	body := fmt.Sprintf(envelopeTemplate, on.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBufferString(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", domain.ErrRateUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/GetCursOnDate")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("rate request failed", "source", sourceName, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("rate request returned non-OK status",
			"source", sourceName, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: HTTP %d", domain.ErrRateUnavailable, resp.StatusCode)
	}

	rate, err := c.parseRate(resp.Body, currency)
	if err != nil {
		return nil, err
	}

	c.logger.Info("exchange rate fetched",
		"source", sourceName, "currency", currency,
		"date", on.Format("2006-01-02"), "rate", rate.String())

	return &domain.ExchangeRate{
		Currency: currency,
		Rate:     rate,
		Date:     on,
		Source:   sourceName,
	}, nil
}

// parseRate walks the SOAP response and returns the normalized per-unit rate
// for the requested currency code.
func (c *Client) parseRate(r io.Reader, currency string) (decimal.Decimal, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: parsing response: %v", domain.ErrRateUnavailable, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "ValuteCursOnDate" {
			continue
		}
		var row valuteCurs
		if err := dec.DecodeElement(&row, &start); err != nil {
			return decimal.Zero, fmt.Errorf("%w: decoding currency row: %v", domain.ErrRateUnavailable, err)
		}
		if row.VchCode != currency {
			continue
		}
		curs, err := decimal.NewFromString(row.Vcurs)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: malformed rate value %q", domain.ErrRateUnavailable, row.Vcurs)
		}
		nom, err := decimal.NewFromString(row.Vnom)
		if err != nil || nom.IsZero() {
			return decimal.Zero, fmt.Errorf("%w: malformed lot size %q", domain.ErrRateUnavailable, row.Vnom)
		}
		return curs.Div(nom), nil
	}
	return decimal.Zero, fmt.Errorf("%w: no rate for %s", domain.ErrRateUnavailable, currency)
}
