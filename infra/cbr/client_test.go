package cbr_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linnik/docgen/infra/cbr"
	"github.com/linnik/docgen/pkg/config"
	"github.com/linnik/docgen/pkg/domain"
)

const responseXML = `<?xml version="1.0" encoding="utf-8"?>
<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
  <soap12:Body>
    <GetCursOnDateResponse xmlns="http://web.cbr.ru/">
      <GetCursOnDateResult>
        <diffgr:diffgram xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
          <ValuteData xmlns="">
            <ValuteCursOnDate>
              <Vname>Доллар США</Vname>
              <Vnom>1</Vnom>
              <Vcurs>80.5000</Vcurs>
              <Vcode>840</Vcode>
              <VchCode>USD</VchCode>
            </ValuteCursOnDate>
            <ValuteCursOnDate>
              <Vname>Венгерских форинтов</Vname>
              <Vnom>100</Vnom>
              <Vcurs>22.1500</Vcurs>
              <Vcode>348</Vcode>
              <VchCode>HUF</VchCode>
            </ValuteCursOnDate>
          </ValuteData>
        </diffgr:diffgram>
      </GetCursOnDateResult>
    </GetCursOnDateResponse>
  </soap12:Body>
</soap12:Envelope>`

func newClient(t *testing.T, handler http.HandlerFunc) *cbr.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return cbr.New(config.CBR{URL: srv.URL, Timeout: 5 * time.Second}, slog.New(slog.DiscardHandler))
}

func TestGetRate(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/soap+xml")
		_, _ = w.Write([]byte(responseXML))
	})

	on := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	rate, err := client.GetRate(context.Background(), "USD", on)
	require.NoError(t, err)

	assert.Equal(t, "USD", rate.Currency)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("80.5")),
		"got rate %s", rate.Rate)
	assert.Equal(t, on, rate.Date)
	assert.Equal(t, "cbr", rate.Source)
}

func TestGetRateNormalizesLotSize(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(responseXML))
	})

	// HUF is quoted per 100 units: 22.15 / 100.
	rate, err := client.GetRate(context.Background(), "HUF", time.Now())
	require.NoError(t, err)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("0.2215")),
		"got rate %s", rate.Rate)
}

func TestGetRateCurrencyAbsent(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(responseXML))
	})

	_, err := client.GetRate(context.Background(), "XXX", time.Now())
	assert.True(t, errors.Is(err, domain.ErrRateUnavailable))
}

func TestGetRateServerError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetRate(context.Background(), "USD", time.Now())
	assert.True(t, errors.Is(err, domain.ErrRateUnavailable))
}

func TestGetRateMalformedResponse(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<ValuteCursOnDate><Vnom>0</Vnom><Vcurs>80</Vcurs><VchCode>USD</VchCode></ValuteCursOnDate>"))
	})

	_, err := client.GetRate(context.Background(), "USD", time.Now())
	assert.True(t, errors.Is(err, domain.ErrRateUnavailable))
}

func TestGetRateTransportError(t *testing.T) {
	client := cbr.New(config.CBR{
		URL:     "http://127.0.0.1:1", // nothing listens here
		Timeout: time.Second,
	}, slog.New(slog.DiscardHandler))

	_, err := client.GetRate(context.Background(), "USD", time.Now())
	assert.True(t, errors.Is(err, domain.ErrRateUnavailable))
}
