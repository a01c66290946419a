// Package api implements clients for external quotation services.
package api

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pometrix/ledger-export/internal/domain/entity"
	"github.com/pometrix/ledger-export/internal/infrastructure/logger"
)

const (
	// DefaultEndpoint is the BCU quotation web service.
	DefaultEndpoint = "https://cotizaciones.bcu.gub.uy/wscotizaciones/servlet/awsbcucotizaciones"

	// currencyUSD is the BCU code for the US dollar.
	currencyUSD = 2225
	// groupLocal selects local quotations.
	groupLocal = 2
	// statusOK is the service's success status.
	statusOK = 1
)

// BCUQuoteClient queries the Banco Central del Uruguay quotation service
// for the USD buy/sell rate of a single day.
type BCUQuoteClient struct {
	endpoint   string
	httpClient *http.Client
	logger     logger.Logger
}

// NewBCUQuoteClient creates a new BCU client. An empty endpoint uses the
// production service; a nil httpClient gets a 10 second timeout.
func NewBCUQuoteClient(endpoint string, httpClient *http.Client, log logger.Logger) *BCUQuoteClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &BCUQuoteClient{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     log,
	}
}

const requestTemplate = `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:cot="Cotiza">
  <soapenv:Body>
    <cot:WS_BCUCotizaciones.Execute>
      <cot:Entrada>
        <cot:Moneda><cot:item>%d</cot:item></cot:Moneda>
        <cot:FechaDesde>%s</cot:FechaDesde>
        <cot:FechaHasta>%s</cot:FechaHasta>
        <cot:Grupo>%d</cot:Grupo>
      </cot:Entrada>
    </cot:WS_BCUCotizaciones.Execute>
  </soapenv:Body>
</soapenv:Envelope>`

// quoteResponse mirrors the service's SOAP response. Only the fields the
// client reads are mapped.
type quoteResponse struct {
	Body struct {
		Result struct {
			Salida struct {
				Status struct {
					Status  int    `xml:"status"`
					Message string `xml:"mensaje"`
				} `xml:"respuestastatus"`
				Quotes struct {
					Items []quoteItem `xml:"datoscotizaciones.dato"`
				} `xml:"datoscotizaciones"`
			} `xml:"Salida"`
		} `xml:"WS_BCUCotizaciones.ExecuteResponse"`
	} `xml:"Body"`
}

type quoteItem struct {
	Date string `xml:"Fecha"`
	TCC  string `xml:"TCC"`
	TCV  string `xml:"TCV"`
}

// Query fetches the USD quotation published for the given day. Weekends
// never have one, so they return absent without a round trip. The feed may
// carry duplicate entries for a day; the first wins.
func (c *BCUQuoteClient) Query(ctx context.Context, date time.Time) (*entity.ExchangeRate, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("zero quotation date: %w", entity.ErrInvalidDate)
	}

	if !entity.IsBusinessDay(date) {
		c.logger.Debug("Skipping non-business day", map[string]interface{}{
			"date": date.Format("2006-01-02"),
		})
		return nil, nil
	}

	day := date.Format("2006-01-02")
	body := fmt.Sprintf(requestTemplate, currencyUSD, day, day, groupLocal)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "Execute")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quotation service returned status %d", resp.StatusCode)
	}

	var parsed quoteResponse
	if err := xml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	salida := parsed.Body.Result.Salida
	if salida.Status.Status != statusOK {
		c.logger.Debug("No quotation published", map[string]interface{}{
			"date":    day,
			"status":  salida.Status.Status,
			"message": salida.Status.Message,
		})
		return nil, nil
	}

	if len(salida.Quotes.Items) == 0 {
		return nil, nil
	}
	item := salida.Quotes.Items[0]

	buy, err := decimal.NewFromString(strings.TrimSpace(item.TCC))
	if err != nil {
		return nil, fmt.Errorf("failed to parse buy rate %q: %w", item.TCC, err)
	}
	sell, err := decimal.NewFromString(strings.TrimSpace(item.TCV))
	if err != nil {
		return nil, fmt.Errorf("failed to parse sell rate %q: %w", item.TCV, err)
	}
	if !buy.IsPositive() {
		return nil, fmt.Errorf("invalid buy rate value: %s", buy)
	}

	rateDate, err := time.Parse("2006-01-02", strings.TrimSpace(item.Date))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate date %q: %w", item.Date, err)
	}

	return &entity.ExchangeRate{
		Date: rateDate,
		Buy:  buy,
		Sell: sell,
	}, nil
}
