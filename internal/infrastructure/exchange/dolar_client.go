package exchange

import (
	"context"
	"fmt"
	"strings"

	"github.com/agro/backend/internal/application/currency"
	"github.com/agro/backend/internal/infrastructure/config"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// officialRatePath is the DolarApi endpoint for the official dollar quote.
const officialRatePath = "/v1/dolares/oficial"

// DolarAPIClient fetches the official ARS-per-USD sell rate from dolarapi.com.
type DolarAPIClient struct {
	httpClient *resty.Client
}

// NewDolarAPIClient builds the rate client from the exchange configuration.
func NewDolarAPIClient(cfg config.ExchangeConfig) *DolarAPIClient {
	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	return &DolarAPIClient{httpClient: restyClient}
}

// officialQuote mirrors the DolarApi response payload. Only the sell side is
// used; purchases and sales both normalize against it.
type officialQuote struct {
	Compra             decimal.Decimal `json:"compra"`
	Venta              decimal.Decimal `json:"venta"`
	Casa               string          `json:"casa"`
	Nombre             string          `json:"nombre"`
	FechaActualizacion string          `json:"fechaActualizacion"`
}

// CurrentRate returns the current official sell rate
func (c *DolarAPIClient) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	var quote officialQuote
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&quote).
		Get(officialRatePath)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch exchange rate: %w", err)
	}
	if resp.IsError() {
		return decimal.Zero, fmt.Errorf("exchange rate oracle returned status %d", resp.StatusCode())
	}
	if quote.Venta.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("exchange rate oracle returned non-positive rate %s", quote.Venta)
	}
	return quote.Venta, nil
}

var _ currency.RateProvider = (*DolarAPIClient)(nil)
