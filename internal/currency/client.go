package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/project-budget/go-budget-backend/config"
	"github.com/project-budget/go-budget-backend/internal/budget/domain"
)

const DefaultTimeout = 10 * time.Second

// Client calls the historical exchange-rate provider. One outbound GET
// per Convert call, no retries, no caching.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(cfg config.CurrencyConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// providerResponse is the provider's wire shape. Pointer fields
// distinguish absent from zero so the result can fall back to the
// caller's inputs.
type providerResponse struct {
	Result           string   `json:"result"`
	ErrorType        string   `json:"error_type"`
	OriginalAmount   *float64 `json:"original_amount"`
	BaseCurrency     string   `json:"base_currency"`
	TargetCurrency   string   `json:"target_currency"`
	ConversionRate   float64  `json:"conversion_rate"`
	Date             string   `json:"date"`
	ConversionResult struct {
		ConvertedAmount float64 `json:"converted_amount"`
	} `json:"conversion_result"`
}

// Convert values amount in fromCurrency as toCurrency on the given
// calendar date. Inputs are checked before any network activity.
//
// Result labels echo the provider's payload where present and fall back
// to the caller's inputs where absent, so one source of truth wins even
// when the provider reformats the amount.
func (c *Client) Convert(ctx context.Context, amount float64, fromCurrency, toCurrency string, year, month, day int) (*domain.Conversion, error) {
	if err := validateInputs(amount, fromCurrency, toCurrency, year, month, day); err != nil {
		return nil, err
	}
	if c.apiKey == "" {
		return nil, domain.E(domain.KindConfig, "currency API key not configured")
	}

	reqURL := c.buildURL(fromCurrency, year, month, day, amount)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.Wrap(domain.KindNetwork, "create request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, domain.Wrap(domain.KindTimeout, "request timeout", err)
		}
		return nil, domain.Wrap(domain.KindNetwork, "network error", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, domain.Wrap(domain.KindTimeout, "request timeout", err)
		}
		return nil, domain.Wrap(domain.KindNetwork, "network error", err)
	}

	var pr providerResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, domain.Wrap(domain.KindParse, "failed to parse API response", err)
	}

	if pr.Result != "success" {
		errType := pr.ErrorType
		if errType == "" {
			errType = "unknown error"
		}
		return nil, domain.E(domain.KindProvider, "API error: "+errType)
	}

	conv := &domain.Conversion{
		OriginalAmount:   amount,
		OriginalCurrency: fromCurrency,
		ConvertedAmount:  round2(pr.ConversionResult.ConvertedAmount),
		TargetCurrency:   toCurrency,
		ConversionRate:   pr.ConversionRate,
		Date:             pr.Date,
	}
	if pr.OriginalAmount != nil {
		conv.OriginalAmount = *pr.OriginalAmount
	}
	if pr.BaseCurrency != "" {
		conv.OriginalCurrency = pr.BaseCurrency
	}
	if pr.TargetCurrency != "" {
		conv.TargetCurrency = pr.TargetCurrency
	}
	if conv.Date == "" {
		conv.Date = fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}
	return conv, nil
}

// ConvertToTTD values amount in the designated secondary currency.
func (c *Client) ConvertToTTD(ctx context.Context, amount float64, fromCurrency string, year, month, day int) (*domain.Conversion, error) {
	return c.Convert(ctx, amount, fromCurrency, "TTD", year, month, day)
}

func (c *Client) buildURL(fromCurrency string, year, month, day int, amount float64) string {
	return fmt.Sprintf("%s/%s/history/%s/%d/%02d/%02d/%s",
		c.baseURL, c.apiKey, fromCurrency, year, month, day,
		strconv.FormatFloat(amount, 'f', -1, 64))
}

func validateInputs(amount float64, fromCurrency, toCurrency string, year, month, day int) error {
	if amount <= 0 {
		return domain.E(domain.KindInvalidInput, "invalid amount: must be greater than 0")
	}
	if fromCurrency == "" || toCurrency == "" {
		return domain.E(domain.KindInvalidInput, "invalid currency codes")
	}
	if year <= 0 || month <= 0 || day <= 0 {
		return domain.E(domain.KindInvalidInput, "invalid date parameters")
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var uerr *url.Error
	return errors.As(err, &uerr) && uerr.Timeout()
}

// round2 rounds to two decimals with decimal arithmetic rather than
// float math.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
