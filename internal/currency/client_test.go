package currency

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-budget/go-budget-backend/config"
	"github.com/project-budget/go-budget-backend/internal/budget/domain"
)

func testClient(baseURL string) *Client {
	return New(config.CurrencyConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	})
}

func TestConvert_InputValidation(t *testing.T) {
	client := testClient("http://unused.invalid")
	ctx := context.Background()

	cases := []struct {
		name    string
		amount  float64
		from    string
		to      string
		y, m, d int
		message string
	}{
		{"zero amount", 0, "USD", "TTD", 2020, 1, 1, "invalid amount"},
		{"negative amount", -5, "USD", "TTD", 2020, 1, 1, "invalid amount"},
		{"empty from", 100, "", "TTD", 2020, 1, 1, "invalid currency codes"},
		{"empty to", 100, "USD", "", 2020, 1, 1, "invalid currency codes"},
		{"zero year", 100, "USD", "TTD", 0, 1, 1, "invalid date"},
		{"zero month", 100, "USD", "TTD", 2020, 0, 1, "invalid date"},
		{"zero day", 100, "USD", "TTD", 2020, 1, 0, "invalid date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.Convert(ctx, tc.amount, tc.from, tc.to, tc.y, tc.m, tc.d)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestConvert_MissingAPIKey(t *testing.T) {
	client := New(config.CurrencyConfig{BaseURL: "http://unused.invalid"})

	_, err := client.Convert(context.Background(), 100, "USD", "TTD", 2020, 1, 1)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConfig))
}

func TestConvert_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/history/USD/2019/03/07/635000", r.URL.Path)
		fmt.Fprint(w, `{
			"result": "success",
			"original_amount": 635000,
			"base_currency": "USD",
			"target_currency": "TTD",
			"conversion_rate": 6.7741,
			"date": "2019-03-07",
			"conversion_result": {"converted_amount": 4301553.50431}
		}`)
	}))
	defer server.Close()

	client := testClient(server.URL)
	conv, err := client.Convert(context.Background(), 635000, "USD", "TTD", 2019, 3, 7)
	require.NoError(t, err)

	assert.Equal(t, 635000.0, conv.OriginalAmount)
	assert.Equal(t, "USD", conv.OriginalCurrency)
	assert.Equal(t, "TTD", conv.TargetCurrency)
	assert.Equal(t, 6.7741, conv.ConversionRate)
	assert.Equal(t, "2019-03-07", conv.Date)
	assert.Equal(t, 4301553.5, conv.ConvertedAmount)
}

func TestConvert_EchoesProviderLabels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Provider rounds the amount and reformats codes
		fmt.Fprint(w, `{
			"result": "success",
			"original_amount": 100.5,
			"base_currency": "usd",
			"target_currency": "ttd",
			"conversion_rate": 6.8,
			"date": "2020-06-15",
			"conversion_result": {"converted_amount": 683.4}
		}`)
	}))
	defer server.Close()

	client := testClient(server.URL)
	conv, err := client.Convert(context.Background(), 100.52, "USD", "TTD", 2020, 6, 15)
	require.NoError(t, err)

	assert.Equal(t, 100.5, conv.OriginalAmount)
	assert.Equal(t, "usd", conv.OriginalCurrency)
	assert.Equal(t, "ttd", conv.TargetCurrency)
}

func TestConvert_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result": "error", "error_type": "unsupported-code"}`)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Convert(context.Background(), 100, "USD", "XXX", 2020, 1, 1)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindProvider))
	assert.Contains(t, err.Error(), "unsupported-code")
}

func TestConvert_ProviderError_NoType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result": "error"}`)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Convert(context.Background(), 100, "USD", "TTD", 2020, 1, 1)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindProvider))
	assert.Contains(t, err.Error(), "unknown error")
}

func TestConvert_ParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>Bad Gateway</html>`)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Convert(context.Background(), 100, "USD", "TTD", 2020, 1, 1)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindParse))
}

func TestConvert_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := testClient(server.URL)
	_, err := client.Convert(context.Background(), 100, "USD", "TTD", 2020, 1, 1)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNetwork))
}

func TestConvert_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	client := New(config.CurrencyConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 50 * time.Millisecond,
	})

	_, err := client.Convert(context.Background(), 100, "USD", "TTD", 2020, 1, 1)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindTimeout))
}

func TestConvertToTTD(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"result": "success",
			"base_currency": "USD",
			"target_currency": "TTD",
			"conversion_rate": 6.8,
			"date": "2020-01-01",
			"conversion_result": {"converted_amount": 680}
		}`)
	}))
	defer server.Close()

	client := testClient(server.URL)
	conv, err := client.ConvertToTTD(context.Background(), 100, "USD", 2020, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "TTD", conv.TargetCurrency)
	assert.Equal(t, 680.0, conv.ConvertedAmount)
}
