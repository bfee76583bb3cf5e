package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// DefaultBaseURL is the public Frankfurter API.
const DefaultBaseURL = "https://api.frankfurter.app"

var errRateMissing = errors.New("conversion rate missing in response")

// FrankfurterClient is a client for frankfurter.app exchange rates API.
type FrankfurterClient struct {
	baseURL    string
	httpClient *http.Client
}

type frankfurterResponse struct {
	Base  string                 `json:"base"`
	Date  string                 `json:"date"`
	Rates map[string]json.Number `json:"rates"`
}

// NewFrankfurterClient creates a Frankfurter API client. A nil transport
// uses http.DefaultTransport.
func NewFrankfurterClient(baseURL string, timeout time.Duration, transport http.RoundTripper) *FrankfurterClient {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &FrankfurterClient{
		baseURL: trimmed,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Rate returns the latest rate from one currency to another.
func (c *FrankfurterClient) Rate(ctx context.Context, from, to models.Currency) (Rate, error) {
	f := normalize(from)
	t := normalize(to)
	if f == "" || t == "" {
		return Rate{}, errors.New("from and to currencies are required")
	}
	if f == t {
		return identityRate(f), nil
	}

	endpoint := fmt.Sprintf("%s/latest?from=%s&to=%s",
		c.baseURL,
		url.QueryEscape(string(f)),
		url.QueryEscape(string(t)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Rate{}, fmt.Errorf("failed to create conversion request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Rate{}, fmt.Errorf("failed to request conversion rate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Rate{}, fmt.Errorf("exchange API returned status %d", resp.StatusCode)
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var payload frankfurterResponse
	if err := decoder.Decode(&payload); err != nil {
		return Rate{}, fmt.Errorf("failed to decode conversion response: %w", err)
	}

	rateStr, ok := payload.Rates[string(t)]
	if !ok {
		return Rate{}, errRateMissing
	}

	value, err := decimal.NewFromString(rateStr.String())
	if err != nil {
		return Rate{}, fmt.Errorf("failed to parse conversion rate: %w", err)
	}
	if err := validateConversionRate(value); err != nil {
		return Rate{}, err
	}

	rateDate, err := time.Parse(models.DateLayout, payload.Date)
	if err != nil {
		return Rate{}, fmt.Errorf("failed to parse conversion date: %w", err)
	}

	return Rate{From: f, To: t, Value: value, Date: rateDate}, nil
}

// Convert converts amount using the latest rate. Zero and negative amounts
// are allowed since account balances can be either.
func (c *FrankfurterClient) Convert(ctx context.Context, amount decimal.Decimal, from, to models.Currency) (ConversionResult, error) {
	r, err := c.Rate(ctx, from, to)
	if err != nil {
		return ConversionResult{}, err
	}
	return applyRate(amount, r), nil
}

func normalize(c models.Currency) models.Currency {
	return models.Currency(strings.ToUpper(strings.TrimSpace(string(c))))
}
