package pricing_test

import (
	"testing"
	"time"

	"backoffice-service/internal/module/booking/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var rates = pricing.HallRates{
	Hourly:  decimal.NewFromInt(5000),
	Daily:   decimal.NewFromInt(30000),
	Weekly:  decimal.NewFromInt(150000),
	Monthly: decimal.NewFromInt(450000),
}

func window(hours, minutes, seconds int) (time.Time, time.Time) {
	start := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second)
	return start, end
}

func TestHallPricerTiers(t *testing.T) {
	testCases := []struct {
		name     string
		hours    int
		minutes  int
		seconds  int
		expected string
	}{
		{name: "six hours uses hourly rate", hours: 6, expected: "30000"},
		{name: "exactly eight hours stays hourly", hours: 8, expected: "40000"},
		{name: "one second past eight hours jumps to daily flat", hours: 8, seconds: 1, expected: "30000"},
		{name: "exactly twenty four hours stays daily", hours: 24, expected: "30000"},
		{name: "past a day uses weekly flat", hours: 25, expected: "150000"},
		{name: "exactly seven days stays weekly", hours: 168, expected: "150000"},
		{name: "past seven days uses monthly flat", hours: 169, expected: "450000"},
		{name: "fractional hours are not rounded up", hours: 2, minutes: 30, expected: "12500"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := window(tc.hours, tc.minutes, tc.seconds)
			p := pricing.HallPricer{Rates: rates, Start: start, End: end}

			subtotal, err := p.Subtotal()

			assert.NoError(t, err)
			assert.True(t, subtotal.Equal(decimal.RequireFromString(tc.expected)),
				"expected %s got %s", tc.expected, subtotal)
		})
	}
}

func TestHallPricerRejectsEmptyWindow(t *testing.T) {
	start, _ := window(1, 0, 0)
	p := pricing.HallPricer{Rates: rates, Start: start, End: start}

	_, err := p.Subtotal()

	assert.Error(t, err)
}

func TestHallPricerExtras(t *testing.T) {
	start, end := window(6, 0, 0)
	p := pricing.HallPricer{
		Rates: rates,
		Start: start,
		End:   end,
		Extras: []pricing.Line{
			{Quantity: 2, UnitPrice: decimal.NewFromInt(1500)},
		},
	}

	subtotal, err := p.Subtotal()

	assert.NoError(t, err)
	assert.True(t, subtotal.Equal(decimal.NewFromInt(33000)))
}

func TestTicketPricer(t *testing.T) {
	p := pricing.TicketPricer{
		Lines: []pricing.Line{
			{Quantity: 3, UnitPrice: decimal.NewFromInt(250)},
			{Quantity: 1, UnitPrice: decimal.NewFromInt(1000)},
		},
	}

	subtotal, err := p.Subtotal()

	assert.NoError(t, err)
	assert.True(t, subtotal.Equal(decimal.NewFromInt(1750)))
}

func TestTicketPricerRejectsEmptyAndNonPositive(t *testing.T) {
	_, err := pricing.TicketPricer{}.Subtotal()
	assert.Error(t, err)

	_, err = pricing.TicketPricer{
		Lines: []pricing.Line{{Quantity: 0, UnitPrice: decimal.NewFromInt(10)}},
	}.Subtotal()
	assert.Error(t, err)
}

// The end-to-end fee scenario: 6h at 5000/h with 2.5% service fee and
// 7.5% tax applied to the fee-inclusive base.
func TestBuildQuoteFeesAndTax(t *testing.T) {
	start, end := window(6, 0, 0)
	p := pricing.HallPricer{Rates: rates, Start: start, End: end}

	quote, err := pricing.BuildQuote(p, decimal.NewFromFloat(2.5), decimal.NewFromFloat(7.5))

	assert.NoError(t, err)
	assert.Equal(t, "30000", quote.Subtotal.String())
	assert.Equal(t, "750", quote.ServiceFee.String())
	assert.Equal(t, "2306.25", quote.TaxAmount.String())
	assert.Equal(t, "33056.25", quote.Total.String())
}

func TestBuildQuoteRoundsOnlyAtTheEnd(t *testing.T) {
	p := pricing.TicketPricer{
		Lines: []pricing.Line{{Quantity: 3, UnitPrice: decimal.RequireFromString("33.335")}},
	}

	quote, err := pricing.BuildQuote(p, decimal.NewFromInt(0), decimal.NewFromInt(10))

	assert.NoError(t, err)
	// 3 x 33.335 = 100.005; tax 10.0005; total 110.0055 -> 110.01 at storage
	assert.Equal(t, "100.01", quote.Subtotal.String())
	assert.Equal(t, "10", quote.TaxAmount.String())
	assert.Equal(t, "110.01", quote.Total.String())
}
