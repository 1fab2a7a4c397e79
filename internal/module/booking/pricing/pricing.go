package pricing

import (
	"backoffice-service/internal/pkg/errors"
	"time"

	"github.com/shopspring/decimal"
)

// Tier boundaries for hall rentals, in hours. A duration at or below a
// boundary belongs to that tier; above the weekly boundary the monthly
// flat rate applies.
const (
	hourlyTierMaxHours = 8
	dailyTierMaxHours  = 24
	weeklyTierMaxHours = 168
)

var secondsPerHour = decimal.NewFromInt(3600)

type Quote struct {
	Subtotal   decimal.Decimal
	ServiceFee decimal.Decimal
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
}

// Pricer is the per-resource pricing capability; the hall and ticket
// variants only differ in how the subtotal is derived.
type Pricer interface {
	Subtotal() (decimal.Decimal, error)
}

type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type HallRates struct {
	Hourly  decimal.Decimal
	Daily   decimal.Decimal
	Weekly  decimal.Decimal
	Monthly decimal.Decimal
}

type HallPricer struct {
	Rates  HallRates
	Start  time.Time
	End    time.Time
	Extras []Line
}

// Subtotal picks the tier by which bracket the whole duration falls
// into: up to 8h the hourly rate times the (possibly fractional)
// duration, then flat daily, weekly and monthly rates. The boundary
// itself belongs to the cheaper tier, so exactly 8h is still hourly.
func (p HallPricer) Subtotal() (decimal.Decimal, error) {
	if !p.End.After(p.Start) {
		return decimal.Zero, errors.BadRequest("booking window end must be after start")
	}

	seconds := decimal.NewFromInt(int64(p.End.Sub(p.Start) / time.Second))
	hours := seconds.Div(secondsPerHour)

	var base decimal.Decimal
	switch {
	case hours.LessThanOrEqual(decimal.NewFromInt(hourlyTierMaxHours)):
		base = p.Rates.Hourly.Mul(hours)
	case hours.LessThanOrEqual(decimal.NewFromInt(dailyTierMaxHours)):
		base = p.Rates.Daily
	case hours.LessThanOrEqual(decimal.NewFromInt(weeklyTierMaxHours)):
		base = p.Rates.Weekly
	default:
		base = p.Rates.Monthly
	}

	for _, extra := range p.Extras {
		base = base.Add(extra.Total())
	}
	return base, nil
}

type TicketPricer struct {
	Lines []Line
}

func (p TicketPricer) Subtotal() (decimal.Decimal, error) {
	if len(p.Lines) == 0 {
		return decimal.Zero, errors.BadRequest("at least one ticket line is required")
	}
	subtotal := decimal.Zero
	for _, line := range p.Lines {
		if line.Quantity <= 0 {
			return decimal.Zero, errors.BadRequest("ticket quantity must be positive")
		}
		subtotal = subtotal.Add(line.Total())
	}
	return subtotal, nil
}

// BuildQuote applies the service fee to the subtotal and the tax to the
// fee-inclusive base, rounding each stored figure to 2 decimal places
// only here, at the storage boundary.
func BuildQuote(p Pricer, serviceFeePct, taxRatePct decimal.Decimal) (Quote, error) {
	subtotal, err := p.Subtotal()
	if err != nil {
		return Quote{}, err
	}

	hundred := decimal.NewFromInt(100)
	serviceFee := subtotal.Mul(serviceFeePct).Div(hundred)
	taxAmount := subtotal.Add(serviceFee).Mul(taxRatePct).Div(hundred)
	total := subtotal.Add(serviceFee).Add(taxAmount)

	return Quote{
		Subtotal:   subtotal.Round(2),
		ServiceFee: serviceFee.Round(2),
		TaxAmount:  taxAmount.Round(2),
		Total:      total.Round(2),
	}, nil
}
