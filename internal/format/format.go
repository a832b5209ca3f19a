// Package format renders estimate figures for display. Output is fixed to en-US
// conventions and never depends on the host locale.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/stacksolutions/estimator/internal/model"
)

const (
	dateLayout        = "Jan 2, 2006"
	weekdayDateLayout = "Monday, Jan 2"

	NotRecoverableText = "not recoverable under current assumptions"
)

var displayLanguage = language.AmericanEnglish

// FormatCurrency renders whole US dollars with thousands separators, e.g. "$12,000".
// Amounts are rounded half away from zero.
func FormatCurrency(amount float64) string {
	r := math.Round(amount)
	p := message.NewPrinter(displayLanguage)
	if r < 0 {
		return "-$" + p.Sprintf("%.0f", -r)
	}
	return "$" + p.Sprintf("%.0f", math.Abs(r))
}

// FormatCurrencyRange renders "$12,000 - $18,000".
func FormatCurrencyRange(minAmount, maxAmount float64) string {
	return FormatCurrency(minAmount) + " - " + FormatCurrency(maxAmount)
}

// FormatWeeksRange renders "5 - 7 weeks".
func FormatWeeksRange(minWeeks, maxWeeks int) string {
	return fmt.Sprintf("%d - %d weeks", minWeeks, maxWeeks)
}

// FormatPercent renders a percentage without decimals, e.g. "1124%".
func FormatPercent(p float64) string {
	r := math.Round(p)
	if r == 0 {
		r = 0 // drop negative zero
	}
	return fmt.Sprintf("%.0f%%", r)
}

// FormatPayback renders months with one decimal, or the not-recoverable text.
func FormatPayback(p model.Payback) string {
	if !p.Recoverable {
		return NotRecoverableText
	}
	return fmt.Sprintf("%.1f months", p.Months)
}

// FormatConfidence renders the confidence label in upper case.
func FormatConfidence(c model.Confidence) string {
	return strings.ToUpper(string(c))
}

// FormatDate renders "Jan 15, 2024" in the location carried by t.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatWeekdayDate renders "Monday, Jan 15" in the location carried by t.
func FormatWeekdayDate(t time.Time) string {
	return t.Format(weekdayDateLayout)
}

// ProjectDisplay formats every field of a project estimate.
func ProjectDisplay(r model.ProjectEstimateResult) model.ProjectDisplay {
	return model.ProjectDisplay{
		CostRange:     FormatCurrencyRange(float64(r.MinCost), float64(r.MaxCost)),
		DurationRange: FormatWeeksRange(r.MinWeeks, r.MaxWeeks),
		Confidence:    FormatConfidence(r.Confidence),
	}
}

// ROIDisplay formats every field of an ROI estimate.
func ROIDisplay(r model.ROIEstimateResult) model.ROIDisplay {
	return model.ROIDisplay{
		AnnualInefficiencyCost: FormatCurrency(r.AnnualInefficiencyCost),
		PotentialSavings:       FormatCurrency(r.PotentialSavings),
		RevenueIncrease:        FormatCurrency(r.RevenueIncrease),
		ROIPercentage:          FormatPercent(r.ROIPercentage),
		Payback:                FormatPayback(r.Payback),
	}
}
