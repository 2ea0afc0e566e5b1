package calculator

import (
	"time"

	"cloud.google.com/go/civil"

	"DebtSentinel/internal/model"
)

// DaysPerMonth approximates a month when splitting a projection window.
const DaysPerMonth = 30

// ProjectInterest estimates interest-only accrual on d over horizonMonths,
// holding the balance constant. Each scheduled change strictly inside the
// window splits it, and every segment is weighted by its share of days.
func ProjectInterest(d model.Debt, horizonMonths int, today time.Time) float64 {
	if horizonMonths <= 0 || d.CurrentBalance <= 0 {
		return 0
	}
	day := civil.DateOf(today)
	tl := Timeline(d)
	totalDays := horizonMonths * DaysPerMonth
	h := float64(horizonMonths)

	rate := rateOn(d.InterestRate, tl, day)
	elapsed := 0
	var total float64
	for _, c := range tl {
		offset := c.EffectiveDate.DaysSince(day)
		if offset <= 0 {
			continue
		}
		if offset >= totalDays {
			break
		}
		ratio := float64(offset-elapsed) / float64(totalDays)
		total += MonthlyInterest(d.CurrentBalance, rate) * h * ratio
		rate = c.Rate
		elapsed = offset
	}
	ratio := float64(totalDays-elapsed) / float64(totalDays)
	total += MonthlyInterest(d.CurrentBalance, rate) * h * ratio
	return total
}
