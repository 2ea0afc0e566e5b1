package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dustin/go-humanize"

	"DebtSentinel/internal/calculator"
	"DebtSentinel/internal/model"
)

// HelpText lists the chat commands.
const HelpText = `🤖 <b>DebtSentinel commands</b>

/plan - where to put this month's surplus
/projection - interest you will pay if nothing changes
/warnings - rate changes and payments that need attention
/debts - current debts and their rate schedules
/surplus &lt;amount&gt; - set the monthly surplus cash`

func esc(s string) string { return html.EscapeString(s) }

func months(n int) string {
	if n >= model.NeverPaysOffMonths {
		return "never"
	}
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}

// FormatPlanReport renders the minimum-only plan next to the plan that
// spends the surplus, with one line per debt in priority order.
func FormatPlanReport(cmp *model.PlanComparison, day civil.Date) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🎯 <b>Payoff plan</b> | %s\n\n", day))

	opt := cmp.OptimizedSum
	if opt.DebtFree {
		b.WriteString("No outstanding debts. 🎉\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Balance: %s across %d debts\n", model.Money(opt.TotalBalance), opt.DebtCount))
	b.WriteString(fmt.Sprintf("Monthly: %s minimum + %s surplus = %s\n",
		model.Money(opt.TotalMinimum), model.Money(cmp.SurplusCash), model.Money(opt.TotalPayment)))
	b.WriteString(fmt.Sprintf("Weighted APR: %s\n\n", model.Percent(opt.WeightedAvgRate)))

	b.WriteString("📋 <b>Priority order:</b>\n")
	for _, a := range cmp.Optimized {
		if a.Balance <= 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s (%s, score %.1f)\n",
			humanize.Ordinal(a.Rank), esc(a.Name), model.Percent(a.CurrentRate), a.Score.PriorityScore))
		line := fmt.Sprintf("   pay %s", model.Money(a.TotalPay))
		if a.ExtraPay > 0 {
			line += fmt.Sprintf(" (+%s extra)", model.Money(a.ExtraPay))
		}
		b.WriteString(fmt.Sprintf("%s → %s, interest %s\n", line, months(a.MonthsToPayoff), model.Money(a.ProjectedInterest)))
		switch {
		case a.Impact.BreaksDebtCycle:
			b.WriteString("   ✅ the extra payment finally gets this balance falling\n")
		case a.Impact.InterestSaved > 0:
			b.WriteString(fmt.Sprintf("   saves %s and %s\n", model.Money(a.Impact.InterestSaved), months(a.Impact.TimeSaved)))
		}
	}

	base := cmp.BaselineSum
	b.WriteString("\n💰 <b>Impact of the surplus:</b>\n")
	b.WriteString(fmt.Sprintf("   Minimums only: %s interest, debt free in %s\n", model.Money(base.TotalInterest), months(base.MonthsToDebtFree)))
	b.WriteString(fmt.Sprintf("   With surplus:  %s interest, debt free in %s\n", model.Money(opt.TotalInterest), months(opt.MonthsToDebtFree)))
	if cmp.InterestSaved > 0 || cmp.MonthsSaved > 0 {
		b.WriteString(fmt.Sprintf("   Saved: %s and %s\n", model.Money(cmp.InterestSaved), months(cmp.MonthsSaved)))
	}
	if opt.NeverPaysOff {
		b.WriteString("\n⚠️ At least one debt never pays off at these payments.\n")
	}
	return b.String()
}

// FormatProjection renders the interest-only outlook.
func FormatProjection(p *model.InterestProjection, day civil.Date) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 <b>Interest outlook</b> | %s\n\n", day))
	b.WriteString("If balances stay where they are:\n")
	b.WriteString(fmt.Sprintf("   3 months:  %s\n", model.Money(p.Months3)))
	b.WriteString(fmt.Sprintf("   6 months:  %s\n", model.Money(p.Months6)))
	b.WriteString(fmt.Sprintf("   12 months: %s\n", model.Money(p.Months12)))

	if w := p.WorstOffender; w != nil {
		b.WriteString(fmt.Sprintf("\n🔥 <b>Most expensive:</b> %s at %s, %s/month\n", esc(w.Name), model.Percent(w.Rate), model.Money(w.Cost)))
	}

	if len(p.Opportunities) > 0 {
		b.WriteString("\n💡 <b>Clear before the rate rises:</b>\n")
		for _, o := range p.Opportunities {
			b.WriteString(fmt.Sprintf("   %s: avoid %s (%s/month from %s)\n",
				esc(o.Name), model.Money(o.Amount), model.Money(o.Monthly), o.SwitchDate))
		}
	}
	return b.String()
}

var severityIcon = map[model.Severity]string{
	model.SeverityCritical: "🚨",
	model.SeverityWarning:  "⚠️",
	model.SeverityInfo:     "ℹ️",
}

// FormatWarnings renders warnings in the order given.
func FormatWarnings(ws []model.Warning, day civil.Date) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 <b>Debt alerts</b> | %s\n", day))
	if len(ws) == 0 {
		b.WriteString("\nNothing needs attention. ✅\n")
		return b.String()
	}
	for _, w := range ws {
		b.WriteString(fmt.Sprintf("\n%s <b>%s</b> | %s\n", severityIcon[w.Severity], esc(w.DebtName), esc(w.Label)))
		b.WriteString(fmt.Sprintf("   %s\n", esc(w.Message)))
		b.WriteString(fmt.Sprintf("   Impact: %s\n", esc(w.Impact)))
		b.WriteString(fmt.Sprintf("   → %s\n", esc(w.Action)))
	}
	return b.String()
}

// FormatDebtList renders each debt with its rate status at today.
func FormatDebtList(debts []model.Debt, today time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📦 <b>Debts</b> | %s\n", civil.DateOf(today)))
	if len(debts) == 0 {
		b.WriteString("\nNo debts on file.\n")
		return b.String()
	}

	now := civil.DateOf(today).In(today.Location())
	var total float64
	for _, d := range debts {
		total += d.CurrentBalance
		st := calculator.ResolveEffectiveRateState(d, today)
		status := calculator.ClassifyStatus(d, today)

		b.WriteString(fmt.Sprintf("\n<b>%s</b> (%s)\n", esc(d.DisplayName()), esc(string(d.DebtType))))
		b.WriteString(fmt.Sprintf("   %s at %s, paying %s/month\n",
			model.Money(d.CurrentBalance), model.Percent(st.CurrentRate), model.Money(d.MonthlyRepayment)))
		if st.HasChange {
			when := st.ChangeDate.In(today.Location())
			b.WriteString(fmt.Sprintf("   %s → %s on %s (%s), %s\n",
				model.Percent(st.BaselineRate), model.Percent(st.FutureRate), st.ChangeDate,
				humanize.RelTime(when, now, "ago", "from now"), status.Label))
		}
	}
	b.WriteString(fmt.Sprintf("\nTotal: %s\n", model.Money(total)))
	return b.String()
}

// FormatSurplusUpdated confirms a surplus change.
func FormatSurplusUpdated(amount float64) string {
	return fmt.Sprintf("✅ Monthly surplus set to %s. Send /plan to see where it goes.", model.Money(amount))
}

// FormatTaskError reports a failed scheduled task.
func FormatTaskError(task string, err error) string {
	return fmt.Sprintf("❌ %s failed: %s", task, esc(err.Error()))
}
