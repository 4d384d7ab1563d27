// Package report holds the reconciliation arithmetic for the daily
// lottery report: the sheet's derived totals and the range summaries
// shown on the dashboard. Everything here is a pure function over
// decimals so the same figures always reconcile the same way.
package report

import (
	"github.com/shopspring/decimal"

	"lotteryops/internal/models"
)

// Recalculate returns a copy of the report with every derived field
// recomputed from the entered figures and the day's computed instant
// sale:
//
//	instantBalance = instantSale - totalInstantCashing
//	onlineBalance  = totalOnlineNetSales - totalOnlineCashing
//	totalBalance   = onlineBalance + instantBalance
//	overShort      = totalBalance - registerCash
func Recalculate(r models.DailyLotteryReport, instantSale decimal.Decimal) models.DailyLotteryReport {
	r.InstantSaleSR34 = instantSale
	r.TotalOnlineNetSales = r.OnlineNetSalesSR50.Add(r.OnlineNetSales2SR50)
	r.TotalOnlineCashing = r.OnlineCashingSR50.Add(r.OnlineCashing2SR50)
	r.TotalInstantCashing = r.InstantCashingSR34.Add(r.InstantCashing2SR34)

	r.OnlineBalance = r.TotalOnlineNetSales.Sub(r.TotalOnlineCashing)
	r.InstantBalance = r.InstantSaleSR34.Sub(r.TotalInstantCashing)
	r.TotalBalance = r.OnlineBalance.Add(r.InstantBalance)
	r.OverShort = r.TotalBalance.Sub(r.RegisterCash)
	return r
}

// CardSales is the report's non-cash tender total: EBT/debit-credit plus
// credit and debit sales.
func CardSales(r models.DailyLotteryReport) decimal.Decimal {
	return r.DebitCreditCard.Add(r.CreditsSale).Add(r.DebitsSale)
}

// RangeSummary aggregates a span of reports and deposits.
type RangeSummary struct {
	TotalCardSales  decimal.Decimal `json:"totalCardSales"`
	TotalDeposits   decimal.Decimal `json:"totalDeposits"`
	PendingDeposits decimal.Decimal `json:"pendingDeposits"`
	ReportCount     int             `json:"reportCount"`
	DepositCount    int             `json:"depositCount"`
}

// Summarize folds reports and deposits into range totals.
func Summarize(reports []models.DailyLotteryReport, deposits []models.Deposit) RangeSummary {
	s := RangeSummary{
		TotalCardSales:  decimal.Zero,
		TotalDeposits:   decimal.Zero,
		PendingDeposits: decimal.Zero,
		ReportCount:     len(reports),
		DepositCount:    len(deposits),
	}
	for _, r := range reports {
		s.TotalCardSales = s.TotalCardSales.Add(CardSales(r))
	}
	for _, d := range deposits {
		s.TotalDeposits = s.TotalDeposits.Add(d.Amount)
		if d.Status == models.DepositPending {
			s.PendingDeposits = s.PendingDeposits.Add(d.Amount)
		}
	}
	return s
}
