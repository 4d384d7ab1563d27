package services

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lotteryops/internal/models"
	"lotteryops/internal/report"
)

// ErrInvalidReport is returned when a report is missing its required fields.
var ErrInvalidReport = errors.New("report date and createdBy are required")

// ErrInvalidDeposit is returned when a deposit is missing its required fields.
var ErrInvalidDeposit = errors.New("deposit date, positive amount, and createdBy are required")

// ReportService stores daily lottery reports and deposits, one report per
// business day. Saving a report always recomputes the derived totals from
// the entered figures and the day's scanned tickets.
type ReportService struct {
	mu       sync.RWMutex
	tickets  *TicketService
	reports  map[string]*models.DailyLotteryReport // key: business day
	deposits []*models.Deposit
}

// NewReportService creates a ReportService that pulls instant-sale figures
// from the given ticket store.
func NewReportService(tickets *TicketService) *ReportService {
	return &ReportService{
		tickets: tickets,
		reports: make(map[string]*models.DailyLotteryReport),
	}
}

// SaveReport upserts the report for its business day. Derived fields on
// the incoming report are ignored; they are recomputed here from the
// entered figures and the day's instant sale.
func (s *ReportService) SaveReport(r models.DailyLotteryReport) (*models.DailyLotteryReport, error) {
	if r.Day == "" || r.CreatedBy == "" {
		return nil, ErrInvalidReport
	}

	instantSale := s.tickets.InstantSaleForDay(r.Day).TotalInstantSale
	recalced := report.Recalculate(r, instantSale)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[r.Day]; exists {
		logger.Infof("Replacing lottery report for %s", r.Day)
	}
	s.reports[r.Day] = &recalced
	return &recalced, nil
}

// GetReport returns the report for a business day, if one was saved.
func (s *ReportService) GetReport(day string) (*models.DailyLotteryReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[day]
	return r, ok
}

// ReportsInRange returns saved reports with startDay <= day <= endDay,
// newest first.
func (s *ReportService) ReportsInRange(startDay, endDay string) []models.DailyLotteryReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.DailyLotteryReport
	for day, r := range s.reports {
		if day >= startDay && day <= endDay {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	return out
}

// AddDeposit records a bank deposit. Status defaults to pending.
func (s *ReportService) AddDeposit(d models.Deposit) (*models.Deposit, error) {
	if d.Day == "" || !d.Amount.IsPositive() || d.CreatedBy == "" {
		return nil, ErrInvalidDeposit
	}
	if d.Status == "" {
		d.Status = models.DepositPending
	}
	d.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deposits = append(s.deposits, &d)
	return &d, nil
}

// DepositsInRange returns deposits with startDay <= day <= endDay,
// newest first.
func (s *ReportService) DepositsInRange(startDay, endDay string) []models.Deposit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Deposit
	for _, d := range s.deposits {
		if d.Day >= startDay && d.Day <= endDay {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	return out
}

// Summary is the dashboard roll-up for a date range, anchored at an
// explicit "today" so nothing here depends on the wall clock.
type Summary struct {
	report.RangeSummary
	TodayOverShort       decimal.Decimal `json:"todayOverShort"`
	YesterdayInstantSale decimal.Decimal `json:"yesterdayInstantSale"`
	StartDay             string          `json:"startDate"`
	EndDay               string          `json:"endDate"`
}

// Summarize aggregates the reports and deposits between startDay and
// endDay inclusive, plus today's over/short and yesterday's instant sale
// relative to the given today.
func (s *ReportService) Summarize(startDay, endDay, today string) Summary {
	summary := Summary{
		RangeSummary:         report.Summarize(s.ReportsInRange(startDay, endDay), s.DepositsInRange(startDay, endDay)),
		TodayOverShort:       decimal.Zero,
		YesterdayInstantSale: decimal.Zero,
		StartDay:             startDay,
		EndDay:               endDay,
	}

	if r, ok := s.GetReport(today); ok {
		summary.TodayOverShort = r.OverShort
	}
	if t, err := time.Parse(models.DayLayout, today); err == nil {
		yesterday := models.DayOf(t.AddDate(0, 0, -1))
		summary.YesterdayInstantSale = s.tickets.InstantSaleForDay(yesterday).TotalInstantSale
	}
	return summary
}
