package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"lotteryops/internal/models"
)

func newReportFixture(t *testing.T) (*TicketService, *ReportService) {
	t.Helper()

	games := NewGameService()
	_ = games.AddGame(models.Game{
		GameNumber:    "075",
		GameName:      "Cash Match",
		CostPerTicket: decimal.NewFromInt(5),
		IsActive:      true,
	})
	tickets := NewTicketService(games)
	return tickets, NewReportService(tickets)
}

func TestReportService_SaveReport(t *testing.T) {
	const testDay = "2026-08-30"
	tickets, service := newReportFixture(t)

	// Serials 000 and 002 at $5 give an instant sale of 20.
	if _, _, err := tickets.ScanTicket(testDay, "0750123456000", "employee1", ""); err != nil {
		t.Fatalf("Setup scan failed: %v", err)
	}
	if _, _, err := tickets.ScanTicket(testDay, "0750123456002", "employee1", ""); err != nil {
		t.Fatalf("Setup scan failed: %v", err)
	}

	t.Run("Test derived totals are computed on save", func(t *testing.T) {
		saved, err := service.SaveReport(models.DailyLotteryReport{
			Day:                testDay,
			OnlineNetSalesSR50: decimal.NewFromInt(100),
			OnlineCashingSR50:  decimal.NewFromInt(40),
			InstantCashingSR34: decimal.NewFromInt(10),
			RegisterCash:       decimal.NewFromInt(65),
			CreatedBy:          "employee1",
		})
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}

		if saved.InstantSaleSR34.String() != "20" {
			t.Errorf("Expected instant sale 20, but got %s", saved.InstantSaleSR34)
		}
		// online 100-40=60, instant 20-10=10, total 70, overShort 70-65=5.
		if saved.OnlineBalance.String() != "60" {
			t.Errorf("Expected online balance 60, but got %s", saved.OnlineBalance)
		}
		if saved.InstantBalance.String() != "10" {
			t.Errorf("Expected instant balance 10, but got %s", saved.InstantBalance)
		}
		if saved.TotalBalance.String() != "70" {
			t.Errorf("Expected total balance 70, but got %s", saved.TotalBalance)
		}
		if saved.OverShort.String() != "5" {
			t.Errorf("Expected over/short 5, but got %s", saved.OverShort)
		}
	})

	t.Run("Test saving again replaces the day's report", func(t *testing.T) {
		saved, err := service.SaveReport(models.DailyLotteryReport{
			Day:          testDay,
			RegisterCash: decimal.NewFromInt(20),
			CreatedBy:    "employee2",
		})
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		// instant 20-0=20, online 0, total 20, overShort 20-20=0.
		if !saved.OverShort.IsZero() {
			t.Errorf("Expected over/short 0, but got %s", saved.OverShort)
		}

		stored, ok := service.GetReport(testDay)
		if !ok {
			t.Fatal("Expected a stored report")
		}
		if stored.CreatedBy != "employee2" {
			t.Errorf("Expected the replacement report, but got %+v", stored)
		}
	})

	t.Run("Test missing required fields", func(t *testing.T) {
		if _, err := service.SaveReport(models.DailyLotteryReport{Day: testDay}); !errors.Is(err, ErrInvalidReport) {
			t.Fatalf("Expected ErrInvalidReport, but got %v", err)
		}
	})
}

func TestReportService_Deposits(t *testing.T) {
	_, service := newReportFixture(t)

	t.Run("Test deposit defaults to pending", func(t *testing.T) {
		saved, err := service.AddDeposit(models.Deposit{
			Day:       "2026-08-30",
			Amount:    decimal.NewFromInt(500),
			CreatedBy: "employee1",
		})
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if saved.Status != models.DepositPending {
			t.Errorf("Expected pending status, but got %q", saved.Status)
		}
		if saved.ID == "" {
			t.Error("Expected deposit to be assigned an ID")
		}
	})

	t.Run("Test non-positive amount is rejected", func(t *testing.T) {
		_, err := service.AddDeposit(models.Deposit{
			Day:       "2026-08-30",
			CreatedBy: "employee1",
		})
		if !errors.Is(err, ErrInvalidDeposit) {
			t.Fatalf("Expected ErrInvalidDeposit, but got %v", err)
		}
	})

	t.Run("Test range filtering", func(t *testing.T) {
		if _, err := service.AddDeposit(models.Deposit{
			Day:       "2026-07-01",
			Amount:    decimal.NewFromInt(100),
			CreatedBy: "employee1",
		}); err != nil {
			t.Fatalf("Setup deposit failed: %v", err)
		}

		got := service.DepositsInRange("2026-08-01", "2026-08-31")
		if len(got) != 1 || got[0].Day != "2026-08-30" {
			t.Errorf("Unexpected deposits in range: %+v", got)
		}
	})
}

func TestReportService_Summarize(t *testing.T) {
	const today = "2026-08-30"
	const yesterday = "2026-08-29"
	tickets, service := newReportFixture(t)

	// Yesterday's scans: serials 000 and 002 at $5 -> instant sale 20.
	if _, _, err := tickets.ScanTicket(yesterday, "0750123456000", "employee1", ""); err != nil {
		t.Fatalf("Setup scan failed: %v", err)
	}
	if _, _, err := tickets.ScanTicket(yesterday, "0750123456002", "employee1", ""); err != nil {
		t.Fatalf("Setup scan failed: %v", err)
	}

	if _, err := service.SaveReport(models.DailyLotteryReport{
		Day:             today,
		RegisterCash:    decimal.NewFromInt(30),
		DebitCreditCard: decimal.NewFromInt(12),
		CreatedBy:       "employee1",
	}); err != nil {
		t.Fatalf("Setup report failed: %v", err)
	}
	if _, err := service.AddDeposit(models.Deposit{
		Day:       today,
		Amount:    decimal.NewFromInt(500),
		CreatedBy: "employee1",
	}); err != nil {
		t.Fatalf("Setup deposit failed: %v", err)
	}

	summary := service.Summarize("2026-08-24", today, today)

	if summary.YesterdayInstantSale.String() != "20" {
		t.Errorf("Expected yesterday instant sale 20, but got %s", summary.YesterdayInstantSale)
	}
	// Today's report: no scans today, so overShort = 0 - 0 - 30 = -30.
	if summary.TodayOverShort.String() != "-30" {
		t.Errorf("Expected today over/short -30, but got %s", summary.TodayOverShort)
	}
	if summary.TotalCardSales.String() != "12" {
		t.Errorf("Expected card sales 12, but got %s", summary.TotalCardSales)
	}
	if summary.PendingDeposits.String() != "500" {
		t.Errorf("Expected pending deposits 500, but got %s", summary.PendingDeposits)
	}
	if summary.ReportCount != 1 {
		t.Errorf("Expected 1 report in range, but got %d", summary.ReportCount)
	}
}
