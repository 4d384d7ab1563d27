package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Day is the business-day key used throughout the store: a local-date
// string in YYYY-MM-DD form. Dates are always passed explicitly; nothing
// in the service keeps an ambient "selected day".
const DayLayout = "2006-01-02"

// DayOf returns the business-day key for a point in time.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

// Ticket is one scanned instant ticket, recorded for a single business day.
type Ticket struct {
	ID             string          `json:"id"`
	TicketNumber   string          `json:"ticketNumber"`
	BookNumber     string          `json:"bookNumber,omitempty"`
	GameNumber     string          `json:"gameNumber,omitempty"`
	GameName       string          `json:"gameName,omitempty"`
	TicketKind     string          `json:"ticketType"`
	PricePerTicket decimal.Decimal `json:"costPerTicket"`
	Day            string          `json:"date"`
	ScannedAt      time.Time       `json:"scannedAt"`
	ScannedBy      string          `json:"scannedBy"`
	Notes          string          `json:"notes,omitempty"`
}

// Game is a catalog entry for a scratch-ticket game: the state lottery's
// game number, its retail name, and the per-ticket price used to fill in
// scans that carry only a game number.
type Game struct {
	GameNumber    string          `json:"gameNumber"`
	GameName      string          `json:"gameName"`
	CostPerTicket decimal.Decimal `json:"costPerTicket"`
	IsActive      bool            `json:"isActive"`
	Description   string          `json:"description,omitempty"`
}

// DailyLotteryReport is the end-of-day register reconciliation sheet.
// The entered fields come off the lottery terminal invoice and the
// register count; the derived fields are always recomputed on save and
// never trusted from the client.
type DailyLotteryReport struct {
	Day string `json:"date"`

	// Entered: invoice section.
	OnlineNetSalesSR50  decimal.Decimal `json:"onlineNetSalesSR50"`
	OnlineNetSales2SR50 decimal.Decimal `json:"onlineNetSales2SR50"`
	OnlineCashingSR50   decimal.Decimal `json:"onlineCashingSR50"`
	OnlineCashing2SR50  decimal.Decimal `json:"onlineCashing2SR50"`
	InstantCashingSR34  decimal.Decimal `json:"instantCashingSR34"`
	InstantCashing2SR34 decimal.Decimal `json:"instantCashing2SR34"`

	// Entered: cash section.
	DebitCreditCard decimal.Decimal `json:"debitCreditCard"`
	CreditsSale     decimal.Decimal `json:"creditsSale"`
	DebitsSale      decimal.Decimal `json:"debitsSale"`
	VendingCash     decimal.Decimal `json:"vendingCash"`
	RegisterCash    decimal.Decimal `json:"registerCash"`

	// Derived.
	InstantSaleSR34     decimal.Decimal `json:"instantSaleSR34"`
	TotalOnlineNetSales decimal.Decimal `json:"totalOnlineNetSales"`
	TotalOnlineCashing  decimal.Decimal `json:"totalOnlineCashing"`
	TotalInstantCashing decimal.Decimal `json:"totalInstantCashing"`
	OnlineBalance       decimal.Decimal `json:"onlineBalance"`
	InstantBalance      decimal.Decimal `json:"instantBalance"`
	TotalBalance        decimal.Decimal `json:"totalBalance"`
	OverShort           decimal.Decimal `json:"overShort"`

	CreatedBy string `json:"createdBy"`
	Notes     string `json:"notes,omitempty"`
}

// Deposit statuses.
const (
	DepositPending   = "pending"
	DepositCompleted = "completed"
)

// Deposit is a bank deposit recorded against a business day.
type Deposit struct {
	ID        string          `json:"id"`
	Day       string          `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedBy string          `json:"createdBy"`
	Notes     string          `json:"notes,omitempty"`
}
