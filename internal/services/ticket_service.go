package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/logger"
	"github.com/google/uuid"

	"lotteryops/internal/barcode"
	"lotteryops/internal/instantsale"
	"lotteryops/internal/models"
)

var (
	// ErrUnreadableScan means the interpreter could make nothing of the input.
	ErrUnreadableScan = errors.New("barcode could not be read")
	// ErrDuplicateScan means the same ticket was already scanned for the day.
	ErrDuplicateScan = errors.New("ticket already scanned for this date")
	// ErrTicketNotFound is returned when a ticket ID matches no stored scan.
	ErrTicketNotFound = errors.New("ticket not found")
)

// TicketService stores scanned tickets bucketed by business day and runs
// the scan-ingestion workflow: interpret, enrich from the game catalog,
// reject duplicates, persist.
type TicketService struct {
	mu    sync.RWMutex
	games *GameService
	days  map[string][]*models.Ticket // key: business day (YYYY-MM-DD)
}

// NewTicketService creates a TicketService backed by the given game catalog.
func NewTicketService(games *GameService) *TicketService {
	return &TicketService{
		games: games,
		days:  make(map[string][]*models.Ticket),
	}
}

// ScanTicket interprets a raw scanner read and records it against the given
// business day. The interpretation is returned alongside the stored ticket
// so the caller can show what was understood. A scan whose game number is
// in the catalog picks up the catalog price and name when the barcode
// itself carried none.
func (s *TicketService) ScanTicket(day, rawInput, scannedBy, notes string) (*models.Ticket, barcode.ScanResult, error) {
	result := barcode.Interpret(rawInput)
	if !result.IsValid {
		return nil, result, ErrUnreadableScan
	}

	price := result.PricePerTicket
	gameName := result.GameName
	if result.GameNumber != "" {
		if game, ok := s.games.Lookup(result.GameNumber); ok && game.IsActive {
			if !result.HasPrice() {
				price = game.CostPerTicket
			}
			gameName = game.GameName
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.days[day] {
		if t.TicketNumber == result.TicketNumber &&
			t.GameNumber == result.GameNumber &&
			t.BookNumber == result.BookNumber {
			return nil, result, ErrDuplicateScan
		}
	}

	ticket := &models.Ticket{
		ID:             uuid.NewString(),
		TicketNumber:   result.TicketNumber,
		BookNumber:     result.BookNumber,
		GameNumber:     result.GameNumber,
		GameName:       gameName,
		TicketKind:     result.TicketKind,
		PricePerTicket: price,
		Day:            day,
		ScannedAt:      time.Now(),
		ScannedBy:      scannedBy,
		Notes:          notes,
	}
	s.days[day] = append(s.days[day], ticket)

	return ticket, result, nil
}

// TicketsForDay returns the tickets scanned on a business day, most recent
// scan first.
func (s *TicketService) TicketsForDay(day string) []*models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.days[day]
	out := make([]*models.Ticket, len(bucket))
	for i, t := range bucket {
		out[len(bucket)-1-i] = t
	}
	return out
}

// DeleteTicket removes a scanned ticket by ID, searching every retained day.
func (s *TicketService) DeleteTicket(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for day, bucket := range s.days {
		for i, t := range bucket {
			if t.ID == id {
				s.days[day] = append(bucket[:i], bucket[i+1:]...)
				return nil
			}
		}
	}
	return ErrTicketNotFound
}

// InstantSaleForDay computes the instant-sale figure from the day's scans.
func (s *TicketService) InstantSaleForDay(day string) instantsale.InstantSaleResult {
	s.mu.RLock()
	bucket := s.days[day]
	records := make([]instantsale.TicketRecord, len(bucket))
	for i, t := range bucket {
		records[i] = instantsale.TicketRecord{
			TicketNumber:   t.TicketNumber,
			PricePerTicket: t.PricePerTicket,
		}
	}
	s.mu.RUnlock()

	return instantsale.ComputeInstantSale(records)
}

// TicketCountForDay returns how many scans are stored for a day.
func (s *TicketService) TicketCountForDay(day string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.days[day])
}

// PurgeOlderThan drops day buckets older than the retention window.
// Day keys sort lexicographically, so a plain string compare against the
// cutoff day is enough.
func (s *TicketService) PurgeOlderThan(retentionDays int, now time.Time) {
	cutoff := models.DayOf(now.AddDate(0, 0, -retentionDays))

	s.mu.Lock()
	defer s.mu.Unlock()

	for day, bucket := range s.days {
		if day < cutoff {
			logger.Infof("Purging %d tickets scanned on %s", len(bucket), day)
			delete(s.days, day)
		}
	}
}
