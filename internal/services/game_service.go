package services

import (
	"encoding/csv"
	"errors"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/google/logger"
	"github.com/shopspring/decimal"

	"lotteryops/internal/models"
)

// GameService is the in-memory scratch-game catalog, keyed by game number.
type GameService struct {
	mu    sync.RWMutex
	games map[string]*models.Game
}

// NewGameService creates an empty game catalog.
func NewGameService() *GameService {
	return &GameService{
		games: make(map[string]*models.Game),
	}
}

// AddGame inserts or replaces a catalog entry.
func (s *GameService) AddGame(game models.Game) error {
	if game.GameNumber == "" || game.GameName == "" {
		return errors.New("game number and name are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g := game
	s.games[game.GameNumber] = &g
	return nil
}

// Lookup returns the catalog entry for a game number.
func (s *GameService) Lookup(gameNumber string) (*models.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[gameNumber]
	return g, ok
}

// ListGames returns the catalog sorted by game number.
func (s *GameService) ListGames() []*models.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Game, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameNumber < out[j].GameNumber })
	return out
}

// ImportCSV bulk-loads catalog entries from rows of the form
// gameNumber,gameName,costPerTicket,isActive. Malformed rows are skipped
// and logged; a read error aborts the import and reports how many rows
// made it in before the failure.
func (s *GameService) ImportCSV(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are skipped, not fatal
	imported := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, err
		}

		if len(record) != 4 {
			logger.Infof("Skipping malformed game CSV record: %v", record)
			continue
		}

		cost, err := decimal.NewFromString(record[2])
		if err != nil {
			logger.Infof("Skipping game CSV record with invalid cost: %v", record)
			continue
		}
		isActive, err := strconv.ParseBool(record[3])
		if err != nil {
			logger.Infof("Skipping game CSV record with invalid isActive: %v", record)
			continue
		}

		if err := s.AddGame(models.Game{
			GameNumber:    record[0],
			GameName:      record[1],
			CostPerTicket: cost,
			IsActive:      isActive,
		}); err != nil {
			logger.Infof("Skipping game CSV record: %v", err)
			continue
		}
		imported++
	}
	return imported, nil
}
