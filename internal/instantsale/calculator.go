package instantsale

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// TicketRecord is the slice of a scanned ticket that the calculator needs:
// the serial within its book and the price tier it sells at. Records with
// a zero or negative price belong to no price group.
type TicketRecord struct {
	TicketNumber   string
	PricePerTicket decimal.Decimal
}

// PriceGroupBreakdown is the per-tier slice of an instant-sale total.
type PriceGroupBreakdown struct {
	PricePerTicket  decimal.Decimal `json:"ticketCost"`
	TicketCount     int             `json:"ticketCount"`
	GroupSalesTotal decimal.Decimal `json:"groupSales"`
}

// InstantSaleResult carries the day total and its per-price-tier breakdown,
// ordered by ascending price.
type InstantSaleResult struct {
	TotalInstantSale decimal.Decimal       `json:"totalInstantSale"`
	Breakdown        []PriceGroupBreakdown `json:"priceGroupDetails"`
}

// ComputeInstantSale derives the day's scratch-ticket sales figure from the
// scanned tickets. Tickets are partitioned by exact price, and each group
// contributes (Σ (ticketNumber + 1)) × price: ticket serials are
// zero-indexed within a book, so the highest serial seen plus one is the
// count sold from that book. A ticket number that does not parse as a
// base-10 integer counts as serial 0 but still counts toward the group
// size. The function is total: any input, including an empty one, yields a
// well-formed result.
//
// Duplicate ticket numbers are not collapsed here; the scanning workflow
// rejects duplicate scans before they are ever stored.
func ComputeInstantSale(records []TicketRecord) InstantSaleResult {
	groups := make(map[string][]TicketRecord)
	prices := make(map[string]decimal.Decimal)

	for _, rec := range records {
		if !rec.PricePerTicket.IsPositive() {
			continue
		}
		key := rec.PricePerTicket.String()
		groups[key] = append(groups[key], rec)
		prices[key] = rec.PricePerTicket
	}

	result := InstantSaleResult{
		TotalInstantSale: decimal.Zero,
		Breakdown:        make([]PriceGroupBreakdown, 0, len(groups)),
	}

	for key, groupRecords := range groups {
		price := prices[key]

		var innerSum int64
		for _, rec := range groupRecords {
			innerSum += parseTicketNumber(rec.TicketNumber) + 1
		}

		groupTotal := decimal.NewFromInt(innerSum).Mul(price)
		result.Breakdown = append(result.Breakdown, PriceGroupBreakdown{
			PricePerTicket:  price,
			TicketCount:     len(groupRecords),
			GroupSalesTotal: groupTotal,
		})
		result.TotalInstantSale = result.TotalInstantSale.Add(groupTotal)
	}

	sort.Slice(result.Breakdown, func(i, j int) bool {
		return result.Breakdown[i].PricePerTicket.LessThan(result.Breakdown[j].PricePerTicket)
	})
	return result
}

// parseTicketNumber reads a serial like "059" as plain base-10, so leading
// zeros survive storage but not arithmetic. Anything unparseable is 0.
func parseTicketNumber(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
