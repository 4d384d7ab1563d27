package instantsale

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(ticketNumber string, price string) TicketRecord {
	return TicketRecord{
		TicketNumber:   ticketNumber,
		PricePerTicket: decimal.RequireFromString(price),
	}
}

func TestComputeInstantSaleBasicCase(t *testing.T) {
	result := ComputeInstantSale([]TicketRecord{
		record("000", "5"),
		record("002", "5"),
	})

	// innerSum = (0+1) + (2+1) = 4, groupTotal = 4 * 5 = 20.
	require.Len(t, result.Breakdown, 1)
	group := result.Breakdown[0]
	assert.Equal(t, "5", group.PricePerTicket.String())
	assert.Equal(t, 2, group.TicketCount)
	assert.Equal(t, "20", group.GroupSalesTotal.String())
	assert.Equal(t, "20", result.TotalInstantSale.String())
}

func TestComputeInstantSaleExcludesNonPositivePrices(t *testing.T) {
	result := ComputeInstantSale([]TicketRecord{
		record("010", "0"),
		record("010", "-1"),
		{TicketNumber: "010"}, // no price at all
	})

	assert.Empty(t, result.Breakdown)
	assert.True(t, result.TotalInstantSale.IsZero())
}

func TestComputeInstantSaleMalformedTicketNumber(t *testing.T) {
	tests := []struct {
		name         string
		ticketNumber string
	}{
		{"alphabetic", "abc"},
		{"empty", ""},
		{"decimal point", "5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeInstantSale([]TicketRecord{
				{TicketNumber: tt.ticketNumber, PricePerTicket: decimal.NewFromInt(10)},
			})

			// Malformed serials count as 0 but stay in the group.
			require.Len(t, result.Breakdown, 1)
			assert.Equal(t, 1, result.Breakdown[0].TicketCount)
			assert.Equal(t, "10", result.Breakdown[0].GroupSalesTotal.String())
			assert.Equal(t, "10", result.TotalInstantSale.String())
		})
	}
}

func TestComputeInstantSaleSingleZeroSerial(t *testing.T) {
	result := ComputeInstantSale([]TicketRecord{record("000", "2.50")})

	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, "2.50", result.Breakdown[0].GroupSalesTotal.StringFixed(2))
	assert.Equal(t, "2.50", result.TotalInstantSale.StringFixed(2))
}

func TestComputeInstantSaleEmptyInput(t *testing.T) {
	result := ComputeInstantSale(nil)

	assert.True(t, result.TotalInstantSale.IsZero())
	assert.Empty(t, result.Breakdown)
}

func TestComputeInstantSaleMultipleGroups(t *testing.T) {
	result := ComputeInstantSale([]TicketRecord{
		record("059", "1"),
		record("000", "1"),
		record("010", "5"),
		record("003", "10"),
		record("xyz", "0"), // excluded
	})

	// price 1:  (59+1) + (0+1)      = 61 -> 61
	// price 5:  (10+1)              = 11 -> 55
	// price 10: (3+1)               = 4  -> 40
	require.Len(t, result.Breakdown, 3)
	assert.Equal(t, "156", result.TotalInstantSale.String())

	byPrice := map[string]PriceGroupBreakdown{}
	totalCount := 0
	for _, g := range result.Breakdown {
		byPrice[g.PricePerTicket.String()] = g
		totalCount += g.TicketCount
	}
	assert.Equal(t, "61", byPrice["1"].GroupSalesTotal.String())
	assert.Equal(t, 2, byPrice["1"].TicketCount)
	assert.Equal(t, "55", byPrice["5"].GroupSalesTotal.String())
	assert.Equal(t, "40", byPrice["10"].GroupSalesTotal.String())

	// Group counts partition the positive-price records.
	assert.Equal(t, 4, totalCount)
}

func TestComputeInstantSaleKeepsDuplicates(t *testing.T) {
	// Deduplication belongs to the scanning workflow, not the calculator.
	result := ComputeInstantSale([]TicketRecord{
		record("004", "5"),
		record("004", "5"),
	})

	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, 2, result.Breakdown[0].TicketCount)
	assert.Equal(t, "50", result.TotalInstantSale.String())
}

func TestComputeInstantSaleFractionalPrices(t *testing.T) {
	// 3 tickets at $0.50: innerSum = (1+1)+(2+1)+(0+1) = 6 -> 3.00 exactly.
	result := ComputeInstantSale([]TicketRecord{
		record("001", "0.50"),
		record("002", "0.50"),
		record("000", "0.50"),
	})

	assert.Equal(t, "3.00", result.TotalInstantSale.StringFixed(2))
}

func TestComputeInstantSaleIsDeterministic(t *testing.T) {
	records := []TicketRecord{
		record("059", "1"),
		record("010", "5"),
		record("003", "10"),
	}
	assert.Equal(t, ComputeInstantSale(records), ComputeInstantSale(records))
}
