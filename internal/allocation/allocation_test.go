package allocation

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func tbl(number, seats, priceCents uint32) model.Table {
    return model.Table{
        ID:                uint64(number),
        TableNumber:       number,
        Seats:             seats,
        PricePerSeatCents: priceCents,
        IsAvailable:       true,
    }
}

func TestPrice(t *testing.T) {
    table := tbl(1, 6, 1200)

    // Booking the whole table costs price*(seats-1).
    assert.Equal(t, uint32(1200*5), Price(table, 6))
    // Any other count is charged per seat.
    assert.Equal(t, uint32(1200*4), Price(table, 4))
    assert.Equal(t, uint32(1200*2), Price(table, 2))
}

func TestFindOptimalTable_InvalidCount(t *testing.T) {
    tables := []model.Table{tbl(1, 4, 1000)}

    for _, n := range []int{0, -1, -10} {
        opt, err := FindOptimalTable(tables, n)
        assert.ErrorIs(t, err, ErrInvalidPeopleCount)
        assert.Nil(t, opt)
    }
}

func TestFindOptimalTable_NoTables(t *testing.T) {
    opt, err := FindOptimalTable(nil, 4)
    require.NoError(t, err)
    assert.Nil(t, opt)
}

func TestFindOptimalTable_EvenCountPicksCheapest(t *testing.T) {
    tables := []model.Table{
        tbl(1, 4, 1000),
        tbl(2, 6, 1200),
        tbl(3, 8, 1500),
    }

    opt, err := FindOptimalTable(tables, 4)
    require.NoError(t, err)
    require.NotNil(t, opt)
    assert.Equal(t, uint32(1), opt.Table.TableNumber)
    assert.Equal(t, uint32(4), opt.SeatsAllocated)
    // Full-table booking of the 4-seater: 1000*(4-1).
    assert.Equal(t, uint32(3000), opt.PriceCents)
}

func TestFindOptimalTable_OddCountRoundsUp(t *testing.T) {
    tables := []model.Table{
        tbl(1, 4, 1000),
        tbl(2, 6, 1200),
        tbl(3, 8, 1500),
    }

    // No 5-seat table, so 5 is adjusted to 6 and the 6-seater is booked
    // out entirely: 1200*(6-1).
    opt, err := FindOptimalTable(tables, 5)
    require.NoError(t, err)
    require.NotNil(t, opt)
    assert.Equal(t, uint32(2), opt.Table.TableNumber)
    assert.Equal(t, uint32(6), opt.SeatsAllocated)
    assert.Equal(t, uint32(6000), opt.PriceCents)
}

func TestFindOptimalTable_OddExactMatchBeatsCheaperAlternative(t *testing.T) {
    // A 5-seat table exists; it must be chosen for a party of 5 even
    // though the 6-seater would be cheaper after rounding up.
    tables := []model.Table{
        tbl(2, 6, 100),
        tbl(3, 5, 9000),
    }

    opt, err := FindOptimalTable(tables, 5)
    require.NoError(t, err)
    require.NotNil(t, opt)
    assert.Equal(t, uint32(3), opt.Table.TableNumber)
    assert.Equal(t, uint32(5), opt.SeatsAllocated)
    assert.Equal(t, uint32(9000*4), opt.PriceCents)
}

func TestFindOptimalTable_NoQualifyingTable(t *testing.T) {
    tables := []model.Table{
        tbl(1, 4, 1000),
        tbl(2, 6, 1200),
        tbl(3, 8, 1500),
    }

    opt, err := FindOptimalTable(tables, 12)
    require.NoError(t, err)
    assert.Nil(t, opt)
}

func TestFindOptimalTable_OversizedPartyCannotBeSeated(t *testing.T) {
    tables := []model.Table{
        tbl(1, 4, 1000),
        tbl(2, 10, 1800),
    }

    // Just above the largest table.
    opt, err := FindOptimalTable(tables, 11)
    require.NoError(t, err)
    assert.Nil(t, opt)

    // Counts beyond uint32 must not wrap into a small party that
    // suddenly fits.
    opt, err = FindOptimalTable(tables, 1<<32+3)
    require.NoError(t, err)
    assert.Nil(t, opt)
}

func TestFindOptimalTable_TieBreaksOnLowestTableNumber(t *testing.T) {
    // Same capacity and price: the lower table number must win, even when
    // the snapshot arrives out of order.
    tables := []model.Table{
        tbl(7, 8, 1500),
        tbl(6, 8, 1500),
        tbl(8, 8, 1500),
    }

    opt, err := FindOptimalTable(tables, 8)
    require.NoError(t, err)
    require.NotNil(t, opt)
    assert.Equal(t, uint32(6), opt.Table.TableNumber)
}

func TestFindOptimalTable_SeatsAllocatedNeverBelowAdjustedCount(t *testing.T) {
    tables := []model.Table{
        tbl(1, 4, 1000),
        tbl(2, 6, 1200),
        tbl(3, 8, 1500),
        tbl(4, 10, 1800),
    }

    for people := 1; people <= 10; people++ {
        opt, err := FindOptimalTable(tables, people)
        require.NoError(t, err)
        require.NotNil(t, opt, "party of %d should fit", people)

        expected := uint32(people)
        if people%2 != 0 {
            // No odd-capacity tables in this set, so odd counts always round up.
            expected++
        }
        assert.Equal(t, expected, opt.SeatsAllocated, "party of %d", people)
        assert.GreaterOrEqual(t, opt.Table.Seats, opt.SeatsAllocated)
    }
}

func TestFindOptimalTable_PartialBookingCheaperThanBiggerTable(t *testing.T) {
    // Party of 4 at a 10-seater costs 4 seats; at the pricier 4-seater it
    // costs 3 seats with the full-table discount.  The engine compares
    // computed prices, not per-seat rates.
    tables := []model.Table{
        tbl(1, 4, 1800), // full-table: 1800*3 = 5400
        tbl(2, 10, 1400), // partial: 1400*4 = 5600
    }

    opt, err := FindOptimalTable(tables, 4)
    require.NoError(t, err)
    require.NotNil(t, opt)
    assert.Equal(t, uint32(1), opt.Table.TableNumber)
    assert.Equal(t, uint32(5400), opt.PriceCents)
}
