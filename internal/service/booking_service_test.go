package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fleetbooking/internal/entities"
)

func TestTotalAmount(t *testing.T) {
	fare := entities.FareBreakup{
		BaseRent:     5000,
		MountainRent: 1200,
		DriverBatta:  900,
		PermitCharge: 350,
		TollCharge:   275,
		OtherCharge:  125,
		Discount:     850,
	}
	assert.Equal(t, 7000.0, TotalAmount(fare))
}

func TestTotalAmountZeroComponents(t *testing.T) {
	assert.Equal(t, 0.0, TotalAmount(entities.FareBreakup{}))
	assert.Equal(t, 1000.0, TotalAmount(entities.FareBreakup{BaseRent: 1000}))
}

func TestRefundAmountBoundary(t *testing.T) {
	travel := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	paid := 3000.0

	// Strictly more than 24h before travel: full refund.
	assert.Equal(t, 3000.0, RefundAmount(paid, travel, travel.Add(-25*time.Hour)))
	assert.Equal(t, 3000.0, RefundAmount(paid, travel, travel.Add(-24*time.Hour-time.Minute)))

	// Exactly 24h is not "more than 24h": half refund.
	assert.Equal(t, 1500.0, RefundAmount(paid, travel, travel.Add(-24*time.Hour)))

	// 23h59m before travel: half refund.
	assert.Equal(t, 1500.0, RefundAmount(paid, travel, travel.Add(-23*time.Hour-59*time.Minute)))

	// Nothing paid, nothing refunded.
	assert.Equal(t, 0.0, RefundAmount(0, travel, travel.Add(-48*time.Hour)))
}

func TestValidateFareRejectsNegatives(t *testing.T) {
	assert.NoError(t, validateFare(entities.FareBreakup{BaseRent: 100, Discount: 10}))
	assert.Error(t, validateFare(entities.FareBreakup{BaseRent: -1}))
	assert.Error(t, validateFare(entities.FareBreakup{Discount: -5}))
	assert.Error(t, validateFare(entities.FareBreakup{TollCharge: -0.01}))
}

func TestParseDay(t *testing.T) {
	d, err := parseDay("2024-06-01")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = parseDay("01-06-2024")
	assert.Error(t, err)
	_, err = parseDay("")
	assert.Error(t, err)
}

func TestNewBookingCodeShape(t *testing.T) {
	code := newBookingCode()
	assert.Len(t, code, 12)
	assert.Equal(t, "TRV-", code[:4])
	assert.NotEqual(t, code, newBookingCode())
}
