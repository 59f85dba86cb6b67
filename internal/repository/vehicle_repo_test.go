package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vehicleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "registration_no", "seats", "base_price", "price_per_km", "mileage",
		"has_ac", "terrain", "company_id", "average_rating", "active", "deleted", "created_at",
	})
}

// A terrain filter must also admit "all"-terrain vehicles.
func TestSearchTerrainFilterIncludesAllTerrainVehicles(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	repo := NewVehicleRepository(mockDB)

	start := day("2024-06-01")
	end := day("2024-06-03")

	mock.ExpectQuery(`AND \(v\.terrain = \$3 OR v\.terrain = 'all'\)`).
		WithArgs(start, end, "hills").
		WillReturnRows(vehicleRows())

	_, err = repo.Search(start, end, 0, nil, "hills", 0)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchWithoutTerrainFilter(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	repo := NewVehicleRepository(mockDB)

	start := day("2024-06-01")
	end := day("2024-06-03")

	mock.ExpectQuery(`NOT EXISTS`).
		WithArgs(start, end).
		WillReturnRows(vehicleRows())

	_, err = repo.Search(start, end, 0, nil, "", 0)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
