package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWasteBinRepository(t *testing.T) (*WasteBinRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWasteBinRepository(db), mock
}

func TestFindWasteBin_Success(t *testing.T) {
	repo, mock := setupWasteBinRepository(t)

	mock.ExpectQuery("SELECT id, fill_level, updated_at FROM waste_bins WHERE id = \\$1").
		WithArgs("bin-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "fill_level", "updated_at"}).
			AddRow("bin-1", 75, time.Now()))

	bin, err := repo.FindWasteBin("bin-1")
	require.NoError(t, err)
	assert.Equal(t, 75, bin.FillLevel)
}

func TestFindWasteBin_NotFound(t *testing.T) {
	repo, mock := setupWasteBinRepository(t)

	mock.ExpectQuery("SELECT id, fill_level, updated_at FROM waste_bins WHERE id = \\$1").
		WithArgs("nonexistent").
		WillReturnRows(sqlmock.NewRows([]string{"id", "fill_level", "updated_at"}))

	bin, err := repo.FindWasteBin("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, bin)
}

func TestFindAllWasteBins(t *testing.T) {
	repo, mock := setupWasteBinRepository(t)

	now := time.Now()
	mock.ExpectQuery("SELECT id, fill_level, updated_at FROM waste_bins ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "fill_level", "updated_at"}).
			AddRow("bin-1", 10, now).
			AddRow("bin-2", 90, now))

	bins, err := repo.FindAllWasteBins()
	require.NoError(t, err)
	require.Len(t, bins, 2)
	assert.Equal(t, 90, bins[1].FillLevel)
}

func TestUpdateWasteBin_Success(t *testing.T) {
	repo, mock := setupWasteBinRepository(t)

	mock.ExpectQuery("UPDATE waste_bins").
		WithArgs("bin-1", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fill_level", "updated_at"}).
			AddRow("bin-1", 50, time.Now()))

	bin, err := repo.UpdateWasteBin("bin-1", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, bin.FillLevel)
}

func TestUpdateWasteBin_NotFound(t *testing.T) {
	repo, mock := setupWasteBinRepository(t)

	mock.ExpectQuery("UPDATE waste_bins").
		WithArgs("nonexistent", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fill_level", "updated_at"}))

	bin, err := repo.UpdateWasteBin("nonexistent", 50)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, bin)
}
