package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return db, mock
}

var roomColumns = []string{"id", "type", "number", "capacity", "occupant_count"}

func TestAssignOccupant_IncrementsAndInserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `rooms` SET `occupant_count`=occupant_count + ?")).
		WithArgs(1, "room-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `room_occupants`")).
		WithArgs("room-1", "stay-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AssignOccupant(context.Background(), "room-1", "stay-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignOccupant_FullRoom(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `rooms` SET `occupant_count`=occupant_count + ?")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `rooms`")).
		WillReturnRows(sqlmock.NewRows(roomColumns).AddRow("room-1", "Normal", "101", 2, 2))

	err := repo.AssignOccupant(context.Background(), "room-1", "stay-3")

	assert.ErrorIs(t, err, ErrRoomFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignOccupant_UnknownRoom(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `rooms` SET `occupant_count`=occupant_count + ?")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `rooms`")).
		WillReturnRows(sqlmock.NewRows(roomColumns))

	err := repo.AssignOccupant(context.Background(), "missing", "stay-1")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseOccupant_NotAnOccupant(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `room_occupants`")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	released, err := repo.ReleaseOccupant(context.Background(), "room-1", "stay-9")

	require.NoError(t, err)
	assert.False(t, released)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseOccupant_Decrements(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRoomRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `room_occupants`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `rooms` SET `occupant_count`=occupant_count - ?")).
		WithArgs(1, "room-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	released, err := repo.ReleaseOccupant(context.Background(), "room-1", "stay-1")

	require.NoError(t, err)
	assert.True(t, released)
	assert.NoError(t, mock.ExpectationsWereMet())
}
