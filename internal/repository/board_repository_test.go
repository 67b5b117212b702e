package repository_test

import (
	"context"
	"testing"

	"serviceboard/internal/model"
	"serviceboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestBoardRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := uuid.New()
	board := &model.Board{
		BoardRef: "ref-123",
		Title:    "Kitchen renovation",
		Status:   model.BoardStatusDraft,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "boards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(boardID.String()))
	mock.ExpectCommit()

	// Act
	err := boardRepo.Create(context.Background(), board)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, boardID, board.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetByRef_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := uuid.New()
	ref := "ref-123"

	mock.ExpectQuery(`SELECT .* FROM "boards" WHERE board_ref = .* LIMIT .*`).
		WithArgs(ref, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "board_ref", "title", "description", "status"}).
			AddRow(boardID.String(), ref, "Kitchen renovation", "Full refit", "active"))

	// Act
	board, err := boardRepo.GetByRef(context.Background(), ref)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, board)
	assert.Equal(t, boardID, board.ID)
	assert.Equal(t, ref, board.BoardRef)
	assert.Equal(t, model.BoardStatusActive, board.Status)
	assert.False(t, board.IsGated())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetByRef_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	ref := "no-such-ref"

	mock.ExpectQuery(`SELECT .* FROM "boards" WHERE board_ref = .* LIMIT .*`).
		WithArgs(ref, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	board, err := boardRepo.GetByRef(context.Background(), ref)

	// Assert: a missing board is not an error for callers
	assert.NoError(t, err)
	assert.Nil(t, board)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetByRef_Error(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	ref := "ref-123"

	mock.ExpectQuery(`SELECT .* FROM "boards" WHERE board_ref = .* LIMIT .*`).
		WithArgs(ref, 1).
		WillReturnError(assert.AnError)

	// Act
	board, err := boardRepo.GetByRef(context.Background(), ref)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, board)
	assert.NoError(t, mock.ExpectationsWereMet())
}
