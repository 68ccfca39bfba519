package postgres

import (
	"context"
	"fmt"
	"testing"

	"ereyga/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wordColumns = []string{"id", "word", "meaning_en", "meaning_so", "hint_en", "hint_so", "used"}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func idRows(ids ...int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id"})
	for _, id := range ids {
		rows.AddRow(id)
	}
	return rows
}

func TestWordRepo_ClaimDailyWord(t *testing.T) {
	tests := []struct {
		name           string
		dayNumber      int
		resetRows      int64
		unusedIDs      []int
		expectedID     int
		expectedOffset int
		expectedReset  bool
	}{
		{
			name:           "day five of three picks the third word",
			dayNumber:      5,
			unusedIDs:      []int{1, 2, 3},
			expectedID:     3,
			expectedOffset: 2,
		},
		{
			name:           "day zero picks the first word",
			dayNumber:      0,
			unusedIDs:      []int{4, 9},
			expectedID:     4,
			expectedOffset: 0,
		},
		{
			name:           "exhausted pool starts a new epoch",
			dayNumber:      7,
			resetRows:      3,
			unusedIDs:      []int{1, 2, 3},
			expectedID:     2,
			expectedOffset: 1,
			expectedReset:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewWordRepo(db)

			mock.ExpectBegin()
			mock.ExpectExec("SELECT pg_advisory_xact_lock").
				WithArgs(rotationLockKey).
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("UPDATE words SET used = FALSE WHERE NOT EXISTS").
				WillReturnResult(sqlmock.NewResult(0, tt.resetRows))
			mock.ExpectQuery("SELECT id FROM words WHERE used = FALSE ORDER BY id FOR UPDATE").
				WillReturnRows(idRows(tt.unusedIDs...))
			mock.ExpectQuery("UPDATE words SET used = TRUE WHERE id = \\$1 RETURNING").
				WithArgs(tt.expectedID).
				WillReturnRows(sqlmock.NewRows(wordColumns).
					AddRow(tt.expectedID, "erey", "word", "erey", "hint", "tilmaan", true))
			mock.ExpectCommit()

			rotation, err := repo.ClaimDailyWord(context.Background(), tt.dayNumber)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, rotation.Word.ID)
			assert.Equal(t, "erey", rotation.Word.Word)
			assert.Equal(t, tt.expectedOffset, rotation.Offset)
			assert.Equal(t, len(tt.unusedIDs), rotation.PoolSize)
			assert.Equal(t, tt.dayNumber, rotation.DayNumber)
			assert.Equal(t, tt.expectedReset, rotation.EpochReset)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_ClaimDailyWord_EmptyTable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWordRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE words SET used = FALSE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id FROM words").WillReturnRows(idRows())
	mock.ExpectRollback()

	rotation, err := repo.ClaimDailyWord(context.Background(), 3)

	assert.ErrorIs(t, err, domain.ErrNoWords)
	assert.Nil(t, rotation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_ClaimDailyWord_StorageErrors(t *testing.T) {
	dbErr := fmt.Errorf("connection reset")

	tests := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
	}{
		{
			name: "begin fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(dbErr)
			},
		},
		{
			name: "lock fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnError(dbErr)
				mock.ExpectRollback()
			},
		},
		{
			name: "reset fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("UPDATE words SET used = FALSE").WillReturnError(dbErr)
				mock.ExpectRollback()
			},
		},
		{
			name: "mark used fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("UPDATE words SET used = FALSE").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT id FROM words").WillReturnRows(idRows(1))
				mock.ExpectQuery("UPDATE words SET used = TRUE").WillReturnError(dbErr)
				mock.ExpectRollback()
			},
		},
		{
			name: "commit fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("UPDATE words SET used = FALSE").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT id FROM words").WillReturnRows(idRows(1))
				mock.ExpectQuery("UPDATE words SET used = TRUE").
					WillReturnRows(sqlmock.NewRows(wordColumns).AddRow(1, "a", "b", "c", "d", "e", true))
				mock.ExpectCommit().WillReturnError(dbErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewWordRepo(db)
			tt.setup(mock)

			rotation, err := repo.ClaimDailyWord(context.Background(), 0)

			assert.ErrorIs(t, err, dbErr)
			assert.Nil(t, rotation)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_CreateWord(t *testing.T) {
	input := domain.NewWord{Word: "guri", MeaningEN: "house", MeaningSO: "guri", HintEN: "you live in it", HintSO: "waad ku nooshahay"}

	tests := []struct {
		name          string
		mockError     error
		expectedID    int
		expectedError error
	}{
		{
			name:       "inserted",
			expectedID: 12,
		},
		{
			name:          "duplicate word",
			mockError:     &pq.Error{Code: "23505"},
			expectedError: domain.ErrDuplicateWord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewWordRepo(db)

			exp := mock.ExpectQuery("INSERT INTO words").
				WithArgs(input.Word, input.MeaningEN, input.MeaningSO, input.HintEN, input.HintSO)
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(tt.expectedID))
			}

			id, err := repo.CreateWord(context.Background(), input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_UpdateWord(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWordRepo(db)

	en := "water"
	so := "biyo"
	patch := domain.WordPatch{MeaningEN: &en, HintSO: &so}

	mock.ExpectExec("UPDATE words SET meaning_en = \\$1, hint_so = \\$2 WHERE id = \\$3").
		WithArgs("water", "biyo", 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateWord(context.Background(), 4, patch)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_UpdateWord_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWordRepo(db)

	hint := "wet"
	mock.ExpectExec("UPDATE words SET hint_en = \\$1 WHERE id = \\$2").
		WithArgs("wet", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateWord(context.Background(), 99, domain.WordPatch{HintEN: &hint})

	assert.ErrorIs(t, err, domain.ErrWordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_DeleteWord(t *testing.T) {
	tests := []struct {
		name          string
		affected      int64
		expectedError error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, expectedError: domain.ErrWordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewWordRepo(db)

			mock.ExpectExec("DELETE FROM words WHERE id = \\$1").
				WithArgs(5).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.DeleteWord(context.Background(), 5)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_ListWords(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWordRepo(db)

	mock.ExpectQuery("SELECT id, word, meaning_en, meaning_so, hint_en, hint_so, used FROM words ORDER BY id DESC").
		WillReturnRows(sqlmock.NewRows(wordColumns).
			AddRow(2, "guri", "house", "guri", "h", "h", false).
			AddRow(1, "biyo", "water", "biyo", "w", "w", true))

	words, err := repo.ListWords(context.Background())

	require.NoError(t, err)
	assert.Len(t, words, 2)
	assert.Equal(t, "guri", words[0].Word)
	assert.True(t, words[1].Used)
	assert.NoError(t, mock.ExpectationsWereMet())
}
