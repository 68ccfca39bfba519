package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ereyga/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// rotationLockKey identifies the advisory lock serializing word rotation
const rotationLockKey = 20250101

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure
const uniqueViolation = "23505"

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sqlx.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sqlx.DB) *WordRepo {
	return &WordRepo{db: db}
}

// ClaimDailyWord runs the rotation step in one transaction:
// reset the pool if exhausted, pick the unused word at the day's offset, mark it used.
// The advisory lock serializes concurrent callers, so a word is issued at most once per epoch.
func (r *WordRepo) ClaimDailyWord(ctx context.Context, dayNumber int) (*domain.Rotation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin rotation: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, rotationLockKey); err != nil {
		return nil, fmt.Errorf("acquire rotation lock: %w", err)
	}

	// Starts a new epoch only when every word has been used
	res, err := tx.ExecContext(ctx, `
		UPDATE words SET used = FALSE
		WHERE NOT EXISTS (SELECT 1 FROM words WHERE used = FALSE)
	`)
	if err != nil {
		return nil, fmt.Errorf("reset exhausted pool: %w", err)
	}
	reset, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("reset exhausted pool: %w", err)
	}

	var ids []int
	err = tx.SelectContext(ctx, &ids, `
		SELECT id FROM words
		WHERE used = FALSE
		ORDER BY id
		FOR UPDATE
	`)
	if err != nil {
		return nil, fmt.Errorf("load unused words: %w", err)
	}
	if len(ids) == 0 {
		return nil, domain.ErrNoWords
	}

	offset := domain.RotationOffset(dayNumber, len(ids))

	var w domain.Word
	err = tx.GetContext(ctx, &w, `
		UPDATE words SET used = TRUE
		WHERE id = $1
		RETURNING id, word, meaning_en, meaning_so, hint_en, hint_so, used
	`, ids[offset])
	if err != nil {
		return nil, fmt.Errorf("mark word used: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit rotation: %w", err)
	}

	return &domain.Rotation{
		Word:       w,
		DayNumber:  dayNumber,
		Offset:     offset,
		PoolSize:   len(ids),
		EpochReset: reset > 0,
	}, nil
}

// CreateWord inserts a new unused word and returns its id
func (r *WordRepo) CreateWord(ctx context.Context, w domain.NewWord) (int, error) {
	query := `
		INSERT INTO words (word, meaning_en, meaning_so, hint_en, hint_so)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int
	err := r.db.QueryRowxContext(ctx, query, w.Word, w.MeaningEN, w.MeaningSO, w.HintEN, w.HintSO).Scan(&id)
	if isUniqueViolation(err) {
		return 0, domain.ErrDuplicateWord
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateWord applies the fields present in patch
func (r *WordRepo) UpdateWord(ctx context.Context, id int, patch domain.WordPatch) error {
	cols, args := patch.Columns()
	if len(cols) == 0 {
		return nil
	}

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE words SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteWord removes a word permanently
func (r *WordRepo) DeleteWord(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM words WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ListWords returns all words, newest first
func (r *WordRepo) ListWords(ctx context.Context) ([]domain.Word, error) {
	var words []domain.Word
	err := r.db.SelectContext(ctx, &words, `
		SELECT id, word, meaning_en, meaning_so, hint_en, hint_so, used
		FROM words
		ORDER BY id DESC
	`)
	return words, err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrWordNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
