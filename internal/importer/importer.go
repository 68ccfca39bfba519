// Package importer bulk-loads words from spreadsheets and CSV files.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ereyga/internal/domain"
	apperrors "ereyga/internal/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Column order expected in every import file
const (
	colWord = iota
	colMeaningEN
	colMeaningSO
	colHintEN
	colHintSO
	columnCount
)

// WordAdder stores a validated word
type WordAdder interface {
	AddWord(ctx context.Context, input domain.NewWord) (int, error)
}

// Config defines the import configuration
type Config struct {
	FilePath   string // .xlsx or .csv
	SheetName  string // Excel only; empty means the first sheet
	SkipHeader bool
}

// Result holds the outcome of an import
type Result struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer feeds file rows through the admin word validation
type Importer struct {
	words  WordAdder
	logger *zap.Logger
}

// New creates an importer
func New(words WordAdder, logger *zap.Logger) *Importer {
	return &Importer{words: words, logger: logger}
}

// Import reads cfg.FilePath and adds each row as a word.
// Rows whose word already exists are counted as skipped.
func (im *Importer) Import(ctx context.Context, cfg Config) (*Result, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(cfg.FilePath)); ext {
	case ".csv":
		rows, err = readCSV(cfg.FilePath)
	case ".xlsx", ".xlsm":
		rows, err = readExcel(cfg.FilePath, cfg.SheetName)
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: make([]string, 0)}
	for i, row := range rows {
		rowNum := i + 1
		if cfg.SkipHeader && i == 0 {
			continue
		}
		if blank(row) {
			continue
		}

		result.TotalProcessed++
		id, err := im.words.AddWord(ctx, toNewWord(row))
		switch {
		case errors.Is(err, domain.ErrDuplicateWord):
			result.Skipped++
		case err != nil:
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, apperrors.AsStructuredError(err).Message))
		default:
			result.Created++
			im.logger.Debug("Imported word", zap.Int("row", rowNum), zap.Int("word_id", id))
		}

		if ctx.Err() != nil {
			return result, ctx.Err()
		}
	}

	im.logger.Info("Import finished",
		zap.String("file", cfg.FilePath),
		zap.Int("processed", result.TotalProcessed),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func toNewWord(row []string) domain.NewWord {
	cells := make([]string, columnCount)
	copy(cells, row)
	return domain.NewWord{
		Word:      cells[colWord],
		MeaningEN: cells[colMeaningEN],
		MeaningSO: cells[colMeaningSO],
		HintEN:    cells[colHintEN],
		HintSO:    cells[colHintSO],
	}
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
