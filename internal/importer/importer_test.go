package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ereyga/internal/domain"
	"ereyga/internal/service"
	"ereyga/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var header = []string{"word", "meaning_en", "meaning_so", "hint_en", "hint_so"}

func newTestImporter() (*Importer, *testutil.MockWordRepository) {
	repo := new(testutil.MockWordRepository)
	admin := service.NewAdminService(repo, new(testutil.MockFeedbackRepository), testutil.NewTestLogger())
	return New(admin, testutil.NewTestLogger()), repo
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &values))
	}

	path := filepath.Join(t.TempDir(), "words.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImport_CSV(t *testing.T) {
	im, repo := newTestImporter()
	path := writeCSV(t, "word,meaning_en,meaning_so,hint_en,hint_so\n"+
		"apple,a fruit,tufaax,red,casaan\n"+
		"banana,a fruit,moos,yellow,jaalle\n"+
		",,,,\n"+
		"cherry,a fruit,,small,yar\n")

	repo.On("CreateWord", mock.Anything, domain.NewWord{
		Word: "apple", MeaningEN: "a fruit", MeaningSO: "tufaax", HintEN: "red", HintSO: "casaan",
	}).Return(1, nil)
	repo.On("CreateWord", mock.Anything, domain.NewWord{
		Word: "banana", MeaningEN: "a fruit", MeaningSO: "moos", HintEN: "yellow", HintSO: "jaalle",
	}).Return(0, domain.ErrDuplicateWord)

	result, err := im.Import(context.Background(), Config{FilePath: path, SkipHeader: true})

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Row 5")
	assert.Contains(t, result.Errors[0], "meaning_so")
	repo.AssertExpectations(t)
}

func TestImport_Excel(t *testing.T) {
	im, repo := newTestImporter()
	path := writeXLSX(t, [][]string{
		header,
		{"apple", "a fruit", "tufaax", "red", "casaan"},
		{"banana", "a fruit", "moos", "yellow"},
	})

	repo.On("CreateWord", mock.Anything, domain.NewWord{
		Word: "apple", MeaningEN: "a fruit", MeaningSO: "tufaax", HintEN: "red", HintSO: "casaan",
	}).Return(1, nil)

	result, err := im.Import(context.Background(), Config{FilePath: path, SkipHeader: true})

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Row 3: Missing fields: hint_so")
	repo.AssertExpectations(t)
}

func TestImport_NoHeader(t *testing.T) {
	im, repo := newTestImporter()
	path := writeCSV(t, "apple,a fruit,tufaax,red,casaan\n")

	repo.On("CreateWord", mock.Anything, mock.Anything).Return(1, nil)

	result, err := im.Import(context.Background(), Config{FilePath: path})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	repo.AssertExpectations(t)
}

func TestImport_Errors(t *testing.T) {
	im, _ := newTestImporter()

	_, err := im.Import(context.Background(), Config{FilePath: "words.json"})
	assert.ErrorContains(t, err, "unsupported file type")

	_, err = im.Import(context.Background(), Config{FilePath: filepath.Join(t.TempDir(), "missing.csv")})
	assert.ErrorContains(t, err, "failed to open CSV file")

	path := writeXLSX(t, [][]string{header})
	_, err = im.Import(context.Background(), Config{FilePath: path, SheetName: "Nope"})
	assert.Error(t, err)
}
