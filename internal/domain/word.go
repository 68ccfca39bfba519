package domain

import "strings"

// Word is a candidate in the daily rotation pool
type Word struct {
	ID        int    `db:"id"`
	Word      string `db:"word"`
	MeaningEN string `db:"meaning_en"`
	MeaningSO string `db:"meaning_so"`
	HintEN    string `db:"hint_en"`
	HintSO    string `db:"hint_so"`
	Used      bool   `db:"used"`
}

// DailyWord is the public view of the word of the day
type DailyWord struct {
	Solution  string `json:"solution"`
	MeaningEN string `json:"meaning_en"`
	MeaningSO string `json:"meaning_so"`
	HintEN    string `json:"hint_en"`
	HintSO    string `json:"hint_so"`
}

// Public strips internal fields
func (w Word) Public() DailyWord {
	return DailyWord{
		Solution:  w.Word,
		MeaningEN: w.MeaningEN,
		MeaningSO: w.MeaningSO,
		HintEN:    w.HintEN,
		HintSO:    w.HintSO,
	}
}

// NewWord holds the fields an admin submits for a new word
type NewWord struct {
	Word      string `json:"word"`
	MeaningEN string `json:"meaning_en"`
	MeaningSO string `json:"meaning_so"`
	HintEN    string `json:"hint_en"`
	HintSO    string `json:"hint_so"`
}

// Normalize trims surrounding whitespace from every field
func (n NewWord) Normalize() NewWord {
	return NewWord{
		Word:      strings.TrimSpace(n.Word),
		MeaningEN: strings.TrimSpace(n.MeaningEN),
		MeaningSO: strings.TrimSpace(n.MeaningSO),
		HintEN:    strings.TrimSpace(n.HintEN),
		HintSO:    strings.TrimSpace(n.HintSO),
	}
}

// MissingFields returns the JSON names of empty fields
func (n NewWord) MissingFields() []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"word", n.Word},
		{"meaning_en", n.MeaningEN},
		{"meaning_so", n.MeaningSO},
		{"hint_en", n.HintEN},
		{"hint_so", n.HintSO},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// WordPatch is a partial update of a word's text.
// Nil fields are left untouched; the word itself is immutable.
type WordPatch struct {
	MeaningEN *string `json:"meaning_en"`
	MeaningSO *string `json:"meaning_so"`
	HintEN    *string `json:"hint_en"`
	HintSO    *string `json:"hint_so"`
}

// IsEmpty reports whether the patch carries no fields
func (p WordPatch) IsEmpty() bool {
	return p.MeaningEN == nil && p.MeaningSO == nil && p.HintEN == nil && p.HintSO == nil
}

// Columns returns the column/value pairs present in the patch, in a fixed order
func (p WordPatch) Columns() ([]string, []any) {
	var cols []string
	var vals []any
	add := func(col string, v *string) {
		if v != nil {
			cols = append(cols, col)
			vals = append(vals, *v)
		}
	}
	add("meaning_en", p.MeaningEN)
	add("meaning_so", p.MeaningSO)
	add("hint_en", p.HintEN)
	add("hint_so", p.HintSO)
	return cols, vals
}
