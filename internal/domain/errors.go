package domain

import "errors"

var (
	// ErrNoWords is returned when the word table is empty
	ErrNoWords = errors.New("no words available")
	// ErrWordNotFound is returned when an id does not match any word
	ErrWordNotFound = errors.New("word not found")
	// ErrDuplicateWord is returned when inserting a word that already exists
	ErrDuplicateWord = errors.New("word already exists")
)
