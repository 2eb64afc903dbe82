package model

import "github.com/pkg/errors"

var (
	// ErrBookNotFound means neither the local catalog nor the external
	// source matched a title.
	ErrBookNotFound = errors.New("book not found in any source")
	// ErrDuplicateShelfEntry means the user already tracks the book.
	ErrDuplicateShelfEntry = errors.New("book already on shelf")
	// ErrShelfEntryNotFound means the caller has no entry for the book.
	ErrShelfEntryNotFound = errors.New("shelf entry not found")
	// ErrEmptyShelf means there is nothing to base recommendations on.
	ErrEmptyShelf = errors.New("no tracked books to recommend from")
)
