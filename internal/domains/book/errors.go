package book

import (
	"errors"
	"net/http"
)

var (
	// ErrBookNotFound - the id does not match any book row.
	ErrBookNotFound = errors.New("book not found")

	// ErrAuthorNotFound - the book's author_id does not reference an
	// existing author. Raised before any write is attempted.
	ErrAuthorNotFound = errors.New("author not found")
)

// ToErrorCode converts a domain error to its API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// ToHTTPStatus converts a domain error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound), errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
