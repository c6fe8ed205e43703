package author

import (
	"errors"
	"net/http"
)

var (
	// ErrAuthorNotFound - the id does not match any author row.
	ErrAuthorNotFound = errors.New("author not found")

	// ErrAuthorHasBooks - deletion blocked while books reference the author.
	// The storage cascade would happily remove the books; this guard exists
	// so it never gets the chance.
	ErrAuthorHasBooks = errors.New("cannot delete author with existing books")
)

// ToErrorCode converts a domain error to its API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrAuthorHasBooks):
		return "AUTHOR_HAS_BOOKS"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// ToHTTPStatus converts a domain error to an HTTP status code.
// Author-has-books is a 400: the caller must remove the dependent books
// before retrying.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuthorHasBooks):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
