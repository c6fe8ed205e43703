package author

import "time"

// DateLayout is the wire format for calendar-date fields.
const DateLayout = "2006-01-02"

// Author is the domain entity, independent of API concerns. The ID is a
// storage-assigned surrogate key.
type Author struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Bio       *string   `json:"bio" db:"bio"`
	Birthdate time.Time `json:"birthdate" db:"birthdate"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasBio checks if the author has a biography.
func (a *Author) HasBio() bool {
	return a.Bio != nil && *a.Bio != ""
}
