package author

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxNameLength = 255
	MaxBioLength  = 5000
)

// AuthorRequest - POST /v1/authors and PUT /v1/authors/:id.
// Updates are full replacements, so create and update share one shape.
type AuthorRequest struct {
	Name      string  `json:"name"`
	Bio       *string `json:"bio,omitempty"`
	Birthdate string  `json:"birthdate"`
}

func (r AuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.By(notBlank),
			validation.Length(1, MaxNameLength),
		),
		validation.Field(&r.Bio,
			validation.Length(0, MaxBioLength),
		),
		validation.Field(&r.Birthdate,
			validation.Required.Error("birthdate is required"),
			validation.Date(DateLayout).Error("birthdate must be an ISO-8601 date (YYYY-MM-DD)"),
		),
	)
}

// notBlank rejects values that are empty once trimmed; Required alone lets
// all-whitespace strings through.
func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// AuthorResponse is the wire representation of an Author.
type AuthorResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio,omitempty"`
	Birthdate string    `json:"birthdate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts an Author entity to its wire representation.
func (a Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		Birthdate: a.Birthdate.Format(DateLayout),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ToEntity converts a validated request into an Author entity. Call
// Validate first; the date parse cannot fail afterwards.
func (r *AuthorRequest) ToEntity() (*Author, error) {
	birthdate, err := time.Parse(DateLayout, r.Birthdate)
	if err != nil {
		return nil, err
	}
	return &Author{
		Name:      strings.TrimSpace(r.Name),
		Bio:       r.Bio,
		Birthdate: birthdate,
	}, nil
}
