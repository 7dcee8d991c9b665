package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits shared by the API validation tags and the SQL schema.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 2000
)

// Cake is a single cake record. The ID is assigned by the store when the
// cake is first persisted and never changes afterwards.
type Cake struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCake builds an unsaved Cake (ID zero) and validates its fields.
func NewCake(title, description string) (*Cake, error) {
	now := time.Now().UTC()
	cake := &Cake{
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := cake.Validate(); err != nil {
		return nil, err
	}

	return cake, nil
}

// Validate checks the title and description. It does not look at the ID,
// so it can be used before and after the cake is stored.
func (c *Cake) Validate() error {
	if err := validateText("title", c.Title, MaxTitleLength); err != nil {
		return err
	}
	return validateText("description", c.Description, MaxDescriptionLength)
}

// Replace overwrites title and description, keeping the ID. The cake is
// left untouched when the new values are invalid.
func (c *Cake) Replace(title, description string) error {
	candidate := Cake{Title: title, Description: description}
	if err := candidate.Validate(); err != nil {
		return err
	}

	c.Title = title
	c.Description = description
	c.UpdatedAt = time.Now().UTC()
	return nil
}


func validateText(field, value string, limit int) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, "cannot be empty", ErrEmptyContent)
	}
	if utf8.RuneCountInString(value) > limit {
		return NewValidationError(field, "is too long", ErrContentTooLong)
	}
	return nil
}
