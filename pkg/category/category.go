package category

import (
	"errors"
	"time"
)

// ErrCategoryNotFound is returned both for missing categories and for categories of another owner.
var ErrCategoryNotFound = errors.New("category not found")

type Category struct {
	Id        int
	Name      string
	Color     string
	Icon      string
	OwnerId   int
	CreatedAt time.Time
}

// Update holds the fields of a partial update; nil fields are left unchanged.
type Update struct {
	Name  *string
	Color *string
	Icon  *string
}

func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Color == nil && u.Icon == nil
}

func (u Update) apply(c Category) Category {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Color != nil {
		c.Color = *u.Color
	}
	if u.Icon != nil {
		c.Icon = *u.Icon
	}
	return c
}
