package models

import "time"

// BlogPost is the model for the 'blog_posts' table.
type BlogPost struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Slug      string    `json:"slug" db:"slug"`
	Excerpt   string    `json:"excerpt" db:"excerpt"`
	Body      string    `json:"body" db:"body"`
	Published bool      `json:"published" db:"published"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Policy is the model for the 'policies' table (terms, privacy, refund).
type Policy struct {
	ID        int64     `json:"id" db:"id"`
	Slug      string    `json:"slug" db:"slug"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ContactInfo is the model for the single-row 'contact_info' table.
type ContactInfo struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Address   string    `json:"address" db:"address"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
