package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role represents account role in the system
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleAdmin
}

// Account represents a teacher or admin identity
type Account struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // bcrypt
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
}

// AccountResponse is the public view of an account
type AccountResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// ToResponse strips the password hash
func (a *Account) ToResponse() *AccountResponse {
	return &AccountResponse{
		ID:       a.ID,
		Username: a.Username,
		Name:     a.Name,
		Email:    a.Email,
		Role:     a.Role,
	}
}

// Category is one of the fixed photo groupings
type Category string

const (
	CategoryMoments    Category = "moments"
	CategoryWorks      Category = "works"
	CategoryEvents     Category = "events"
	CategoryFacilities Category = "facilities"
)

// Categories lists every valid category in document order
var Categories = []Category{CategoryMoments, CategoryWorks, CategoryEvents, CategoryFacilities}

// ParseCategory returns the category named s
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Photo represents a photo record in the gallery document
type Photo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	OriginalName string    `json:"originalName"`
	FileSize     int64     `json:"fileSize"`
	Date         string    `json:"date"`
	UploadedBy   string    `json:"uploadedBy"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// GalleryDocument is the stored gallery keyed by category. Values are kept
// as raw JSON so records written by hand or by earlier versions of the site
// are carried through a rewrite unchanged.
type GalleryDocument map[string]json.RawMessage

// NewGalleryDocument returns a document with every category empty
func NewGalleryDocument() GalleryDocument {
	d := make(GalleryDocument, len(Categories))
	for _, c := range Categories {
		d[string(c)] = json.RawMessage(`[]`)
	}
	return d
}

// Records returns the raw records stored under category c. An absent or
// null category has no records.
func (d GalleryDocument) Records(c Category) ([]json.RawMessage, error) {
	raw, ok := d[string(c)]
	if !ok {
		return nil, nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("category %s: %w", c, err)
	}
	return records, nil
}

// Prepend puts photos in front of category c, keeping their order. Existing
// records are not decoded.
func (d GalleryDocument) Prepend(c Category, photos []Photo) error {
	existing, err := d.Records(c)
	if err != nil {
		return err
	}

	merged := make([]json.RawMessage, 0, len(photos)+len(existing))
	for _, p := range photos {
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode photo %s: %w", p.ID, err)
		}
		merged = append(merged, raw)
	}
	merged = append(merged, existing...)

	raw, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode category %s: %w", c, err)
	}
	d[string(c)] = raw
	return nil
}

// GalleryStats holds photo counts per category
type GalleryStats struct {
	Total      int `json:"total"`
	Moments    int `json:"moments"`
	Works      int `json:"works"`
	Events     int `json:"events"`
	Facilities int `json:"facilities"`
}

// Stats counts the photos in d. A category that is not a list counts as empty.
func (d GalleryDocument) Stats() GalleryStats {
	count := func(c Category) int {
		records, err := d.Records(c)
		if err != nil {
			return 0
		}
		return len(records)
	}
	s := GalleryStats{
		Moments:    count(CategoryMoments),
		Works:      count(CategoryWorks),
		Events:     count(CategoryEvents),
		Facilities: count(CategoryFacilities),
	}
	s.Total = s.Moments + s.Works + s.Events + s.Facilities
	return s
}

// Priority of a notice
type Priority string

const (
	PriorityNormal    Priority = "normal"
	PriorityImportant Priority = "important"
	PriorityUrgent    Priority = "urgent"
)

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityNormal, PriorityImportant, PriorityUrgent:
		return true
	}
	return false
}

// Notice represents a notice board entry
type Notice struct {
	ID       string   `json:"id,omitempty"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Priority Priority `json:"priority"`
	Date     string   `json:"date"`
	PostedBy string   `json:"postedBy,omitempty"`
}

// NoticesDocument is the persisted aggregate of all notices
type NoticesDocument struct {
	Notices []Notice `json:"notices"`
}

// NewNoticesDocument returns an empty notices document
func NewNoticesDocument() NoticesDocument {
	return NoticesDocument{Notices: []Notice{}}
}

// Normalize makes an absent list encode as []
func (d *NoticesDocument) Normalize() {
	if d.Notices == nil {
		d.Notices = []Notice{}
	}
}

// DateLayout is the calendar date format stored on records
const DateLayout = "2006-01-02"
