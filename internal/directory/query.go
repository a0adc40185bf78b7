package directory

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/trrlb/user-directory/internal/models"
)

// Listing views. The two are mutually exclusive and exhaustive: the active
// view returns only live rows, the trashed view only soft-deleted ones.
const (
	ViewActive  = "active"
	ViewTrashed = "trashed"
)

// State filter values for the active flag; independent of the view.
const (
	StateActive   = "active"
	StateInactive = "inactive"
)

// DefaultPerPage is the page size the admin screens render.
const DefaultPerPage = 15

// sortColumns is the allow-list of sortable columns. "name" is accepted as
// an alias for first_name so both naming schemes used by callers work.
var sortColumns = map[string]string{
	"":           "first_name",
	"name":       "first_name",
	"first_name": "first_name",
	"email":      "email",
	"created_at": "created_at",
}

// Query is one immutable set of listing parameters. The zero value lists the
// first page of live users sorted by first name ascending. Unknown sort
// columns, directions, views and states are rejected, not ignored.
type Query struct {
	View      string // ViewActive (default) or ViewTrashed
	State     string // "", StateActive or StateInactive
	Search    string // case-insensitive substring over full name, email or team name
	Sort      string // name/first_name, email, created_at
	Direction string // "asc" (default) or "desc"
	Page      int    // 1-based; 0 means 1
	PerPage   int    // 0 means DefaultPerPage
}

// Page is one bounded slice of the full result set, with enough metadata to
// render pagination controls. From/To are absolute 1-based row numbers, so
// row numbering continues across pages.
type Page struct {
	Users      []models.User `json:"users"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	TotalPages int           `json:"total_pages"`
	From       int           `json:"from"`
	To         int           `json:"to"`
}

// List runs the query and returns one deterministic page. Ties in the sort
// column are broken by users.id ascending so rows never migrate between
// pages. An empty result set is a valid page, not an error.
func (q Query) List(db *gorm.DB) (*Page, error) {
	page := q.Page
	if page == 0 {
		page = 1
	}
	if page < 0 {
		return nil, fmt.Errorf("%w: page %d", ErrInvalidParameter, q.Page)
	}
	perPage := q.PerPage
	if perPage == 0 {
		perPage = DefaultPerPage
	}
	if perPage < 0 {
		return nil, fmt.Errorf("%w: per_page %d", ErrInvalidParameter, q.PerPage)
	}

	column, ok := sortColumns[q.Sort]
	if !ok {
		return nil, fmt.Errorf("%w: sort column %q", ErrInvalidParameter, q.Sort)
	}
	dir := strings.ToLower(q.Direction)
	switch dir {
	case "":
		dir = "asc"
	case "asc", "desc":
	default:
		return nil, fmt.Errorf("%w: direction %q", ErrInvalidParameter, q.Direction)
	}

	tx := db.Model(&models.User{})
	switch q.View {
	case "", ViewActive:
		// the default GORM scope already hides soft-deleted rows
	case ViewTrashed:
		tx = tx.Unscoped().Where("users.deleted_at IS NOT NULL")
	default:
		return nil, fmt.Errorf("%w: view %q", ErrInvalidParameter, q.View)
	}

	switch q.State {
	case "":
	case StateActive:
		tx = tx.Where("users.active = ?", true)
	case StateInactive:
		tx = tx.Where("users.active = ?", false)
	default:
		return nil, fmt.Errorf("%w: state %q", ErrInvalidParameter, q.State)
	}

	if s := strings.TrimSpace(q.Search); s != "" {
		// Full name is the space-joined concatenation, trimmed so a missing
		// last name leaves no trailing space. The team join is LEFT so users
		// without a team simply never match on that branch. The expression
		// works unchanged on postgres and sqlite.
		needle := "%" + strings.ToLower(s) + "%"
		tx = tx.Joins("LEFT JOIN teams ON teams.id = users.team_id").
			Where("lower(trim(users.first_name || ' ' || users.last_name)) LIKE ?"+
				" OR lower(users.email) LIKE ?"+
				" OR lower(teams.name) LIKE ?",
				needle, needle, needle)
	}

	// Count on a fresh session so the statement can be reused for the page
	// fetch below.
	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage
	var users []models.User
	err := tx.Order(fmt.Sprintf("users.%s %s, users.id asc", column, dir)).
		Preload("Team").Preload("Profile").Preload("Skills").
		Limit(perPage).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	p := &Page{
		Users:      users,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
	}
	if len(users) > 0 {
		p.From = offset + 1
		p.To = offset + len(users)
	}
	return p, nil
}
