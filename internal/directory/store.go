package directory

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/trrlb/user-directory/internal/models"
)

// Store runs the low-level entity operations against a single *gorm.DB
// handle, which may be a plain connection or an open transaction.
type Store struct {
	db *gorm.DB
}

// NewStore wraps a DB handle.
func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// UserFields is the writable column set of a user row. Password must already
// be hashed.
type UserFields struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
	Active    bool
	TeamID    *uint
}

// ProfileFields is the writable column set of a profile row. Nil pointers
// clear the stored value.
type ProfileFields struct {
	Bio          string
	Twitter      *string
	ProfessionID *uint
}

// InsertUser creates a user row. The email must not be in use by another
// live user; soft-deleted rows do not block reuse. A missing role defaults
// to "user".
func (s *Store) InsertUser(f UserFields) (uint, error) {
	taken, err := s.emailTaken(f.Email, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, fmt.Errorf("%w: email %q already in use", ErrConstraintViolation, f.Email)
	}
	role := f.Role
	if role == "" {
		role = models.RoleUser
	}
	u := models.User{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
		Role:      role,
		Active:    f.Active,
		TeamID:    f.TeamID,
	}
	if err := s.db.Create(&u).Error; err != nil {
		return 0, err
	}
	return u.ID, nil
}

// UpdateUser overwrites every column in f on an existing row; soft-deleted
// rows count as existing. The uniqueness check skips the row itself, so a
// self-update with an unchanged email succeeds.
func (s *Store) UpdateUser(id uint, f UserFields) error {
	if err := s.exists(id); err != nil {
		return err
	}
	taken, err := s.emailTaken(f.Email, id)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: email %q already in use", ErrConstraintViolation, f.Email)
	}
	return s.db.Unscoped().Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"email":      f.Email,
		"password":   f.Password,
		"role":       f.Role,
		"active":     f.Active,
		"team_id":    f.TeamID,
	}).Error
}

// UserByID loads a bare user row, including soft-deleted ones.
func (s *Store) UserByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.Unscoped().First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &u, nil
}

// GetUser loads a live user with its team, profile and skills.
func (s *Store) GetUser(id uint) (*models.User, error) {
	var u models.User
	err := s.db.Preload("Team").Preload("Profile").Preload("Skills").First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SoftDelete stamps deleted_at on a live user. Deleting an already-deleted
// user is a no-op success; an unknown id is ErrNotFound.
func (s *Store) SoftDelete(id uint) error {
	if err := s.exists(id); err != nil {
		return err
	}
	return s.db.Delete(&models.User{}, id).Error
}

// Restore clears deleted_at. Restoring an already-live user is a no-op
// success; an unknown id is ErrNotFound.
func (s *Store) Restore(id uint) error {
	if err := s.exists(id); err != nil {
		return err
	}
	return s.db.Unscoped().Model(&models.User{}).Where("id = ?", id).
		Update("deleted_at", nil).Error
}

// ReplaceSkills makes the user's skill set exactly skillIDs, inserting the
// missing pairs and deleting the stale ones. An empty list detaches
// everything.
func (s *Store) ReplaceSkills(userID uint, skillIDs []uint) error {
	desired := dedupe(skillIDs)
	if len(desired) > 0 {
		var n int64
		if err := s.db.Model(&models.Skill{}).Where("id IN ?", desired).Count(&n).Error; err != nil {
			return err
		}
		if int(n) != len(desired) {
			return fmt.Errorf("%w: unknown skill id in %v", ErrConstraintViolation, skillIDs)
		}
	}
	var current []uint
	if err := s.db.Table("skill_user").Where("user_id = ?", userID).
		Pluck("skill_id", &current).Error; err != nil {
		return err
	}
	add, remove := diffSets(desired, current)
	for _, sid := range add {
		if err := s.db.Exec(
			"INSERT INTO skill_user (user_id, skill_id) VALUES (?, ?)", userID, sid,
		).Error; err != nil {
			return err
		}
	}
	if len(remove) > 0 {
		if err := s.db.Exec(
			"DELETE FROM skill_user WHERE user_id = ? AND skill_id IN ?", userID, remove,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpsertProfile writes the user's profile, creating it on first write. A
// profession reference must resolve to a live profession.
func (s *Store) UpsertProfile(userID uint, f ProfileFields) error {
	if f.ProfessionID != nil {
		var n int64
		if err := s.db.Model(&models.Profession{}).Where("id = ?", *f.ProfessionID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: profession %d does not exist", ErrConstraintViolation, *f.ProfessionID)
		}
	}
	var p models.Profile
	err := s.db.Where("user_id = ?", userID).First(&p).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		p = models.Profile{UserID: userID, Bio: f.Bio, Twitter: f.Twitter, ProfessionID: f.ProfessionID}
		return s.db.Create(&p).Error
	case err != nil:
		return err
	}
	return s.db.Model(&p).Updates(map[string]any{
		"bio":           f.Bio,
		"twitter":       f.Twitter,
		"profession_id": f.ProfessionID,
	}).Error
}

// exists checks for a user row regardless of soft-delete state.
func (s *Store) exists(id uint) error {
	var n int64
	if err := s.db.Unscoped().Model(&models.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return nil
}

// emailTaken reports whether a live user other than selfID holds the email.
// The default GORM scope already excludes soft-deleted rows here.
func (s *Store) emailTaken(email string, selfID uint) (bool, error) {
	q := s.db.Model(&models.User{}).Where("email = ?", email)
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// diffSets splits desired vs current membership into the ids to insert and
// the ids to delete. Both outputs are sorted so the generated SQL is stable.
func diffSets(desired, current []uint) (add, remove []uint) {
	want := make(map[uint]bool, len(desired))
	for _, id := range desired {
		want[id] = true
	}
	have := make(map[uint]bool, len(current))
	for _, id := range current {
		have[id] = true
	}
	for id := range want {
		if !have[id] {
			add = append(add, id)
		}
	}
	for id := range have {
		if !want[id] {
			remove = append(remove, id)
		}
	}
	sort.Slice(add, func(i, j int) bool { return add[i] < add[j] })
	sort.Slice(remove, func(i, j int) bool { return remove[i] < remove[j] })
	return add, remove
}

// dedupe drops duplicate ids, preserving first-seen order.
func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
