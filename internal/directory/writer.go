package directory

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInput is the full payload of a create or update. Every field
// overwrites the stored value; Password is the one exception, where an empty
// value on update keeps the current hash. Clearing any other field requires
// passing its empty value explicitly.
type UserInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string // plaintext; hashed before it touches the store
	Role         string
	Active       bool
	TeamID       *uint
	Bio          string
	Twitter      *string
	ProfessionID *uint
	SkillIDs     []uint
}

// Writer runs the multi-table write path. Each call is one transaction:
// either the user, its profile and its skill set all commit, or none do.
type Writer struct {
	db *gorm.DB
}

// NewWriter wraps a DB handle.
func NewWriter(db *gorm.DB) *Writer { return &Writer{db: db} }

// Create inserts the user, its profile and its skill attachments atomically.
// The first constraint violation aborts the whole unit.
func (w *Writer) Create(in UserInput) (uint, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	var id uint
	err = w.db.Transaction(func(tx *gorm.DB) error {
		st := NewStore(tx)
		var err error
		id, err = st.InsertUser(UserFields{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			Password:  string(hash),
			Role:      in.Role,
			Active:    in.Active,
			TeamID:    in.TeamID,
		})
		if err != nil {
			return err
		}
		if err := st.UpsertProfile(id, ProfileFields{
			Bio:          in.Bio,
			Twitter:      in.Twitter,
			ProfessionID: in.ProfessionID,
		}); err != nil {
			return err
		}
		return st.ReplaceSkills(id, in.SkillIDs)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update overwrites the user, its profile and its skill set atomically. The
// skill set is replaced wholesale, even to empty. The user row is written
// first so its row lock serializes concurrent updates before the skill diff
// runs.
func (w *Writer) Update(id uint, in UserInput) error {
	return w.db.Transaction(func(tx *gorm.DB) error {
		st := NewStore(tx)
		current, err := st.UserByID(id)
		if err != nil {
			return err
		}
		hash := current.Password
		if in.Password != "" {
			h, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			hash = string(h)
		}
		if err := st.UpdateUser(id, UserFields{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			Password:  hash,
			Role:      in.Role,
			Active:    in.Active,
			TeamID:    in.TeamID,
		}); err != nil {
			return err
		}
		if err := st.UpsertProfile(id, ProfileFields{
			Bio:          in.Bio,
			Twitter:      in.Twitter,
			ProfessionID: in.ProfessionID,
		}); err != nil {
			return err
		}
		return st.ReplaceSkills(id, in.SkillIDs)
	})
}
