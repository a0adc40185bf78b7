package directory

import (
	"gorm.io/gorm"

	"github.com/trrlb/user-directory/internal/models"
)

// Service is the façade callers talk to. It owns no business logic beyond
// sequencing the query builder and the write path; the error taxonomy passes
// through unchanged.
type Service struct {
	db     *gorm.DB
	writer *Writer
}

// NewService wires a service over one DB handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, writer: NewWriter(db)}
}

// List returns one page of users for the given query.
func (s *Service) List(q Query) (*Page, error) { return q.List(s.db) }

// Trashed lists only soft-deleted users, whatever q.View says.
func (s *Service) Trashed(q Query) (*Page, error) {
	q.View = ViewTrashed
	return q.List(s.db)
}

// Get loads a live user with its associations.
func (s *Service) Get(id uint) (*models.User, error) {
	return NewStore(s.db).GetUser(id)
}

// Create runs the atomic create transaction and returns the new id.
func (s *Service) Create(in UserInput) (uint, error) { return s.writer.Create(in) }

// Update runs the atomic update transaction.
func (s *Service) Update(id uint, in UserInput) error { return s.writer.Update(id, in) }

// Delete soft-deletes a user.
func (s *Service) Delete(id uint) error { return NewStore(s.db).SoftDelete(id) }

// Restore brings a soft-deleted user back.
func (s *Service) Restore(id uint) error { return NewStore(s.db).Restore(id) }
