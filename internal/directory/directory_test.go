package directory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trrlb/user-directory/internal/db"
	"github.com/trrlb/user-directory/internal/models"
)

var emailSeq int

// setupTestDB opens a unique in-memory database per test to avoid
// cross-test collisions.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return conn
}

func makeUser(t *testing.T, conn *gorm.DB, mut func(*models.User)) models.User {
	t.Helper()
	emailSeq++
	u := models.User{
		FirstName: "Joel",
		LastName:  "Miller",
		Email:     fmt.Sprintf("user%d@example.com", emailSeq),
		Password:  "irrelevant-hash",
		Role:      models.RoleUser,
		Active:    true,
	}
	if mut != nil {
		mut(&u)
	}
	require.NoError(t, conn.Create(&u).Error)
	return u
}

func makeTeam(t *testing.T, conn *gorm.DB, name string) models.Team {
	t.Helper()
	team := models.Team{Name: name}
	require.NoError(t, conn.Create(&team).Error)
	return team
}

func makeSkill(t *testing.T, conn *gorm.DB, name string) models.Skill {
	t.Helper()
	skill := models.Skill{Name: name}
	require.NoError(t, conn.Create(&skill).Error)
	return skill
}

func makeProfession(t *testing.T, conn *gorm.DB, title string) models.Profession {
	t.Helper()
	p := models.Profession{Title: title}
	require.NoError(t, conn.Create(&p).Error)
	return p
}

func userIDs(p *Page) []uint {
	ids := make([]uint, len(p.Users))
	for i, u := range p.Users {
		ids[i] = u.ID
	}
	return ids
}
