package directory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trrlb/user-directory/internal/models"
)

func TestListFiltersByState(t *testing.T) {
	conn := setupTestDB(t)
	active := makeUser(t, conn, func(u *models.User) { u.Active = true })
	inactive := makeUser(t, conn, func(u *models.User) { u.Active = false })

	page, err := Query{State: StateActive}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{active.ID}, userIDs(page))

	page, err = Query{State: StateInactive}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{inactive.ID}, userIDs(page))

	page, err = Query{}.List(conn)
	require.NoError(t, err)
	assert.Len(t, page.Users, 2)
}

func TestTrashedViewPartition(t *testing.T) {
	conn := setupTestDB(t)
	alive := makeUser(t, conn, nil)
	trashed := makeUser(t, conn, nil)
	require.NoError(t, conn.Delete(&models.User{}, trashed.ID).Error)

	page, err := Query{}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{alive.ID}, userIDs(page))

	page, err = Query{View: ViewTrashed}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{trashed.ID}, userIDs(page))
	assert.Equal(t, int64(1), page.Total)
}

func TestSearchByPartialFirstName(t *testing.T) {
	conn := setupTestDB(t)
	joel := makeUser(t, conn, func(u *models.User) { u.FirstName = "Joel" })
	makeUser(t, conn, func(u *models.User) { u.FirstName = "Ellie" })

	page, err := Query{Search: "Jo"}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{joel.ID}, userIDs(page))
}

func TestSearchByFullName(t *testing.T) {
	conn := setupTestDB(t)
	joel := makeUser(t, conn, func(u *models.User) {
		u.FirstName = "Joel"
		u.LastName = "Miller"
	})
	// Same first name, different last name: the multi-word term must match
	// the concatenation, not each word independently.
	makeUser(t, conn, func(u *models.User) {
		u.FirstName = "Joel"
		u.LastName = "Williams"
	})

	page, err := Query{Search: "Joel Miller"}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{joel.ID}, userIDs(page))

	page, err = Query{Search: "Joel M"}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{joel.ID}, userIDs(page))
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	conn := setupTestDB(t)
	joel := makeUser(t, conn, func(u *models.User) { u.FirstName = "Joel" })

	page, err := Query{Search: "jOeL"}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{joel.ID}, userIDs(page))
}

func TestSearchByEmail(t *testing.T) {
	conn := setupTestDB(t)
	joel := makeUser(t, conn, func(u *models.User) { u.Email = "joel@example.com" })
	makeUser(t, conn, func(u *models.User) { u.Email = "ellie@example.com" })

	page, err := Query{Search: "joel@example.com"}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{joel.ID}, userIDs(page))
}

func TestSearchByTeamName(t *testing.T) {
	conn := setupTestDB(t)
	firefly := makeTeam(t, conn, "Firefly")
	smuggler := makeTeam(t, conn, "Smuggler")
	marlene := makeUser(t, conn, func(u *models.User) {
		u.FirstName = "Marlene"
		u.TeamID = &firefly.ID
	})
	makeUser(t, conn, func(u *models.User) {
		u.FirstName = "Joel"
		u.TeamID = &smuggler.ID
	})
	makeUser(t, conn, func(u *models.User) {
		u.FirstName = "Ellie"
		u.TeamID = nil
	})

	page, err := Query{Search: "Firefly"}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{marlene.ID}, userIDs(page))

	page, err = Query{Search: "Fire"}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{marlene.ID}, userIDs(page))
}

func TestSearchNoResultsIsNotAnError(t *testing.T) {
	conn := setupTestDB(t)
	makeUser(t, conn, nil)

	page, err := Query{Search: "nobody-matches-this"}.List(conn)
	require.NoError(t, err)
	assert.Empty(t, page.Users)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, 0, page.From)
}

func TestPaginationIsDeterministic(t *testing.T) {
	conn := setupTestDB(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []uint
	for i := 0; i < 17; i++ {
		u := makeUser(t, conn, func(u *models.User) {
			u.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		})
		ids = append(ids, u.ID)
	}

	q := Query{Sort: "created_at", Direction: "desc"}
	page1, err := q.List(conn)
	require.NoError(t, err)
	require.Len(t, page1.Users, 15)
	assert.Equal(t, int64(17), page1.Total)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, 1, page1.From)
	assert.Equal(t, 15, page1.To)
	// Most recently created first.
	assert.Equal(t, ids[16], page1.Users[0].ID)

	q.Page = 2
	page2, err := q.List(conn)
	require.NoError(t, err)
	require.Len(t, page2.Users, 2)
	assert.Equal(t, 16, page2.From)
	assert.Equal(t, 17, page2.To)
	// The two oldest land on page 2, still in descending order.
	assert.Equal(t, []uint{ids[1], ids[0]}, userIDs(page2))

	// No user appears on both pages.
	seen := map[uint]bool{}
	for _, id := range userIDs(page1) {
		seen[id] = true
	}
	for _, id := range userIDs(page2) {
		assert.False(t, seen[id], "user %d appears on both pages", id)
	}
}

func TestSortTiesBrokenByID(t *testing.T) {
	conn := setupTestDB(t)
	first := makeUser(t, conn, func(u *models.User) { u.FirstName = "Tess" })
	second := makeUser(t, conn, func(u *models.User) { u.FirstName = "Tess" })

	page, err := Query{Sort: "name"}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{first.ID, second.ID}, userIDs(page))
}

func TestSortByEmailDescending(t *testing.T) {
	conn := setupTestDB(t)
	a := makeUser(t, conn, func(u *models.User) { u.Email = "a@example.com" })
	b := makeUser(t, conn, func(u *models.User) { u.Email = "b@example.com" })

	page, err := Query{Sort: "email", Direction: "desc"}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID, a.ID}, userIDs(page))
}

func TestInvalidParametersRejected(t *testing.T) {
	conn := setupTestDB(t)

	_, err := Query{Sort: "password"}.List(conn)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Query{Direction: "sideways"}.List(conn)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Query{View: "purgatory"}.List(conn)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Query{State: "dormant"}.List(conn)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Query{Page: -1}.List(conn)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Query{PerPage: -5}.List(conn)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestStateFilterAppliesToTrashedView(t *testing.T) {
	conn := setupTestDB(t)
	activeTrashed := makeUser(t, conn, func(u *models.User) { u.Active = true })
	inactiveTrashed := makeUser(t, conn, func(u *models.User) { u.Active = false })
	require.NoError(t, conn.Delete(&models.User{}, activeTrashed.ID).Error)
	require.NoError(t, conn.Delete(&models.User{}, inactiveTrashed.ID).Error)

	page, err := Query{View: ViewTrashed, State: StateInactive}.List(conn)
	require.NoError(t, err)
	assert.Equal(t, []uint{inactiveTrashed.ID}, userIDs(page))
}
