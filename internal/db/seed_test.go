package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trrlb/user-directory/internal/models"
)

func TestSeedIdempotent(t *testing.T) {
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatal(err)
	}
	if err := Seed(conn); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := Seed(conn); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var teams, skills, professions int64
	conn.Model(&models.Team{}).Count(&teams)
	conn.Model(&models.Skill{}).Count(&skills)
	conn.Model(&models.Profession{}).Count(&professions)
	if teams != 2 {
		t.Fatalf("expected 2 teams got %d", teams)
	}
	if skills != 5 {
		t.Fatalf("expected 5 skills got %d", skills)
	}
	if professions != 3 {
		t.Fatalf("expected 3 professions got %d", professions)
	}

	// Bootstrap admin created exactly once, with its profile.
	var admins, profiles int64
	conn.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins)
	conn.Model(&models.Profile{}).Count(&profiles)
	if admins != 1 {
		t.Fatalf("expected 1 admin got %d", admins)
	}
	if profiles != 1 {
		t.Fatalf("expected 1 profile got %d", profiles)
	}
}
