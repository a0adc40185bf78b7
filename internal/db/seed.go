package db

import (
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/trrlb/user-directory/internal/models"
)

// Seed inserts baseline teams, professions and skills, plus a first admin
// account when the users table is empty. Safe to run repeatedly.
func Seed(conn *gorm.DB) error {
	for _, team := range []string{"Firefly", "Smuggler"} {
		if err := firstOrCreateTeam(conn, team); err != nil {
			return err
		}
	}
	for _, title := range []string{"Back-end developer", "Front-end developer", "Designer"} {
		var existing models.Profession
		err := conn.Where("title = ?", title).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&models.Profession{Title: title}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	for _, name := range []string{"HTML", "CSS", "JavaScript", "Go", "SQL"} {
		var existing models.Skill
		err := conn.Where("name = ?", name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&models.Skill{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return seedAdmin(conn)
}

func firstOrCreateTeam(conn *gorm.DB, name string) error {
	var existing models.Team
	err := conn.Where("name = ?", name).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return conn.Create(&models.Team{Name: name}).Error
	}
	return err
}

// seedAdmin creates the bootstrap admin only when no user exists yet. The
// password comes from ADMIN_PASSWORD so nothing well-known lands in prod.
func seedAdmin(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "secret"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		FirstName: "Admin",
		Email:     "admin@example.com",
		Password:  string(hash),
		Role:      models.RoleAdmin,
		Active:    true,
	}
	if err := conn.Create(&admin).Error; err != nil {
		return err
	}
	return conn.Create(&models.Profile{UserID: admin.ID, Bio: "Directory administrator"}).Error
}
