// Seeds local development data: one user per role plus a few widgets for
// the common user. Idempotent; existing emails are skipped.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"homewidget/internal/config"
	"homewidget/internal/database"
	"homewidget/internal/domain"
	"homewidget/internal/pkg/password"
	"homewidget/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.RefreshToken{}, &domain.Widget{}); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	widgets := repository.NewWidgetRepository(db)

	seedUsers := []struct {
		email    string
		role     domain.UserRole
		password string
	}{
		{"demo@example.com", domain.RoleDemo, "Demo1234!"},
		{"common@example.com", domain.RoleCommon, "Common1234!"},
		{"premium@example.com", domain.RolePremium, "Premium1234!"},
	}

	var commonID int64
	for _, su := range seedUsers {
		hash, err := password.Hash(su.password)
		if err != nil {
			log.Fatal(err)
		}
		u := &domain.User{Email: su.email, PasswordHash: hash, Role: su.role, IsActive: true}
		if err := users.Create(ctx, u); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				existing, err := users.GetByEmail(ctx, su.email)
				if err != nil {
					log.Fatal(err)
				}
				u = existing
			} else {
				log.Fatal(err)
			}
		}
		if su.role == domain.RoleCommon {
			commonID = u.ID
		}
		log.Printf("user %s (%s) id=%d", u.Email, u.Role, u.ID)
	}

	existing, err := widgets.ListByOwner(ctx, commonID)
	if err != nil {
		log.Fatal(err)
	}
	if len(existing) > 0 {
		log.Printf("widgets already seeded for user %d", commonID)
		return
	}

	seedWidgets := []domain.Widget{
		{Name: "Welcome", Title: "Welcome aboard", Slot: "top", Priority: 50, Enabled: true, OwnerID: commonID},
		{Name: "News", Title: "Latest news", Slot: "main", Priority: 30, Enabled: true, OwnerID: commonID},
		{Name: "Premium Teaser", Slot: "main", Priority: 40, Enabled: true, OwnerID: commonID,
			VisibilityRules: []string{"premium"}},
		{Name: "Flash Sale", Slot: "top", Priority: 90, Enabled: true, OwnerID: commonID,
			FreshnessTTL: 3600},
	}
	for i := range seedWidgets {
		if err := widgets.Create(ctx, &seedWidgets[i]); err != nil {
			log.Fatal(err)
		}
		log.Printf("widget %q id=%d", seedWidgets[i].Name, seedWidgets[i].ID)
	}
}
