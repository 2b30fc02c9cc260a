// Command seed loads demo reference data and users for local development:
// three bases, a small equipment catalog and one user per role.
package main

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jcastell/milasset-api/internal/domain/entity"
	"github.com/jcastell/milasset-api/internal/infrastructure/postgres"
	"github.com/jcastell/milasset-api/pkg/config"
	"github.com/jcastell/milasset-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	baseRepo := postgres.NewBaseRepository(pool)
	equipRepo := postgres.NewEquipmentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	bases := []*entity.Base{
		{Name: "Base Alpha"},
		{Name: "Base Bravo"},
		{Name: "Base Charlie"},
	}
	for _, b := range bases {
		if err := baseRepo.Create(ctx, b); err != nil {
			log.Fatal().Err(err).Str("base", b.Name).Msg("seed base")
		}
		log.Info().Int64("id", b.ID).Str("name", b.Name).Msg("base created")
	}

	catalog := []*entity.EquipmentType{
		{Name: "Rifle", Category: "weapon"},
		{Name: "Ammunition Crate", Category: "ammunition"},
		{Name: "Jeep", Category: "vehicle"},
		{Name: "Radio Set", Category: "communications"},
		{Name: "Medical Kit", Category: "medical"},
	}
	for _, e := range catalog {
		if err := equipRepo.Create(ctx, e); err != nil {
			log.Fatal().Err(err).Str("equipment", e.Name).Msg("seed equipment")
		}
		log.Info().Int64("id", e.ID).Str("name", e.Name).Msg("equipment created")
	}

	users := []struct {
		username, name, password, role string
		baseID                         int64
	}{
		{"admin1", "System Administrator", "admin123", entity.RoleAdmin, 0},
		{"commander1", "Cdr. Base Alpha", "cmd123", entity.RoleBaseCommander, bases[0].ID},
		{"logistics1", "Logistics Officer", "log123", entity.RoleLogisticsOfficer, 0},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
		user := &entity.User{
			Username:     u.username,
			Name:         u.name,
			PasswordHash: string(hash),
			Role:         u.role,
			BaseID:       u.baseID,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("seed user")
		}
		log.Info().Str("username", u.username).Str("role", u.role).Msg("user created")
	}

	log.Info().Msg("seeding complete")
}
