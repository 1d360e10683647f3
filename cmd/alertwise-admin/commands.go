package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/alertwise/alertwise-backend/config"
	authdomain "github.com/alertwise/alertwise-backend/internal/auth/domain"
	authrepo "github.com/alertwise/alertwise-backend/internal/auth/repository"
	"github.com/alertwise/alertwise-backend/internal/bootstrap"
	"github.com/alertwise/alertwise-backend/internal/storage/postgres"
)

// RunSetRole is the only path that changes a Citizen's role. The Citizen
// must have synced at least once.
func RunSetRole(args []string, elevate bool) {
	if len(args) < 1 {
		log.Fatal("usage: alertwise-admin promote|demote <subject_id>")
	}
	subjectID := args[0]

	cfg := loadPostgresConfig()
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	role := authdomain.RoleMember
	if elevate {
		role = authdomain.RoleElevated
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := authrepo.NewCitizenRepository(db).SetRole(ctx, subjectID, role); err != nil {
		log.Fatalf("set role for %s: %v", subjectID, err)
	}
	fmt.Printf("%s is now %s\n", subjectID, role)
}

func RunMigrate() {
	cfg := loadPostgresConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.PostgresDSN()})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	fmt.Println("schema is up to date")
}

func loadPostgresConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Database.Driver != config.StoreDriverPostgres {
		log.Fatalf("STORE_DRIVER=%s has no persistent roles to change", cfg.Database.Driver)
	}
	return cfg
}
