package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/config"
	"github.com/spec-kit/audit-tracker/internal/domain"
	"github.com/spec-kit/audit-tracker/internal/observability"
	"github.com/spec-kit/audit-tracker/internal/persistence"
	"github.com/spec-kit/audit-tracker/internal/repository"
	"github.com/spec-kit/audit-tracker/migrations"
)

const defaultSeedPassword = "ChangeMe-2024!"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.App.Env == config.EnvProduction {
		log.Fatal("refusing to seed a production environment")
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), migrations.FS, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = defaultSeedPassword
	}
	if err := seed(ctx, pg, cfg.Auth.BcryptCost, password, logger); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("seeding complete")
}

func seed(ctx context.Context, pg *persistence.Postgres, cost int, password string, logger *zap.Logger) error {
	pool := pg.PoolHandle()
	users := repository.NewUserRepository(pool)
	audits := repository.NewAuditRepository(pool)
	checklists := repository.NewChecklistRepository(pool)
	documents := repository.NewDocumentRepository(pool)
	reports := repository.NewReportRepository(pool)
	activities := repository.NewActivityRepository(pool)

	hash, err := auth.HashPassword(password, cost)
	if err != nil {
		return err
	}
	accounts := map[domain.Role]*domain.User{}
	for _, u := range sampleUsers {
		user := u
		user.PasswordHash = hash
		if err := upsertUser(ctx, users, &user); err != nil {
			return fmt.Errorf("user %s: %w", user.Email, err)
		}
		accounts[user.Role] = &user
	}
	logger.Info("users seeded", zap.Int("count", len(sampleUsers)))

	for i := range sampleAudits {
		if err := audits.Upsert(ctx, &sampleAudits[i]); err != nil {
			return fmt.Errorf("audit %s: %w", sampleAudits[i].ID, err)
		}
	}
	for i := range sampleChecklists {
		if err := checklists.Upsert(ctx, &sampleChecklists[i]); err != nil {
			return fmt.Errorf("checklist %s: %w", sampleChecklists[i].ID, err)
		}
	}
	for i := range sampleDocuments {
		if err := documents.Upsert(ctx, &sampleDocuments[i]); err != nil {
			return fmt.Errorf("document %s: %w", sampleDocuments[i].ID, err)
		}
	}
	for _, r := range sampleReports() {
		report := r
		report.GeneratedByID = accounts[domain.RoleAuditor].ID
		if err := reports.Upsert(ctx, &report); err != nil {
			return fmt.Errorf("report %s: %w", report.ID, err)
		}
	}
	logger.Info("records seeded",
		zap.Int("audits", len(sampleAudits)),
		zap.Int("checklists", len(sampleChecklists)),
		zap.Int("documents", len(sampleDocuments)))

	existing, err := activities.ListRecent(ctx, 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("activity feed already populated, skipping")
		return nil
	}
	feed := sampleActivities()
	for i := range feed {
		if err := activities.Create(ctx, &feed[i]); err != nil {
			return err
		}
	}
	return nil
}

func upsertUser(ctx context.Context, users repository.UserRepository, user *domain.User) error {
	existing, err := users.GetByEmail(ctx, user.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return users.Create(ctx, user)
	}
	if err != nil {
		return err
	}
	user.ID = existing.ID
	return users.Update(ctx, user)
}

// sampleActivities is oldest first so the newest entry is inserted last.
func sampleActivities() []domain.Activity {
	var feed []domain.Activity
	for _, a := range sampleAudits {
		feed = append(feed, domain.Activity{Type: domain.ActivityTypeAudit, Date: a.StartDate,
			Description: fmt.Sprintf("Audit \"%s\" scheduled.", a.Name)})
	}
	for _, c := range sampleChecklists {
		feed = append(feed, domain.Activity{Type: domain.ActivityTypeChecklist, Date: c.LastUpdated,
			Description: fmt.Sprintf("Checklist \"%s\" updated.", c.Name)})
	}
	for _, r := range sampleReports() {
		verb := "drafted"
		if r.Status == domain.ReportStatusFinalized {
			verb = "finalized"
		}
		feed = append(feed, domain.Activity{Type: domain.ActivityTypeReport, Date: r.Date,
			Description: fmt.Sprintf("Report \"%s\" was %s.", r.Title, verb)})
	}
	sort.SliceStable(feed, func(i, j int) bool { return feed[i].Date.Before(feed[j].Date) })
	return feed
}
