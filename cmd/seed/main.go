package main

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/eskalate/jobboard/internal/config"
	"github.com/eskalate/jobboard/internal/db"
	"github.com/eskalate/jobboard/internal/model"
	"github.com/eskalate/jobboard/internal/repository"
)

const demoPassword = "Password1!"

type seedUser struct {
	Name  string
	Email string
	Role  model.Role
}

var seedUsers = []seedUser{
	{Name: "Acme Hiring", Email: "hiring@acme.test", Role: model.RoleCompany},
	{Name: "Jane Doe", Email: "jane@applicant.test", Role: model.RoleApplicant},
	{Name: "John Doe", Email: "john@applicant.test", Role: model.RoleApplicant},
}

type seedJob struct {
	Title       string
	Description string
	Location    string
	Status      model.JobStatus
}

var seedJobs = []seedJob{
	{
		Title:       "Backend Engineer",
		Description: "Build and operate the services behind our hiring platform.",
		Location:    "Addis Ababa",
		Status:      model.JobOpen,
	},
	{
		Title:       "Data Analyst",
		Description: "Turn application funnel data into decisions the team can act on.",
		Location:    "Remote",
		Status:      model.JobDraft,
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Job{}, &model.Application{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	jobRepo := repository.NewJobRepository(gormDB)
	ctx := context.Background()

	created, updated, err := seedAccounts(ctx, userRepo, jobRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New records created: %d", created)
	log.Printf("  - Existing records updated: %d", updated)
	log.Printf("  - Demo password for all users: %s", demoPassword)
}

// seedAccounts creates or refreshes the demo users and the company's sample
// jobs. All demo users are pre-verified so login works straight away.
func seedAccounts(ctx context.Context, users repository.UserRepository, jobs repository.JobRepository) (created, updated int, err error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		return 0, 0, fmt.Errorf("hash demo password: %w", err)
	}

	var company *model.User
	for _, su := range seedUsers {
		existing, err := users.FindByEmail(ctx, su.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, updated, fmt.Errorf("check user %s: %w", su.Email, err)
		}

		if existing != nil {
			existing.Name = su.Name
			existing.Role = su.Role
			existing.IsVerified = true
			if err := users.Update(ctx, existing); err != nil {
				return created, updated, fmt.Errorf("update user %s: %w", su.Email, err)
			}
			updated++
			if su.Role == model.RoleCompany {
				company = existing
			}
			continue
		}

		user := &model.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hashed),
			Role:         su.Role,
			IsVerified:   true,
		}
		if err := users.Create(ctx, user); err != nil {
			return created, updated, fmt.Errorf("create user %s: %w", su.Email, err)
		}
		created++
		if su.Role == model.RoleCompany {
			company = user
		}
	}

	if company == nil {
		return created, updated, nil
	}

	existingJobs, err := jobs.ListByOwner(ctx, company.ID)
	if err != nil {
		return created, updated, fmt.Errorf("list company jobs: %w", err)
	}
	have := make(map[string]bool, len(existingJobs))
	for _, j := range existingJobs {
		have[j.Title] = true
	}

	for _, sj := range seedJobs {
		if have[sj.Title] {
			continue
		}
		job := &model.Job{
			Title:       sj.Title,
			Description: sj.Description,
			Location:    sj.Location,
			Status:      sj.Status,
			CreatedBy:   company.ID,
		}
		if err := jobs.Create(ctx, job); err != nil {
			return created, updated, fmt.Errorf("create job %q: %w", sj.Title, err)
		}
		created++
	}

	return created, updated, nil
}
