package main

import (
	"context"
	"log"

	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// Dev seeding: provisions a demo user with a handful of tasks so the API can
// be exercised without an identity provider.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	user, err := userRepo.FindByExternalID(ctx, "demo-user")
	if err != nil {
		user = &model.User{
			ExternalID: "demo-user",
			Email:      "demo@example.com",
			Name:       "Demo User",
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %s", user.ID)
	} else {
		log.Printf("Demo user already exists (%s), seeding tasks anyway", user.ID)
	}

	tasks := []*model.Task{
		{Title: "Review the week's priorities", Category: "work", UserID: user.ID},
		{Title: "Go for a 30 minute walk", Category: "health", UserID: user.ID},
		{Title: "Read a chapter of the current book", Category: "learning", UserID: user.ID},
		{Title: "Plan next month's budget", Category: "finance", UserID: user.ID},
		{Title: "Call a friend", Category: model.DefaultCategory, UserID: user.ID},
	}
	if err := taskRepo.CreateBatch(ctx, tasks); err != nil {
		log.Fatalf("Failed to seed tasks: %v", err)
	}

	log.Printf("Seeded %d tasks for %s", len(tasks), user.Email)
}
