package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	_ "github.com/lib/pq"

	"github.com/taskana/taskana/domain/entity"
	"github.com/taskana/taskana/infrastructure/config"
	"github.com/taskana/taskana/infrastructure/persistence/postgres"
	"github.com/taskana/taskana/infrastructure/service/password"
)

// Bootstraps the first admin account. Subsequent admins can be created
// through the admin-only user endpoint.
func main() {
	firstName := flag.String("first-name", "", "admin first name")
	lastName := flag.String("last-name", "", "admin last name")
	email := flag.String("email", "", "admin email")
	pass := flag.String("password", "", "admin password")
	role := flag.String("role", "Administrator", "admin role title")
	flag.Parse()

	if *firstName == "" || *lastName == "" || *email == "" || *pass == "" {
		log.Fatal("first-name, last-name, email, and password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	passwordService := password.NewBcryptPasswordService(cfg.BcryptCost)
	hash, err := passwordService.HashPassword(*pass)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	user, err := userRepo.Create(context.Background(), &entity.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  hash,
		EmpRole:   *role,
		IsAdmin:   true,
	})
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin created: employee number %d", user.EmpNumber)
}
