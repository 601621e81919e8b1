package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"secure_law_firm_go/config"
	"secure_law_firm_go/db"
	"secure_law_firm_go/models"
	"secure_law_firm_go/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Worker{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Admin Worker ===")
	fmt.Println()

	name := prompt(reader, "Name: ")
	lastName := prompt(reader, "Last name: ")
	email := prompt(reader, "Email: ")
	phone := prompt(reader, "Phone: ")
	curp := prompt(reader, "CURP: ")

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	fmt.Println()

	if name == "" || lastName == "" || email == "" || phone == "" || password == "" {
		log.Fatal("Name, last name, email, phone and password are required")
	}
	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters long")
	}

	result, err := services.CreateWorker(db.DB, cfg.TOTPIssuer, services.CreateWorkerInput{
		Name:     name,
		LastName: lastName,
		Email:    email,
		Phone:    phone,
		CURP:     curp,
		Role:     models.RoleAdmin,
		Password: password,
	})
	if err != nil {
		log.Fatalf("Failed to create worker: %v", err)
	}

	fmt.Println()
	fmt.Println("Admin worker created successfully!")
	fmt.Printf("  ID:         %s\n", result.Worker.ID)
	fmt.Printf("  Email:      %s\n", result.Worker.Email)
	fmt.Printf("  Company ID: %s\n", result.Worker.CompanyID)
	fmt.Println()
	fmt.Println("Scan this URI with an authenticator app to enroll 2FA:")
	fmt.Printf("  %s\n", result.EnrollmentURI)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	value, _ := reader.ReadString('\n')
	return strings.TrimSpace(value)
}
