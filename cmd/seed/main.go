package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/service"
	"github.com/minicrm/crm-api/internal/infrastructure/config"
	crmmongo "github.com/minicrm/crm-api/internal/infrastructure/db/mongo"
)

// Seeds the database with two demo accounts, four customers, and six
// leads. Idempotent: does nothing when any user already exists.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := crmmongo.Connect(ctx, crmmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	log.Println("Connected to database")

	if err := crmmongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	users := crmmongo.NewUserRepository(db)
	customers := crmmongo.NewCustomerRepository(db)
	leads := crmmongo.NewLeadRepository(db)

	existing, err := users.List(ctx)
	if err != nil {
		log.Fatalf("Failed to check existing users: %v", err)
	}
	if len(existing) > 0 {
		log.Println("Sample data already exists, nothing to do")
		return
	}

	admin := seedUser(ctx, users, "Admin User", "admin@minicrm.com", "admin123", domain.RoleAdmin)
	regular := seedUser(ctx, users, "John Doe", "john@minicrm.com", "user123", domain.RoleUser)

	customersData := []*domain.Customer{
		{Name: "Alice Johnson", Email: "alice@techcorp.com", Phone: "+1-555-0101", Company: "TechCorp Inc", OwnerID: regular.ID},
		{Name: "Bob Smith", Email: "bob@innovate.co", Phone: "+1-555-0102", Company: "Innovate Solutions", OwnerID: regular.ID},
		{Name: "Carol Wilson", Email: "carol@startupx.io", Phone: "+1-555-0103", Company: "StartupX", OwnerID: admin.ID},
		{Name: "David Brown", Email: "david@enterprise.com", Phone: "+1-555-0104", Company: "Enterprise LLC", OwnerID: admin.ID},
	}
	for _, c := range customersData {
		c.ID = uuid.NewString()
		c.CreatedAt = time.Now().UTC()
		if err := customers.Create(ctx, c); err != nil {
			log.Fatalf("Failed to create customer %q: %v", c.Name, err)
		}
	}
	log.Printf("Created %d customers", len(customersData))

	leadsData := []*domain.Lead{
		{CustomerID: customersData[0].ID, Title: "Website Redesign", Description: "Complete website overhaul", Status: domain.LeadStatusNew, Value: 15000},
		{CustomerID: customersData[0].ID, Title: "Mobile App", Description: "iOS and Android app development", Status: domain.LeadStatusContacted, Value: 25000},
		{CustomerID: customersData[1].ID, Title: "CRM Integration", Description: "Integrate with existing CRM", Status: domain.LeadStatusConverted, Value: 8000},
		{CustomerID: customersData[1].ID, Title: "Data Migration", Description: "Migrate legacy data", Status: domain.LeadStatusLost, Value: 5000},
		{CustomerID: customersData[2].ID, Title: "Cloud Setup", Description: "AWS cloud infrastructure", Status: domain.LeadStatusNew, Value: 12000},
		{CustomerID: customersData[3].ID, Title: "Security Audit", Description: "Complete security assessment", Status: domain.LeadStatusContacted, Value: 10000},
	}
	for _, l := range leadsData {
		l.ID = uuid.NewString()
		l.CreatedAt = time.Now().UTC()
		if err := leads.Create(ctx, l); err != nil {
			log.Fatalf("Failed to create lead %q: %v", l.Title, err)
		}
	}
	log.Printf("Created %d leads", len(leadsData))

	log.Println("Sample data created successfully")
}

func seedUser(ctx context.Context, users *crmmongo.UserRepository, name, email, password string, role domain.Role) *domain.User {
	hash, err := service.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password for %q: %v", email, err)
	}

	user, err := users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
		PasswordHash: hash,
	})
	if err != nil {
		log.Fatalf("Failed to create user %q: %v", email, err)
	}
	log.Printf("Created user %s (%s)", email, role)
	return user
}
