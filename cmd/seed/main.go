package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"cusceda/pkg/config"
	"cusceda/pkg/database"
	"cusceda/pkg/logger"
	"cusceda/pkg/models"
	"cusceda/pkg/s3"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	var (
		adminEmail    string
		adminPassword string
		withMedia     bool
	)
	flag.StringVar(&adminEmail, "admin-email", "admin@cusceda.test", "Email of the seeded admin")
	flag.StringVar(&adminPassword, "admin-password", "admin123", "Password of the seeded admin")
	flag.BoolVar(&withMedia, "with-media", false, "Download sample photos and upload them to S3")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Error("Failed to migrate database: %v", err)
		panic(err)
	}

	var s3Client *s3.Client
	if withMedia {
		s3Client, err = s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			panic(err)
		}
	}

	if err := seedDatabase(db, s3Client, adminEmail, adminPassword, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, s3Client *s3.Client, adminEmail, adminPassword string, log *logger.Logger) error {
	if _, err := ensureUser(db, adminEmail, "Site Admin", adminPassword, models.RoleAdmin, log); err != nil {
		return err
	}

	customers := []struct {
		email string
		name  string
	}{
		{"amaka@test.com", "Amaka Obi"},
		{"tunde@test.com", "Tunde Bakare"},
		{"zainab@test.com", "Zainab Bello"},
	}

	customerIDs := make([]string, 0, len(customers))
	for _, c := range customers {
		id, err := ensureUser(db, c.email, c.name, "password123", models.RoleUser, log)
		if err != nil {
			return err
		}
		customerIDs = append(customerIDs, id)
	}

	statuses := []models.OrderStatus{models.OrderPending, models.OrderShipped, models.OrderProcessing, models.OrderDelivered}
	for i, status := range statuses {
		order := &models.Order{
			OrderID:     fmt.Sprintf("ORD-%d", 1001+i),
			UserID:      customerIDs[i%len(customerIDs)],
			Total:       float64(25000 * (i + 1)),
			OrderStatus: status,
		}
		if err := createUnless(db, order, "order_id = ?", order.OrderID); err != nil {
			return err
		}
	}
	log.Info("Seeded %d orders", len(statuses))

	products := []models.Product{
		{Name: "Smart Door Lock", Price: 85000, Stock: 2},
		{Name: "Ceiling Fan", Price: 42000, Stock: 5},
		{Name: "Water Heater", Price: 120000, Stock: 40},
	}
	for i := range products {
		if err := createUnless(db, &products[i], "name = ?", products[i].Name); err != nil {
			return err
		}
	}
	log.Info("Seeded %d products", len(products))

	var lock models.Product
	if err := db.Where("name = ?", "Smart Door Lock").First(&lock).Error; err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}
	review := &models.Review{ProductID: lock.ID, UserID: customerIDs[0], Rating: 4, Comment: "Works well, app is slow"}
	if err := createUnless(db, review, "product_id = ? AND user_id = ?", review.ProductID, review.UserID); err != nil {
		return err
	}

	contact := &models.Contact{Name: "Chidi Okafor", Email: "chidi@test.com", Message: "Is the Lekki duplex still available?"}
	if err := createUnless(db, contact, "email = ? AND message = ?", contact.Email, contact.Message); err != nil {
		return err
	}

	return seedProperties(db, s3Client, log)
}

func ensureUser(db *gorm.DB, email, name, password string, role models.UserRole, log *logger.Logger) (string, error) {
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Info("User %s already exists, skipping", email)
		return existing.ID, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Email: email, Name: name, Password: string(hashedPassword), Role: role}
	if err := db.Create(user).Error; err != nil {
		return "", fmt.Errorf("failed to create user %s: %w", email, err)
	}

	log.Info("Created user: %s (%s)", name, email)
	return user.ID, nil
}

// createUnless inserts row when no row matches the query.
func createUnless(db *gorm.DB, row interface{}, query string, args ...interface{}) error {
	var count int64
	if err := db.Model(row).Where(query, args...).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(row).Error
}

func seedProperties(db *gorm.DB, s3Client *s3.Client, log *logger.Logger) error {
	properties := []models.Property{
		{Title: "Lekki Phase 1 Duplex", Type: models.ListingSale, Category: "House", Price: 185000000, Bedrooms: 4, Bathrooms: 4, Toilets: 5, Area: 450, State: "Lagos", City: "Lekki", Address: "12 Admiralty Way", Features: []string{"Pool", "Boys Quarters"}},
		{Title: "Yaba Mini Flat", Type: models.ListingRent, Category: "Apartment", Price: 1200000, Bedrooms: 1, Bathrooms: 1, Toilets: 1, Area: 60, State: "Lagos", City: "Yaba", Address: "4 Herbert Macaulay Way", Features: []string{"Prepaid Meter"}},
		{Title: "Maitama Serviced Apartment", Type: models.ListingShortlet, Category: "Apartment", Price: 95000, Bedrooms: 2, Bathrooms: 2, Toilets: 3, Area: 120, State: "FCT", City: "Abuja", Address: "7 Gana Street", Features: []string{"Gym", "24h Power"}},
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	for i := range properties {
		p := &properties[i]
		p.Country = "Nigeria"
		p.Description = p.Title + " in " + p.City
		p.Visible = true
		p.Images = []string{}
		p.Videos = []string{}

		if s3Client != nil {
			url, err := uploadSamplePhoto(s3Client, httpClient, i, log)
			if err != nil {
				log.Error("Failed to upload photo for %s: %v", p.Title, err)
			} else {
				p.Images = append(p.Images, url)
			}
		}

		if err := createUnless(db, p, "title = ?", p.Title); err != nil {
			return err
		}
	}

	log.Info("Seeded %d properties", len(properties))
	return nil
}

func uploadSamplePhoto(s3Client *s3.Client, httpClient *http.Client, index int, log *logger.Logger) (string, error) {
	url := fmt.Sprintf("https://picsum.photos/seed/cusceda-%d/1200/800", index)
	log.Info("Fetching sample photo from %s", url)

	resp, err := httpClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("photo host returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("received empty photo")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s3Client.Upload(ctx, "properties/images", fmt.Sprintf("seed_%d.jpg", index), bytes.NewReader(data), "image/jpeg")
}
