package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Giftmbatha/food-rescue/internal/config"
	"github.com/Giftmbatha/food-rescue/internal/db"
	"github.com/Giftmbatha/food-rescue/internal/model"
	"github.com/Giftmbatha/food-rescue/internal/repository"
)

// demoPassword is shared by all seeded accounts.
const demoPassword = "password123"

type seedProfile struct {
	email   string
	role    model.Role
	name    string
	city    string
	phone   string
	address string
}

type seedListing struct {
	donorEmail  string
	title       string
	description string
	quantity    string
	unit        string
	expiresIn   time.Duration
}

var demoProfiles = []seedProfile{
	{"bakery@example.com", model.RoleDonor, "Corner Bakery", "Cape Town", "+27 21 555 0101", "12 Long Street"},
	{"grocer@example.com", model.RoleDonor, "Fresh Grocer", "Cape Town", "+27 21 555 0102", "88 Kloof Street"},
	{"hotel@example.com", model.RoleDonor, "Harbour Hotel Kitchen", "Durban", "+27 31 555 0103", "4 Marine Parade"},
	{"shelter@example.com", model.RoleOrganization, "Hope Shelter", "Cape Town", "+27 21 555 0201", "3 District Road"},
	{"kitchen@example.com", model.RoleOrganization, "Community Kitchen", "Durban", "+27 31 555 0202", "17 Umbilo Road"},
}

var demoListings = []seedListing{
	{"bakery@example.com", "Day-old bread and rolls", "Assorted loaves and rolls from today's bake.", "12.5", "kg", 24 * time.Hour},
	{"bakery@example.com", "Pastries", "Croissants and danishes, boxed.", "30", "items", 12 * time.Hour},
	{"grocer@example.com", "Mixed vegetables", "Slightly bruised but fresh produce.", "25", "kg", 48 * time.Hour},
	{"hotel@example.com", "Prepared meals", "Chilled buffet surplus, individually packed.", "40", "portions", 8 * time.Hour},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Account{}, &model.Profile{}, &model.Listing{}, &model.Claim{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	accountRepo := repository.NewAccountRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	listingRepo := repository.NewListingRepository(gormDB)
	ctx := context.Background()

	profiles, created, err := seedProfiles(ctx, accountRepo, profileRepo)
	if err != nil {
		log.Fatalf("Failed to seed profiles: %v", err)
	}
	log.Printf("Profiles ready: %d (%d newly created)", len(profiles), created)

	listings, err := seedListings(ctx, listingRepo, profiles)
	if err != nil {
		log.Fatalf("Failed to seed listings: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Accounts/profiles created: %d", created)
	log.Printf("  - Listings created: %d", listings)
	log.Printf("  - Demo password for all accounts: %s", demoPassword)
}

// seedProfiles creates demo accounts and their profiles, skipping any email
// that already exists. Returns donor profiles keyed by email.
func seedProfiles(ctx context.Context, accounts repository.AccountRepository, profiles repository.ProfileRepository) (map[string]*model.Profile, int, error) {
	byEmail := make(map[string]*model.Profile, len(demoProfiles))
	created := 0

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, 0, fmt.Errorf("hash demo password: %w", err)
	}

	for _, item := range demoProfiles {
		account, err := accounts.FindByEmail(ctx, item.email)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, created, fmt.Errorf("error checking account %s: %w", item.email, err)
		}

		if account == nil {
			account = &model.Account{
				Email:        item.email,
				PasswordHash: string(hash),
				Role:         item.role,
			}
			if err := accounts.Create(ctx, account); err != nil {
				return nil, created, fmt.Errorf("error creating account %s: %w", item.email, err)
			}
			created++
		}

		profile, err := profiles.FindByAccountID(ctx, account.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, created, fmt.Errorf("error checking profile %s: %w", item.email, err)
		}

		if profile == nil {
			profile = &model.Profile{
				AccountID:    account.ID,
				Role:         item.role,
				Name:         item.name,
				City:         item.city,
				ContactEmail: item.email,
				ContactPhone: item.phone,
				Address:      item.address,
			}
			if err := profiles.Create(ctx, profile); err != nil {
				return nil, created, fmt.Errorf("error creating profile %s: %w", item.email, err)
			}
		}

		byEmail[item.email] = profile
	}

	return byEmail, created, nil
}

// seedListings creates demo listings for the seeded donor profiles. Listings
// are always created fresh so repeated runs top up the board.
func seedListings(ctx context.Context, listings repository.ListingRepository, profiles map[string]*model.Profile) (int, error) {
	created := 0
	now := time.Now()

	for _, item := range demoListings {
		donor, ok := profiles[item.donorEmail]
		if !ok {
			return created, fmt.Errorf("no donor profile for %s", item.donorEmail)
		}

		quantity, err := decimal.NewFromString(item.quantity)
		if err != nil {
			return created, fmt.Errorf("invalid quantity %q: %w", item.quantity, err)
		}

		listing := &model.Listing{
			DonorProfileID: donor.ID,
			Title:          item.title,
			Description:    item.description,
			Quantity:       quantity,
			Unit:           item.unit,
			City:           donor.City,
			Address:        donor.Address,
			ExpiresAt:      now.Add(item.expiresIn),
			Status:         model.ListingStatusOpen,
		}
		if err := listings.Create(ctx, listing); err != nil {
			return created, fmt.Errorf("error creating listing %q: %w", item.title, err)
		}
		created++
	}

	return created, nil
}
