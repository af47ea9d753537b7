package testhelpers

import (
	"context"
	"os"
	"testing"

	"smartrental/internal/models"
	"smartrental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL and applies the migrations.
// The test is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if _, err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db := &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
	t.Cleanup(func() { _ = db.Cleanup() })
	return db
}

// SetupTestUser inserts an active user with the given role. Tenants get
// landlordID when it is not nil.
func SetupTestUser(t *testing.T, db *TestDB, role models.Role, landlordID *uuid.UUID) *models.User {
	t.Helper()

	id := uuid.New()
	user := &models.User{
		ID:                id,
		FullName:          "Test " + string(role),
		Email:             id.String() + "@example.com",
		Phone:             "+2547" + id.String()[:8],
		PasswordHash:      "x",
		Role:              role,
		Active:            true,
		LandlordID:        landlordID,
		NotificationPrefs: models.NotificationPrefs{SMS: true, Email: true, InApp: true},
	}

	query := `
		INSERT INTO users (id, full_name, email, phone, password_hash, role, active, landlord_id,
			notify_sms, notify_email, notify_in_app)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`
	err := db.Pool.QueryRow(context.Background(), query,
		user.ID, user.FullName, user.Email, user.Phone, user.PasswordHash, string(user.Role),
		user.Active, user.LandlordID, user.NotificationPrefs.SMS, user.NotificationPrefs.Email,
		user.NotificationPrefs.InApp,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	})
	return user
}

// SetupTestHouse inserts a vacant house owned by landlordID.
func SetupTestHouse(t *testing.T, db *TestDB, landlordID uuid.UUID) *models.House {
	t.Helper()

	house := &models.House{
		ID:          uuid.New(),
		Title:       "Test House",
		Description: "Test description",
		Location:    models.Location{County: "Nairobi", Town: "Nairobi", Street: "Ngong Road"},
		Rent:        25000,
		Size:        "2BR",
		Amenities:   []string{"water"},
		Status:      models.HouseVacant,
		LandlordID:  landlordID,
	}

	query := `
		INSERT INTO houses (id, title, description, county, town, street, rent, size, amenities, status, landlord_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`
	err := db.Pool.QueryRow(context.Background(), query,
		house.ID, house.Title, house.Description, house.Location.County, house.Location.Town,
		house.Location.Street, house.Rent, house.Size, house.Amenities, string(house.Status), house.LandlordID,
	).Scan(&house.CreatedAt, &house.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test house: %v", err)
	}

	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(), `DELETE FROM houses WHERE id = $1`, house.ID)
	})
	return house
}
