package store

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/abgdnv/goinventory/internal/errors"
	"github.com/abgdnv/goinventory/internal/model"
	"github.com/abgdnv/goinventory/internal/search"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const skipIntegrationTests = "INVENTORY_SVC_SKIP_INTEGRATION_TESTS"

// PgStoreSuite is a test suite for the PostgreSQL store implementations.
type PgStoreSuite struct {
	suite.Suite                             // Embedding testify's suite for structured testing
	pgContainer *postgres.PostgresContainer // PostgreSQL container for integration tests
	dbPool      *pgxpool.Pool               // PostgreSQL connection pool
	products    *PgProductStore             //
	inventories *PgInventoryStore           //
	logger      *slog.Logger                // Logger for the test suite
	ctx         context.Context             // Context for the test suite, used for cancellation and timeouts
}

// SetupSuite initializes the test suite by setting up a PostgreSQL container,
func (s *PgStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dbName := "inventory"
	dbUser := "user"
	dbPassword := "password"

	// 1. Start a PostgreSQL container with the specified configuration. Wait for the container to be ready.
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		// Wait for a specific log message indicating the database service is ready.
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		// Ensure the container is ready to accept connections on the default PostgreSQL port.
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	// 2. Get the connection string from the container
	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	// 3. create a new pgxpool instance using the connection string
	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgxpool")

	// 3.1 Ping the database to ensure the connection is established
	for i := range 10 {
		s.logger.Info("Pinging PostgreSQL database", "attempt", i+1)
		err = s.dbPool.Ping(s.ctx)
		if err == nil {
			break
		}
		time.Sleep(time.Second * 2)
	}
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL after retries")

	// 4. Database migration
	// Build path to migrations directory
	wd, _ := os.Getwd()
	migrationsPath := filepath.Join(wd, "..", "..", "db", "migrations")
	sourceURL := "file://" + migrationsPath
	// Create a new migrate instance with the source URL and connection string
	m, err := migrate.New(sourceURL, connStr)
	require.NoError(s.T(), err, "Failed to create migrate instance")
	// Apply all available migrations
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		_, _ = m.Close()
		require.NoError(s.T(), err, "Failed to apply migrations")
	}
	s.logger.Info("Migrations applied for integration tests")

	s.products = NewPgProductStore(s.dbPool)
	s.inventories = NewPgInventoryStore(s.dbPool)
	s.logger.Info("Initialization complete for PgStoreSuite")
}

// TearDownSuite cleans up resources after all tests in the suite have run.
func (s *PgStoreSuite) TearDownSuite() {
	s.logger.Info("Tearing down suite...")
	if s.dbPool != nil {
		s.dbPool.Close()
		s.logger.Info("DB pool closed.")
	}
	if s.pgContainer != nil {
		s.logger.Info("Terminating PostgreSQL container...")
		err := s.pgContainer.Terminate(s.ctx)
		if err != nil {
			s.logger.Warn("failed to terminate PostgreSQL container", "error", err)
		} else {
			s.logger.Info("PostgreSQL container terminated.")
		}
	}
}

// SetupTest prepares the database for each test by truncating both tables.
func (s *PgStoreSuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE TABLE inventories, products RESTART IDENTITY")
	require.NoError(s.T(), err, "Failed to truncate tables")
}

// TestPgStoreIntegration runs the PostgreSQL store integration tests.
func TestPgStoreIntegration(t *testing.T) {
	// Skip integration tests if the environment variable is set
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	// Run the test suite
	suite.Run(t, new(PgStoreSuite))
}

// createTestProduct is a helper function to create a product for testing purposes.
func (s *PgStoreSuite) createTestProduct(name, category string, price float64, status model.ProductStatus) *model.Product {
	s.T().Helper()
	product, err := s.products.Save(s.ctx, &model.Product{
		Name:     name,
		Category: category,
		Price:    price,
		Status:   status,
	})
	require.NoError(s.T(), err, "createTestProduct helper failed to create product")
	return product
}

// createTestInventory is a helper function to create an inventory record for testing purposes.
func (s *PgStoreSuite) createTestInventory(productID int64, stock int32) *model.Inventory {
	s.T().Helper()
	inventory, err := s.inventories.Save(s.ctx, &model.Inventory{
		ProductID:    productID,
		CurrentStock: stock,
		LastUpdated:  time.Now(),
	})
	require.NoError(s.T(), err, "createTestInventory helper failed to create inventory")
	return inventory
}

func (s *PgStoreSuite) TestProductSaveAndGet() {
	// 1. Create a new product
	created := s.createTestProduct("Gaming Laptop", "Electronics", 1500, model.StatusAvailable)
	require.NotZero(s.T(), created.ID, "Created product ID should not be zero")

	// 2. Fetch the product by ID and compare
	fetched, err := s.products.Get(s.ctx, created.ID)
	require.NoError(s.T(), err, "Get should not return an error")
	assert.Equal(s.T(), created.Name, fetched.Name)
	assert.Equal(s.T(), created.Category, fetched.Category)
	assert.Equal(s.T(), created.Price, fetched.Price)
	assert.Equal(s.T(), created.Status, fetched.Status)
}

func (s *PgStoreSuite) TestProductGet_NotFound() {
	_, err := s.products.Get(s.ctx, 9999)
	require.ErrorIs(s.T(), err, apperrors.ErrProductNotFound, "Expected ErrProductNotFound for non-existent product")
}

func (s *PgStoreSuite) TestProductSave_Update() {
	created := s.createTestProduct("Laptop", "Electronics", 1500, model.StatusAvailable)

	created.Name = "Laptop Pro"
	created.Status = model.StatusNotAvailable
	updated, err := s.products.Save(s.ctx, created)
	require.NoError(s.T(), err, "Save should not return an error on update")

	assert.Equal(s.T(), created.ID, updated.ID)
	assert.Equal(s.T(), "Laptop Pro", updated.Name)
	assert.Equal(s.T(), model.StatusNotAvailable, updated.Status)
}

func (s *PgStoreSuite) TestProductSave_UpdateNotFound() {
	_, err := s.products.Save(s.ctx, &model.Product{ID: 9999, Name: "Ghost"})
	require.ErrorIs(s.T(), err, apperrors.ErrProductNotFound, "Expected ErrProductNotFound for non-existent product")
}

func (s *PgStoreSuite) TestProductExistsByID() {
	created := s.createTestProduct("Laptop", "Electronics", 1500, model.StatusAvailable)

	exists, err := s.products.ExistsByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), exists)

	exists, err = s.products.ExistsByID(s.ctx, 9999)
	require.NoError(s.T(), err)
	assert.False(s.T(), exists)
}

func (s *PgStoreSuite) TestProductDeleteByID() {
	created := s.createTestProduct("Laptop", "Electronics", 1500, model.StatusAvailable)

	err := s.products.DeleteByID(s.ctx, created.ID)
	require.NoError(s.T(), err, "DeleteByID should not return an error")

	_, err = s.products.Get(s.ctx, created.ID)
	require.ErrorIs(s.T(), err, apperrors.ErrProductNotFound, "Expected ErrProductNotFound for deleted product")
}

func (s *PgStoreSuite) TestProductDeleteByID_NotFound() {
	err := s.products.DeleteByID(s.ctx, 9999)
	require.ErrorIs(s.T(), err, apperrors.ErrProductNotFound, "Expected ErrProductNotFound for non-existent product")
}

func (s *PgStoreSuite) TestProductFindAllMatching() {
	s.createTestProduct("Gaming Laptop", "Electronics", 1500, model.StatusAvailable)
	s.createTestProduct("Office Chair", "Furniture", 200, model.StatusAvailable)
	s.createTestProduct("Laptop Stand", "Accessories", 50, model.StatusNotAvailable)

	matched, err := s.products.FindAllMatching(s.ctx, search.SearchByKeyword("laptop"))

	require.NoError(s.T(), err)
	require.Len(s.T(), matched, 2, "Keyword should match two products")
	assert.Equal(s.T(), "Gaming Laptop", matched[0].Name)
	assert.Equal(s.T(), "Laptop Stand", matched[1].Name)
}

func (s *PgStoreSuite) TestProductFindAllPaged() {
	s.createTestProduct("C", "X", 30, model.StatusAvailable)
	s.createTestProduct("A", "X", 10, model.StatusAvailable)
	s.createTestProduct("B", "X", 20, model.StatusAvailable)

	page, err := s.products.FindAllPaged(s.ctx, PageRequest{Page: 0, Size: 2, Sort: "name"})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(3), page.TotalElements)
	assert.Equal(s.T(), int32(2), page.TotalPages)
	require.Len(s.T(), page.Items, 2)
	assert.Equal(s.T(), "A", page.Items[0].Name)
	assert.Equal(s.T(), "B", page.Items[1].Name)
}

func (s *PgStoreSuite) TestInventorySaveAndGet() {
	product := s.createTestProduct("Laptop", "Electronics", 1500, model.StatusAvailable)
	created := s.createTestInventory(product.ID, 100)

	fetched, err := s.inventories.Get(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), product.ID, fetched.ProductID)
	assert.Equal(s.T(), int32(100), fetched.CurrentStock)
	assert.WithinDuration(s.T(), created.LastUpdated, fetched.LastUpdated, time.Second)
}

func (s *PgStoreSuite) TestInventoryGet_NotFound() {
	_, err := s.inventories.Get(s.ctx, 9999)
	require.ErrorIs(s.T(), err, apperrors.ErrInventoryNotFound, "Expected ErrInventoryNotFound for non-existent inventory")
}

func (s *PgStoreSuite) TestInventoryDeleteByID() {
	product := s.createTestProduct("Laptop", "Electronics", 1500, model.StatusAvailable)
	created := s.createTestInventory(product.ID, 100)

	err := s.inventories.DeleteByID(s.ctx, created.ID)
	require.NoError(s.T(), err)

	err = s.inventories.DeleteByID(s.ctx, created.ID)
	require.ErrorIs(s.T(), err, apperrors.ErrInventoryNotFound, "Expected ErrInventoryNotFound for deleted inventory")
}

func (s *PgStoreSuite) TestInventoryFindAllMatching_StockRange() {
	product := s.createTestProduct("Laptop", "Electronics", 1500, model.StatusAvailable)
	s.createTestInventory(product.ID, 5)
	s.createTestInventory(product.ID, 50)
	s.createTestInventory(product.ID, 500)

	minStock := int32(10)
	maxStock := int32(100)
	matched, err := s.inventories.FindAllMatching(s.ctx, search.HasStockBetween(&minStock, &maxStock))

	require.NoError(s.T(), err)
	require.Len(s.T(), matched, 1)
	assert.Equal(s.T(), int32(50), matched[0].CurrentStock)
}

func (s *PgStoreSuite) TestInventoryFindAllPaged_SortByStock() {
	product := s.createTestProduct("Laptop", "Electronics", 1500, model.StatusAvailable)
	s.createTestInventory(product.ID, 500)
	s.createTestInventory(product.ID, 5)
	s.createTestInventory(product.ID, 50)

	page, err := s.inventories.FindAllPaged(s.ctx, PageRequest{Page: 0, Size: 10, Sort: "stock"})

	require.NoError(s.T(), err)
	require.Len(s.T(), page.Items, 3)
	assert.Equal(s.T(), int32(5), page.Items[0].CurrentStock)
	assert.Equal(s.T(), int32(50), page.Items[1].CurrentStock)
	assert.Equal(s.T(), int32(500), page.Items[2].CurrentStock)
}
