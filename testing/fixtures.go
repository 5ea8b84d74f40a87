// Package testing provides test utilities and database setup for repository and flow tests
package testing

import (
	"fmt"
	"math/rand"

	"github.com/jasado/jasado-middleware/models"
	"github.com/jasado/jasado-middleware/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestProduct creates an unblocked product of the given supplier with a random article number
func (tf *TestFixtures) CreateTestProduct(supplier string, articleGroupNo *string) (*models.Product, error) {
	articleNo := fmt.Sprintf("%08d", rand.Intn(90000000)+10000000)
	manufacturer := "Dentsply"

	product := &models.Product{
		Supplier:          supplier,
		SupplierArticleNo: &articleNo,
		ArticleGroupNo:    articleGroupNo,
		Name:              utils.ToPtr("Test article " + articleNo),
		Manufacturer:      &manufacturer,
		IsBlocked:         false,
	}
	product.SKU = product.GenerateSKU()

	if err := tf.DB.DB.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	// is_blocked defaults to true in the schema, so zero values need an explicit update
	if err := tf.DB.DB.Model(product).Update("is_blocked", false).Error; err != nil {
		return nil, fmt.Errorf("failed to unblock product: %w", err)
	}
	return product, nil
}

// CreateTestGLSCost stores a bill back price for a product
func (tf *TestFixtures) CreateTestGLSCost(product *models.Product, billBack string) error {
	row := &models.GLSPriceList{
		ProductID:     &product.ID,
		ArticleNo:     utils.StringValue(product.SupplierArticleNo),
		BillBackPrice: decimal.NewNullDecimal(decimal.RequireFromString(billBack)),
	}
	return tf.DB.DB.Create(row).Error
}

// CreateTestCalculationPrice stores a master data calculation price and stock for a product
func (tf *TestFixtures) CreateTestCalculationPrice(product *models.Product, price, stock string) error {
	row := &models.AdditionalMasterData{
		ProductID:               &product.ID,
		ArticleNo:               product.SupplierArticleNo,
		ArticleCalculationPrice: decimal.NewNullDecimal(decimal.RequireFromString(price)),
		Stock:                   decimal.NewNullDecimal(decimal.RequireFromString(stock)),
		Active:                  true,
	}
	return tf.DB.DB.Create(row).Error
}

// CreateTestPricingSettings stores the pricing settings singleton
func (tf *TestFixtures) CreateTestPricingSettings(rule models.CompetitorRule, marginPercent, undercut string) (*models.PricingSettings, error) {
	settings := &models.PricingSettings{
		CompetitorRule: rule,
		MinimumMargin:  decimal.RequireFromString(marginPercent),
		UndercutValue:  decimal.RequireFromString(undercut),
	}
	if err := tf.DB.DB.Create(settings).Error; err != nil {
		return nil, fmt.Errorf("failed to create pricing settings: %w", err)
	}
	return settings, nil
}

// CreateTestAdmin creates an active admin with the given password
func (tf *TestFixtures) CreateTestAdmin(username, password string) (*models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     utils.ToPtr(true),
	}
	if err := tf.DB.DB.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}
