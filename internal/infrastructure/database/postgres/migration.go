// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-bff/internal/domain/catalog"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		&catalog.Product{},
		&catalog.ProductOption{},
		&catalog.Variant{},
		&catalog.BundleWidget{},
		&catalog.BundleWidgetProduct{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_slug_active ON products(slug, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Option and variant indexes
		"CREATE INDEX IF NOT EXISTS idx_product_options_product_position ON product_options(product_id, position)",
		"CREATE INDEX IF NOT EXISTS idx_variants_product_position ON variants(product_id, position)",
		"CREATE INDEX IF NOT EXISTS idx_variants_sku ON variants(sku)",
		"CREATE INDEX IF NOT EXISTS idx_variants_available ON variants(product_id, available)",

		// Bundle widget indexes
		"CREATE INDEX IF NOT EXISTS idx_bundle_widgets_code_active ON bundle_widgets(code, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_bundle_widget_products_widget_sort ON bundle_widget_products(widget_id, sort_order)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_bundle_widget_products_unique ON bundle_widget_products(widget_id, product_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts development catalog data
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err := m.seedBundleWidgets(); err != nil {
		return fmt.Errorf("failed to seed bundle widgets: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedProducts creates development products with options and variants
func (m *Migration) seedProducts() error {
	log.Println("🛍️ Seeding products...")

	products := []catalog.Product{
		{
			Slug:        "classic-tee",
			Title:       "Classic Tee",
			Description: "Heavyweight cotton tee with a relaxed fit.",
			Price:       1999,
			Image:       "https://cdn.example.com/products/classic-tee.jpg",
			URL:         "/products/classic-tee",
			IsActive:    true,
			Options: []catalog.ProductOption{
				{Position: 1, Name: "Size"},
				{Position: 2, Name: "Color"},
			},
			Variants: []catalog.Variant{
				{SKU: "TEE-S-BLK", Title: "S / Black", Price: 1999, Available: true, Option1: "S", Option2: "Black", Position: 1},
				{SKU: "TEE-M-BLK", Title: "M / Black", Price: 1999, Available: true, Option1: "M", Option2: "Black", Position: 2},
				{SKU: "TEE-L-BLK", Title: "L / Black", Price: 1999, Available: false, Option1: "L", Option2: "Black", Position: 3},
				{SKU: "TEE-S-WHT", Title: "S / White", Price: 2199, Available: true, Option1: "S", Option2: "White", Position: 4},
				{SKU: "TEE-M-WHT", Title: "M / White", Price: 2199, Available: true, Option1: "M", Option2: "White", Position: 5},
			},
		},
		{
			Slug:        "canvas-tote",
			Title:       "Canvas Tote",
			Description: "Everyday tote in natural canvas.",
			Price:       1499,
			Image:       "https://cdn.example.com/products/canvas-tote.jpg",
			URL:         "/products/canvas-tote",
			IsActive:    true,
			Variants: []catalog.Variant{
				{SKU: "TOTE-DEFAULT", Title: "Default Title", Price: 1499, Available: true, Position: 1},
			},
		},
		{
			Slug:        "mango-soda",
			Title:       "Mango Soda",
			Description: "Sparkling mango soda, 330ml can.",
			Price:       299,
			Image:       "https://cdn.example.com/products/mango-soda.jpg",
			URL:         "/products/mango-soda",
			IsActive:    true,
			Variants: []catalog.Variant{
				{SKU: "SODA-MANGO", Title: "Default Title", Price: 299, Available: true, Position: 1},
			},
		},
		{
			Slug:        "lime-soda",
			Title:       "Lime Soda",
			Description: "Sparkling lime soda, 330ml can.",
			Price:       299,
			Image:       "https://cdn.example.com/products/lime-soda.jpg",
			URL:         "/products/lime-soda",
			IsActive:    true,
			Variants: []catalog.Variant{
				{SKU: "SODA-LIME", Title: "Default Title", Price: 299, Available: true, Position: 1},
			},
		},
		{
			Slug:        "cherry-soda",
			Title:       "Cherry Soda",
			Description: "Sparkling cherry soda, 330ml can.",
			Price:       299,
			Image:       "https://cdn.example.com/products/cherry-soda.jpg",
			URL:         "/products/cherry-soda",
			IsActive:    true,
			Variants: []catalog.Variant{
				{SKU: "SODA-CHERRY", Title: "Default Title", Price: 299, Available: true, Position: 1},
			},
		},
		{
			Slug:        "grape-soda",
			Title:       "Grape Soda",
			Description: "Sparkling grape soda, 330ml can.",
			Price:       299,
			Image:       "https://cdn.example.com/products/grape-soda.jpg",
			URL:         "/products/grape-soda",
			IsActive:    true,
			Variants: []catalog.Variant{
				{SKU: "SODA-GRAPE", Title: "Default Title", Price: 299, Available: true, Position: 1},
			},
		},
	}

	for _, prod := range products {
		var existing catalog.Product
		result := m.db.Where("slug = ?", prod.Slug).First(&existing)
		if result.Error != nil {
			if err := m.db.Create(&prod).Error; err != nil {
				log.Printf("⚠️ Failed to create product %s: %v", prod.Slug, err)
			} else {
				log.Printf("✅ Created product: %s", prod.Title)
			}
		} else {
			log.Printf("⏭️ Product already exists: %s", prod.Title)
		}
	}

	return nil
}

// seedBundleWidgets creates a development bundle widget over the soda
// products
func (m *Migration) seedBundleWidgets() error {
	log.Println("📦 Seeding bundle widgets...")

	var existing catalog.BundleWidget
	result := m.db.Where("code = ?", "soda-pack").First(&existing)
	if result.Error == nil {
		log.Println("⏭️ Bundle widget already exists: soda-pack")
		return nil
	}

	var sodas []catalog.Product
	if err := m.db.Where("slug LIKE ?", "%-soda").Order("id").Find(&sodas).Error; err != nil {
		return err
	}
	if len(sodas) == 0 {
		log.Println("⚠️ No soda products found for bundle widget")
		return nil
	}

	widget := catalog.BundleWidget{
		Code:     "soda-pack",
		Title:    "Build Your Soda Pack",
		MinItems: 3,
		MaxItems: 5,
		IsActive: true,
	}
	for i, p := range sodas {
		widget.Products = append(widget.Products, catalog.BundleWidgetProduct{
			ProductID: p.ID,
			SortOrder: i,
		})
	}

	if err := m.db.Create(&widget).Error; err != nil {
		return err
	}

	log.Printf("✅ Created bundle widget: %s (%d products)", widget.Code, len(widget.Products))
	return nil
}
