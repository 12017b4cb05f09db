package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createSocialPostsTable creates the social_posts table with all indexes.
// Engagement columns are nullable: NULL records that the source feed never
// reported the counter.
func createSocialPostsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_social_posts",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS social_posts (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					product_id VARCHAR(100) NOT NULL,
					provider_id VARCHAR(50) NOT NULL,
					external_id VARCHAR(100) NOT NULL,
					platform VARCHAR(50) NOT NULL,
					author VARCHAR(200),
					verified BOOLEAN DEFAULT FALSE,
					content TEXT,
					url VARCHAR(500),
					tags TEXT[],

					-- Engagement counters (NULL = not provided by the feed)
					likes INTEGER,
					comments INTEGER,
					shares INTEGER,
					views INTEGER,
					saves INTEGER,
					followers INTEGER,

					-- Timestamps (posted_at NULL = posting date unknown)
					posted_at TIMESTAMP,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					-- Unique constraint for upsert
					CONSTRAINT uq_post_provider_external UNIQUE (provider_id, external_id)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_social_posts_product_id ON social_posts(product_id);",
				"CREATE INDEX IF NOT EXISTS idx_social_posts_platform ON social_posts(platform);",
				"CREATE INDEX IF NOT EXISTS idx_social_posts_posted_at ON social_posts(posted_at DESC);",
			}

			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS social_posts;").Error
		},
	}
}
