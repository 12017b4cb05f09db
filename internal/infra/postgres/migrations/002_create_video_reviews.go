package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createVideoReviewsTable creates the video_reviews table with all indexes.
func createVideoReviewsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_create_video_reviews",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS video_reviews (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					product_id VARCHAR(100) NOT NULL,
					provider_id VARCHAR(50) NOT NULL,
					external_id VARCHAR(100) NOT NULL,
					platform VARCHAR(50) NOT NULL,
					title VARCHAR(500),
					channel VARCHAR(200),
					thumbnail VARCHAR(500),
					url VARCHAR(500),

					-- Engagement counters (NULL = not provided by the feed)
					view_count INTEGER,
					like_count INTEGER,
					comment_count INTEGER,
					share_count INTEGER,
					subscribers INTEGER,

					duration_seconds INTEGER DEFAULT 0,
					quality DECIMAL(3,1) DEFAULT 0,

					-- Timestamps (published_at NULL = publish date unknown)
					published_at TIMESTAMP,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					-- Unique constraint for upsert
					CONSTRAINT uq_video_provider_external UNIQUE (provider_id, external_id)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_video_reviews_product_id ON video_reviews(product_id);",
				"CREATE INDEX IF NOT EXISTS idx_video_reviews_platform ON video_reviews(platform);",
				"CREATE INDEX IF NOT EXISTS idx_video_reviews_published_at ON video_reviews(published_at DESC);",
			}

			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS video_reviews;").Error
		},
	}
}
