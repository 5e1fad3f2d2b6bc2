package migration

import (
	"gorm.io/gorm"
)

// CreateSavedContentsTable creates the saved_contents table
func CreateSavedContentsTable(tx *gorm.DB) error {
	return tx.Exec(`
		CREATE TABLE IF NOT EXISTS saved_contents (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			kind VARCHAR(50) NOT NULL,
			title TEXT,
			body TEXT,
			cta TEXT,
			html TEXT,
			provider VARCHAR(50),
			tags JSONB,
			parameters JSONB,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted_at TIMESTAMP WITH TIME ZONE
		)
	`).Error
}

// DropSavedContentsTable drops the saved_contents table
func DropSavedContentsTable(tx *gorm.DB) error {
	return tx.Exec("DROP TABLE IF EXISTS saved_contents CASCADE").Error
}

// AddSavedContentsIndexes adds the lookup indexes used by the content library
func AddSavedContentsIndexes(tx *gorm.DB) error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_saved_contents_kind ON saved_contents(kind)",
		"CREATE INDEX IF NOT EXISTS idx_saved_contents_provider ON saved_contents(provider)",
		"CREATE INDEX IF NOT EXISTS idx_saved_contents_created_at ON saved_contents(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_saved_contents_deleted_at ON saved_contents(deleted_at)",
	}
	for _, stmt := range statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// RemoveSavedContentsIndexes drops the lookup indexes
func RemoveSavedContentsIndexes(tx *gorm.DB) error {
	statements := []string{
		"DROP INDEX IF EXISTS idx_saved_contents_kind",
		"DROP INDEX IF EXISTS idx_saved_contents_provider",
		"DROP INDEX IF EXISTS idx_saved_contents_created_at",
		"DROP INDEX IF EXISTS idx_saved_contents_deleted_at",
	}
	for _, stmt := range statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
