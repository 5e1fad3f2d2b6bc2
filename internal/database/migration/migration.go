package migration

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Migration represents a database migration record
type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null;unique"`
	Batch     int       `gorm:"not null"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

// MigrationFunc defines a function that can run a migration
type MigrationFunc func(tx *gorm.DB) error

// Step is one reversible schema change
type Step struct {
	Up   MigrationFunc
	Down MigrationFunc
}

// Logger is the logging surface the migrator needs
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
}

// Migrator handles database migrations
type Migrator struct {
	DB           *gorm.DB
	Migrations   map[string]Step
	CurrentBatch int
	logger       Logger
}

// Status describes one known migration
type Status struct {
	Name      string
	Applied   bool
	Batch     int
	AppliedAt time.Time
}

// NewMigrator creates a migrator and makes sure the bookkeeping table exists
func NewMigrator(db *gorm.DB, logger Logger) (*Migrator, error) {
	if err := db.AutoMigrate(&Migration{}); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	var maxBatch int
	if err := db.Model(&Migration{}).Select("COALESCE(MAX(batch), 0)").Row().Scan(&maxBatch); err != nil {
		return nil, fmt.Errorf("failed to read current batch: %w", err)
	}

	return &Migrator{
		DB:           db,
		Migrations:   RegisterMigrations(),
		CurrentBatch: maxBatch + 1,
		logger:       logger,
	}, nil
}

// RegisterMigrations registers all migrations with up and down functions.
// Names sort in application order.
func RegisterMigrations() map[string]Step {
	return map[string]Step{
		"01_create_saved_contents_table": {
			Up:   CreateSavedContentsTable,
			Down: DropSavedContentsTable,
		},
		"02_add_saved_contents_indexes": {
			Up:   AddSavedContentsIndexes,
			Down: RemoveSavedContentsIndexes,
		},
	}
}

// Names returns the registered migration names in application order
func (m *Migrator) Names() []string {
	names := make([]string, 0, len(m.Migrations))
	for name := range m.Migrations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Migrator) applied() (map[string]Migration, error) {
	var records []Migration
	if err := m.DB.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	applied := make(map[string]Migration, len(records))
	for _, r := range records {
		applied[r.Name] = r
	}
	return applied, nil
}

// Migrate runs all pending migrations
func (m *Migrator) Migrate() error {
	applied, err := m.applied()
	if err != nil {
		return err
	}

	for _, name := range m.Names() {
		if _, ok := applied[name]; ok {
			continue
		}
		step := m.Migrations[name]

		m.logger.Info("Running migration", "name", name, "batch", m.CurrentBatch)
		err := m.DB.Transaction(func(tx *gorm.DB) error {
			if err := step.Up(tx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			return tx.Create(&Migration{Name: name, Batch: m.CurrentBatch}).Error
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
		m.logger.Info("Migration applied", "name", name)
	}

	return nil
}

// Rollback rolls back the last batch of migrations
func (m *Migrator) Rollback() error {
	var records []Migration
	if err := m.DB.Where("batch = ?", m.CurrentBatch-1).Order("id DESC").Find(&records).Error; err != nil {
		return fmt.Errorf("failed to get migrations to rollback: %w", err)
	}

	if len(records) == 0 {
		m.logger.Info("No migrations to rollback")
		return nil
	}

	return m.down(records)
}

// Reset rolls back all migrations and then applies them again
func (m *Migrator) Reset() error {
	var records []Migration
	if err := m.DB.Order("id DESC").Find(&records).Error; err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	if err := m.down(records); err != nil {
		return err
	}

	m.CurrentBatch = 1
	return m.Migrate()
}

func (m *Migrator) down(records []Migration) error {
	for _, record := range records {
		step, ok := m.Migrations[record.Name]
		if !ok {
			continue
		}
		record := record

		m.logger.Info("Rolling back migration", "name", record.Name)
		err := m.DB.Transaction(func(tx *gorm.DB) error {
			if err := step.Down(tx); err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			return tx.Delete(&record).Error
		})
		if err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", record.Name, err)
		}
	}
	return nil
}

// GetStatus returns the status of all migrations in application order
func (m *Migrator) GetStatus() ([]Status, error) {
	applied, err := m.applied()
	if err != nil {
		return nil, err
	}

	status := make([]Status, 0, len(m.Migrations))
	for _, name := range m.Names() {
		record, ok := applied[name]
		status = append(status, Status{
			Name:      name,
			Applied:   ok,
			Batch:     record.Batch,
			AppliedAt: record.AppliedAt,
		})
	}
	return status, nil
}
