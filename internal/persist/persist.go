// Package persist stores named scene documents in a local SQLite database and
// offers plain-file import/export. Scenes are kept as their exported JSON text,
// so the database never lags behind the codec's wire format.
package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SceneModel is the database schema for a saved scene.
type SceneModel struct {
	Name      string `gorm:"primaryKey"`
	JSON      string
	UpdatedAt time.Time
}

// Store wraps the scene database. Open before use; a nil db means the store
// was never opened.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite database at path and runs migrations.
// The parent directory is created when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open scene database: %w", err)
	}
	if err := db.AutoMigrate(&SceneModel{}); err != nil {
		return nil, fmt.Errorf("migrate scene database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveScene upserts a scene document under the given name.
func (s *Store) SaveScene(name, doc string) error {
	if s.db == nil {
		return fmt.Errorf("scene database not opened")
	}
	if name == "" {
		return fmt.Errorf("scene name must not be empty")
	}
	return s.db.Save(&SceneModel{Name: name, JSON: doc}).Error
}

// LoadScene returns the stored document for name. Missing scenes return
// gorm.ErrRecordNotFound wrapped with the name.
func (s *Store) LoadScene(name string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("scene database not opened")
	}
	var model SceneModel
	if err := s.db.First(&model, "name = ?", name).Error; err != nil {
		return "", fmt.Errorf("load scene %q: %w", name, err)
	}
	return model.JSON, nil
}

// ListScenes returns the saved scene names, most recently updated first.
func (s *Store) ListScenes() ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("scene database not opened")
	}
	var models []SceneModel
	if err := s.db.Order("updated_at desc").Find(&models).Error; err != nil {
		return nil, err
	}
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.Name
	}
	return names, nil
}

// DeleteScene removes a saved scene. Deleting a missing scene is a no-op.
func (s *Store) DeleteScene(name string) error {
	if s.db == nil {
		return fmt.Errorf("scene database not opened")
	}
	return s.db.Delete(&SceneModel{}, "name = ?", name).Error
}

// WriteSceneFile writes a scene document to a plain JSON file.
func WriteSceneFile(path, doc string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(doc), 0644)
}

// ReadSceneFile reads a scene document from disk. The whole file is read and
// returned before the caller applies it, so a read failure can never leave the
// scene half replaced.
func ReadSceneFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
