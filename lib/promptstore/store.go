package promptstore

import (
	errs "errors"
	"strings"
	"time"

	"github.com/oliverisaac/promptbase/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Store owns the prompts table. Every mutation is a single SQL statement, so
// a concurrent reader never observes a half-updated row. Concurrent editors
// are last-write-wins; there is no conflict detection.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Initialize ensures the prompts table exists. Safe to call repeatedly.
func (s *Store) Initialize() error {
	if err := s.db.AutoMigrate(&types.Prompt{}); err != nil {
		return StorageError{Op: "migrating prompts table", Err: err}
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "getting underlying connection")
	}
	return sqlDB.Close()
}

func validate(title, content string) error {
	if title == "" {
		return ValidationError{Field: "title"}
	}
	if content == "" {
		return ValidationError{Field: "content"}
	}
	return nil
}

func (s *Store) Create(title, content string, isFavorite bool) (types.Prompt, error) {
	if err := validate(title, content); err != nil {
		return types.Prompt{}, err
	}

	now := time.Now()
	prompt := types.Prompt{
		Title:      title,
		Content:    content,
		IsFavorite: isFavorite,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.db.Create(&prompt).Error; err != nil {
		return types.Prompt{}, StorageError{Op: "saving prompt", Err: err}
	}
	return prompt, nil
}

// likePattern escapes LIKE wildcards in the filter text so it always behaves
// as a literal substring match.
func likePattern(filter string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(filter)
	return "%" + strings.ToLower(escaped) + "%"
}

// List returns a fresh snapshot of every prompt whose title or content
// contains filter, case-insensitively. An empty filter matches everything.
func (s *Store) List(filter string, sort SortMode) ([]types.Prompt, error) {
	prompts := []types.Prompt{}

	q := s.db.Order(sort.orderClause())
	if filter != "" {
		pattern := likePattern(filter)
		q = q.Where(`lower(title) LIKE ? ESCAPE '\' OR lower(prompt) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	if err := q.Find(&prompts).Error; err != nil {
		return nil, StorageError{Op: "listing prompts", Err: err}
	}
	return prompts, nil
}

func (s *Store) Get(id uint) (types.Prompt, error) {
	var prompt types.Prompt
	err := s.db.First(&prompt, "id = ?", id).Error
	if errs.Is(err, gorm.ErrRecordNotFound) {
		return types.Prompt{}, ErrNotFound
	}
	if err != nil {
		return types.Prompt{}, StorageError{Op: "fetching prompt", Err: err}
	}
	return prompt, nil
}

func (s *Store) Update(id uint, title, content string, isFavorite bool) (types.Prompt, error) {
	if err := validate(title, content); err != nil {
		return types.Prompt{}, err
	}

	res := s.db.Model(&types.Prompt{}).Where("id = ?", id).Updates(map[string]any{
		"title":       title,
		"prompt":      content,
		"is_favorite": isFavorite,
		"updated_at":  time.Now(),
	})
	if res.Error != nil {
		return types.Prompt{}, StorageError{Op: "updating prompt", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return types.Prompt{}, ErrNotFound
	}
	return s.Get(id)
}

// ToggleFavorite flips is_favorite in place. The flip happens in SQL so it is
// atomic with the updated_at refresh.
func (s *Store) ToggleFavorite(id uint) (types.Prompt, error) {
	res := s.db.Model(&types.Prompt{}).Where("id = ?", id).Updates(map[string]any{
		"is_favorite": gorm.Expr("NOT is_favorite"),
		"updated_at":  time.Now(),
	})
	if res.Error != nil {
		return types.Prompt{}, StorageError{Op: "toggling favorite", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return types.Prompt{}, ErrNotFound
	}
	return s.Get(id)
}

// Delete removes the prompt. Deleting an id that does not exist is a no-op:
// re-clicking delete after the row is already gone succeeds quietly.
func (s *Store) Delete(id uint) error {
	if err := s.db.Delete(&types.Prompt{}, "id = ?", id).Error; err != nil {
		return StorageError{Op: "deleting prompt", Err: err}
	}
	return nil
}
