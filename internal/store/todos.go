package store

import (
	"errors"
	"strings"
	"time"

	"github.com/taskdock-dev/taskdock/internal/models"
	"gorm.io/gorm"
)

const DefaultListLimit = 100

type TodoStore struct {
	db *gorm.DB
}

func NewTodoStore(db *gorm.DB) *TodoStore {
	return &TodoStore{db: db}
}

// ListOptions narrows a listing. Nil filter fields impose no
// constraint; supplied filters are combined with AND.
type ListOptions struct {
	Skip      int
	Limit     int
	Category  *models.Category
	Priority  *models.Priority
	Completed *bool
	Search    string
}

// TodoInput carries the caller-supplied fields for a new todo.
type TodoInput struct {
	Title       string
	Description string
	Priority    models.Priority
	Category    models.Category
	DueDate     *time.Time
}

// TodoUpdate carries a partial update; nil fields are left untouched.
type TodoUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *models.Priority
	Category    *models.Category
	DueDate     *time.Time
}

// Stats is the per-owner aggregate summary. ByPriority and ByCategory
// cover the full enum domains, zero-filled.
type Stats struct {
	Total      int64                     `json:"total"`
	Completed  int64                     `json:"completed"`
	Active     int64                     `json:"active"`
	Overdue    int64                     `json:"overdue"`
	DueToday   int64                     `json:"due_today"`
	ByPriority map[models.Priority]int64 `json:"by_priority"`
	ByCategory map[models.Category]int64 `json:"by_category"`
}

// List returns the owner's todos matching every supplied filter,
// newest first, sliced by skip/limit.
func (s *TodoStore) List(ownerID uint, opts ListOptions) ([]models.Todo, error) {
	query := s.db.Where("owner_id = ?", ownerID)

	if opts.Category != nil {
		query = query.Where("category = ?", *opts.Category)
	}

	if opts.Priority != nil {
		query = query.Where("priority = ?", *opts.Priority)
	}

	if opts.Completed != nil {
		query = query.Where("completed = ?", *opts.Completed)
	}

	if opts.Search != "" {
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	limit := opts.Limit

	if limit <= 0 {
		limit = DefaultListLimit
	}

	todos := make([]models.Todo, 0)

	err := query.
		Order("created_at DESC, id DESC").
		Offset(opts.Skip).
		Limit(limit).
		Find(&todos).Error

	if err != nil {
		return nil, err
	}

	return todos, nil
}

// Get returns the todo only when both the id and the owner match; a
// mismatch on either is nil, indistinguishable from a missing id.
func (s *TodoStore) Get(id, ownerID uint) (*models.Todo, error) {
	var todo models.Todo

	err := s.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&todo).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &todo, nil
}

func (s *TodoStore) Create(ownerID uint, input TodoInput) (*models.Todo, error) {
	todo := models.Todo{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Category:    input.Category,
		DueDate:     input.DueDate,
		OwnerID:     ownerID,
	}

	if todo.Priority == "" {
		todo.Priority = models.PriorityMedium
	}

	if todo.Category == "" {
		todo.Category = models.CategoryPersonal
	}

	if err := s.db.Create(&todo).Error; err != nil {
		return nil, err
	}

	return &todo, nil
}

// Update applies only the supplied fields. A completed transition
// drives completed_at in the same transaction: false to true stamps
// it, true to false clears it, anything else leaves it alone. Returns
// nil under the same ownership rule as Get.
func (s *TodoStore) Update(id, ownerID uint, update TodoUpdate) (*models.Todo, error) {
	var todo models.Todo

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&todo).Error; err != nil {
			return err
		}

		updates := make(map[string]interface{})

		if update.Title != nil {
			updates["title"] = *update.Title
		}

		if update.Description != nil {
			updates["description"] = *update.Description
		}

		if update.Priority != nil {
			updates["priority"] = *update.Priority
		}

		if update.Category != nil {
			updates["category"] = *update.Category
		}

		if update.DueDate != nil {
			updates["due_date"] = *update.DueDate
		}

		if update.Completed != nil && *update.Completed != todo.Completed {
			updates["completed"] = *update.Completed
			if *update.Completed {
				updates["completed_at"] = time.Now()
			} else {
				updates["completed_at"] = nil
			}
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&todo).Updates(updates).Error; err != nil {
			return err
		}

		// Refresh so the caller sees store-written timestamps
		return tx.First(&todo, todo.ID).Error
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &todo, nil
}

// Delete removes the todo if owned by ownerID and reports whether a
// row was actually deleted.
func (s *TodoStore) Delete(id, ownerID uint) (bool, error) {
	result := s.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Todo{})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (s *TodoStore) Stats(ownerID uint) (*Stats, error) {
	owned := func() *gorm.DB {
		return s.db.Model(&models.Todo{}).Where("owner_id = ?", ownerID)
	}

	stats := Stats{
		ByPriority: make(map[models.Priority]int64, len(models.Priorities())),
		ByCategory: make(map[models.Category]int64, len(models.Categories())),
	}

	if err := owned().Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	if err := owned().Where("completed = ?", true).Count(&stats.Completed).Error; err != nil {
		return nil, err
	}

	stats.Active = stats.Total - stats.Completed

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if err := owned().
		Where("completed = ? AND due_date IS NOT NULL AND due_date < ?", false, startOfDay).
		Count(&stats.Overdue).Error; err != nil {
		return nil, err
	}

	if err := owned().
		Where("completed = ? AND due_date IS NOT NULL AND DATE(due_date) = DATE(?)", false, now).
		Count(&stats.DueToday).Error; err != nil {
		return nil, err
	}

	for _, priority := range models.Priorities() {
		var count int64
		if err := owned().Where("priority = ?", priority).Count(&count).Error; err != nil {
			return nil, err
		}
		stats.ByPriority[priority] = count
	}

	for _, category := range models.Categories() {
		var count int64
		if err := owned().Where("category = ?", category).Count(&count).Error; err != nil {
			return nil, err
		}
		stats.ByCategory[category] = count
	}

	return &stats, nil
}
