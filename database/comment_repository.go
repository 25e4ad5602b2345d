package database

import (
	"context"
	"fmt"

	"stocks-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) GetAll(ctx context.Context) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := r.db.WithContext(ctx).Preload("User").Order("id ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", translate(err))
	}
	return nil
}

// Update replaces only the title and content of an existing comment.
func (r *CommentRepository) Update(ctx context.Context, id uint, title, content string) (*models.Comment, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Model(existing).
		Select("Title", "Content").
		Updates(models.Comment{Title: title, Content: content}).Error
	if err != nil {
		return nil, fmt.Errorf("update comment %d: %w", id, err)
	}
	existing.Title = title
	existing.Content = content
	return existing, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uint) (*models.Comment, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return nil, fmt.Errorf("delete comment %d: %w", id, err)
	}
	return existing, nil
}

func (r *CommentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}
