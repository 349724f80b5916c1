package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/rentline/rentline/internal/outlet/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, outlet *domain.Outlet) error {
	return db.WithContext(ctx).Create(outlet).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Outlet, error) {
	var outlet domain.Outlet
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Take(&outlet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &outlet, nil
}

func (r *repo) ListByOrg(ctx context.Context, db *gorm.DB, orgID snowflake.ID) ([]domain.Outlet, error) {
	var outlets []domain.Outlet
	err := db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at desc, id desc").
		Find(&outlets).Error
	if err != nil {
		return nil, err
	}
	return outlets, nil
}
