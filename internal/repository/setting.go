package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prizedraw-api/internal/repository/dao"
)

const (
	SettingLogoURL   = "logo_url"
	SettingBannerURL = "banner_url"
)

type SettingDAO interface {
	Get(ctx context.Context, key string) (dao.Setting, error)
	Upsert(ctx context.Context, setting dao.Setting) error
}

type SettingRepository struct {
	dao SettingDAO
}

func NewSettingRepository(dao SettingDAO) *SettingRepository {
	return &SettingRepository{
		dao: dao,
	}
}

// Get returns the stored value, or "" when the key was never set.
func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	setting, err := r.dao.Get(ctx, key)
	if err != nil {
		if errors.Is(err, dao.ErrSettingNotFound) {
			return "", nil
		}

		return "", fmt.Errorf("r.dao.Get -> %w", err)
	}

	return setting.Value, nil
}

func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	err := r.dao.Upsert(ctx, dao.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return nil
}
