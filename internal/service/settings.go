package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"

	"prizedraw-api/internal/cache"
	"prizedraw-api/internal/config"
	"prizedraw-api/internal/repository"
)

const settingsCacheKey = "settings"

// SiteSettings is the public branding payload served to every visitor.
type SiteSettings struct {
	Name      string `json:"name"`
	Tagline   string `json:"tagline"`
	LogoURL   string `json:"logoUrl,omitempty"`
	BannerURL string `json:"bannerUrl,omitempty"`
}

type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// MediaStore uploads an asset and returns its public URL.
type MediaStore interface {
	Upload(ctx context.Context, file *multipart.FileHeader, key string) (string, error)
}

type SettingsService struct {
	site  *config.SiteConfig
	repo  SettingRepository
	media MediaStore
	store *cache.Store
}

func NewSettingsService(site *config.SiteConfig, repo SettingRepository, media MediaStore, store *cache.Store) *SettingsService {
	s := &SettingsService{
		site:  site,
		repo:  repo,
		media: media,
		store: store,
	}

	// Name and tagline hot-reload from the config file; the cached
	// payload must not outlive the edit.
	site.OnUpdate(func() {
		store.Invalidate(settingsCacheKey)
	})

	return s
}

func (s *SettingsService) GetSettings(ctx context.Context) (SiteSettings, error) {
	val, err := s.store.GetOrCompute(settingsCacheKey, func() (any, error) {
		name, tagline := s.site.Snapshot()

		logoURL, err := s.repo.Get(ctx, repository.SettingLogoURL)
		if err != nil {
			return nil, fmt.Errorf("s.repo.Get -> %w", err)
		}

		bannerURL, err := s.repo.Get(ctx, repository.SettingBannerURL)
		if err != nil {
			return nil, fmt.Errorf("s.repo.Get -> %w", err)
		}

		return SiteSettings{
			Name:      name,
			Tagline:   tagline,
			LogoURL:   logoURL,
			BannerURL: bannerURL,
		}, nil
	})
	if err != nil {
		return SiteSettings{}, err
	}

	return val.(SiteSettings), nil
}

func (s *SettingsService) UploadLogo(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.uploadBranding(ctx, file, "branding/logo", repository.SettingLogoURL)
}

func (s *SettingsService) UploadBanner(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.uploadBranding(ctx, file, "branding/banner", repository.SettingBannerURL)
}

// UploadCompetitionImage stores a competition asset; the caller attaches
// the returned URL to the competition record.
func (s *SettingsService) UploadCompetitionImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	key := fmt.Sprintf("competitions/%s%s", uuid.NewString(), filepath.Ext(file.Filename))

	url, err := s.media.Upload(ctx, file, key)
	if err != nil {
		return "", fmt.Errorf("s.media.Upload -> %w", err)
	}

	return url, nil
}

func (s *SettingsService) uploadBranding(ctx context.Context, file *multipart.FileHeader, prefix, settingKey string) (string, error) {
	key := fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), filepath.Ext(file.Filename))

	url, err := s.media.Upload(ctx, file, key)
	if err != nil {
		return "", fmt.Errorf("s.media.Upload -> %w", err)
	}

	if err = s.repo.Set(ctx, settingKey, url); err != nil {
		return "", fmt.Errorf("s.repo.Set -> %w", err)
	}

	s.store.Invalidate(settingsCacheKey)

	return url, nil
}
