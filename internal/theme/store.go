package theme

import (
	"context"
	"errors"

	"github.com/HerbHall/storefront/internal/services"
)

// SettingKey is the persisted key holding the selected theme id.
const SettingKey = "selectedTheme"

// Store persists the selected theme id.
type Store interface {
	// Load returns the persisted id, or "" when nothing is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, id string) error
}

// SettingsStore adapts a settings repository to Store.
func SettingsStore(repo services.SettingsRepository) Store {
	return settingsStore{repo: repo}
}

type settingsStore struct {
	repo services.SettingsRepository
}

func (s settingsStore) Load(ctx context.Context) (string, error) {
	st, err := s.repo.Get(ctx, SettingKey)
	if errors.Is(err, services.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return st.Value, nil
}

func (s settingsStore) Save(ctx context.Context, id string) error {
	return s.repo.Set(ctx, SettingKey, id)
}
