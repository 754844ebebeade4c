package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"household-hub/internal/model"
)

// DefaultProfile is used when the caller does not name one.
const DefaultProfile = "default"

// PreferencesStore persists dashboard layouts.
type PreferencesStore interface {
	Load(ctx context.Context, profile string) (*model.UserPreferences, error)
	Save(ctx context.Context, prefs *model.UserPreferences) error
}

// PreferencesService keeps module order and visibility per profile.
type PreferencesService struct {
	store PreferencesStore
}

func NewPreferencesService(store PreferencesStore) *PreferencesService {
	return &PreferencesService{store: store}
}

// Get returns the stored layout or the default one.
func (s *PreferencesService) Get(ctx context.Context, profile string) (*model.UserPreferences, error) {
	profile = profileName(profile)
	prefs, err := s.store.Load(ctx, profile)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultPreferences(profile), nil
	}
	if err != nil {
		return nil, err
	}
	prefs.ModuleOrder = normalizeOrder(prefs.ModuleOrder)
	prefs.EnabledModules = normalizeEnabled(prefs.EnabledModules, prefs.ModuleOrder)
	return prefs, nil
}

// Save normalises and stores a layout. A nil enabled list enables every module.
func (s *PreferencesService) Save(ctx context.Context, profile string, order, enabled []string) (*model.UserPreferences, error) {
	for _, m := range append(append([]string{}, order...), enabled...) {
		if strings.TrimSpace(m) == "" {
			return nil, invalidf("module names must not be empty")
		}
	}
	prefs := &model.UserPreferences{Profile: profileName(profile)}
	prefs.ModuleOrder = normalizeOrder(order)
	if enabled == nil {
		prefs.EnabledModules = append([]string{}, prefs.ModuleOrder...)
	} else {
		prefs.EnabledModules = normalizeEnabled(enabled, prefs.ModuleOrder)
	}
	if err := s.store.Save(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func DefaultPreferences(profile string) *model.UserPreferences {
	return &model.UserPreferences{
		Profile:        profileName(profile),
		ModuleOrder:    append([]string{}, model.Modules...),
		EnabledModules: append([]string{}, model.Modules...),
	}
}

func profileName(p string) string {
	if p = strings.TrimSpace(p); p == "" {
		return DefaultProfile
	}
	return p
}

func knownModule(name string) bool {
	for _, m := range model.Modules {
		if m == name {
			return true
		}
	}
	return false
}

// normalizeOrder drops unknown and repeated modules and appends the missing
// ones in default order.
func normalizeOrder(order []string) []string {
	seen := make(map[string]bool, len(model.Modules))
	out := make([]string, 0, len(model.Modules))
	for _, m := range order {
		m = strings.ToLower(strings.TrimSpace(m))
		if !knownModule(m) || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	for _, m := range model.Modules {
		if !seen[m] {
			out = append(out, m)
		}
	}
	return out
}

// normalizeEnabled keeps known modules, listed in dashboard order.
func normalizeEnabled(enabled, order []string) []string {
	want := make(map[string]bool, len(enabled))
	for _, m := range enabled {
		want[strings.ToLower(strings.TrimSpace(m))] = true
	}
	out := make([]string, 0, len(enabled))
	for _, m := range order {
		if want[m] {
			out = append(out, m)
		}
	}
	return out
}
