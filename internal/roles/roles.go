package roles

import (
	"sort"
	"strings"
	"sync"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// Store holds the role taxonomy: category -> role name -> profile. It is
// safe for concurrent use; Replace swaps the whole taxonomy atomically
// so a live reload never exposes a half-loaded table.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]map[string]types.RoleProfile
}

// NewStore creates a store seeded with the built-in taxonomy.
func NewStore() *Store {
	s := &Store{}
	s.Replace(builtinProfiles())
	return s
}

// Replace swaps in a new taxonomy. Empty input falls back to the
// built-in set so a bad reload cannot leave the store empty.
func (s *Store) Replace(profiles map[string]map[string]types.RoleProfile) {
	if len(profiles) == 0 {
		profiles = builtinProfiles()
	}
	s.mu.Lock()
	s.profiles = profiles
	s.mu.Unlock()
}

// Categories returns the sorted category names.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.profiles))
	for category := range s.profiles {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Roles returns the sorted role names in a category.
func (s *Store) Roles(category string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.lookupCategory(category)
	if !ok {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidRoleConfig,
			"unknown role category", nil).WithContext("category", category)
	}
	out := make([]string, 0, len(group))
	for name := range group {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Get returns the profile for a role, matched case-insensitively.
func (s *Store) Get(category, role string) (*types.RoleProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.lookupCategory(category)
	if !ok {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidRoleConfig,
			"unknown role category", nil).WithContext("category", category)
	}
	for name, profile := range group {
		if strings.EqualFold(name, role) {
			p := profile
			return &p, nil
		}
	}
	return nil, errors.NewConfigError(errors.ErrCodeInvalidRoleConfig,
		"unknown role", nil).WithContext("category", category).WithContext("role", role)
}

// Find locates a role by name across all categories.
func (s *Store) Find(role string) (*types.RoleProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, group := range s.profiles {
		for name, profile := range group {
			if strings.EqualFold(name, role) {
				p := profile
				return &p, nil
			}
		}
	}
	return nil, errors.NewConfigError(errors.ErrCodeInvalidRoleConfig,
		"unknown role", nil).WithContext("role", role)
}

// All returns a copy of the full taxonomy in sorted order.
func (s *Store) All() []types.RoleProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []types.RoleProfile
	for _, group := range s.profiles {
		for _, profile := range group {
			out = append(out, profile)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (s *Store) lookupCategory(category string) (map[string]types.RoleProfile, bool) {
	if group, ok := s.profiles[category]; ok {
		return group, true
	}
	for name, group := range s.profiles {
		if strings.EqualFold(name, category) {
			return group, true
		}
	}
	return nil, false
}

// Custom builds an ad-hoc profile from an explicit skills list, for
// callers targeting a role outside the taxonomy.
func Custom(name string, skills []string) (*types.RoleProfile, error) {
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill != "" {
			cleaned = append(cleaned, skill)
		}
	}
	if name == "" {
		name = "Custom Role"
	}
	if len(cleaned) == 0 {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidRoleConfig,
			"custom role needs at least one skill", nil).WithContext("role", name)
	}
	return &types.RoleProfile{
		Category:       "Custom",
		Name:           name,
		RequiredSkills: cleaned,
	}, nil
}
