package roles

import (
	"strings"

	"github.com/spf13/viper"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// roleFileEntry is the on-disk shape of one role in a roles YAML file:
//
//	categories:
//	  Software Development:
//	    Backend Engineer:
//	      description: Builds server-side systems
//	      required_skills: [Go, SQL, Docker]
type roleFileEntry struct {
	Description    string   `mapstructure:"description"`
	RequiredSkills []string `mapstructure:"required_skills"`
}

// LoadFile reads a role taxonomy from a YAML file. Every role must name
// at least one required skill.
func LoadFile(path string) (map[string]map[string]types.RoleProfile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidRoleConfig,
			"failed to read roles file", err).WithContext("path", path)
	}

	var file struct {
		Categories map[string]map[string]roleFileEntry `mapstructure:"categories"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidRoleConfig,
			"failed to parse roles file", err).WithContext("path", path)
	}
	if len(file.Categories) == 0 {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidRoleConfig,
			"roles file defines no categories", nil).WithContext("path", path)
	}

	profiles := make(map[string]map[string]types.RoleProfile, len(file.Categories))
	for category, group := range file.Categories {
		if len(group) == 0 {
			return nil, errors.NewConfigError(errors.ErrCodeInvalidRoleConfig,
				"role category is empty", nil).WithContext("category", category)
		}
		profiles[category] = make(map[string]types.RoleProfile, len(group))
		for name, entry := range group {
			skills := make([]string, 0, len(entry.RequiredSkills))
			for _, skill := range entry.RequiredSkills {
				if s := strings.TrimSpace(skill); s != "" {
					skills = append(skills, s)
				}
			}
			if len(skills) == 0 {
				return nil, errors.NewConfigError(errors.ErrCodeInvalidRoleConfig,
					"role has no required skills", nil).
					WithContext("category", category).WithContext("role", name)
			}
			profiles[category][name] = types.RoleProfile{
				Category:       category,
				Name:           name,
				Description:    entry.Description,
				RequiredSkills: skills,
			}
		}
	}
	return profiles, nil
}
