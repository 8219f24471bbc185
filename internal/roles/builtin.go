package roles

import "resumelens/internal/types"

// builtinProfiles is the default taxonomy used when no roles file is
// configured. Categories and skills follow common hiring taxonomies.
func builtinProfiles() map[string]map[string]types.RoleProfile {
	table := map[string]map[string][]string{
		"Software Development": {
			"Backend Engineer":     {"Go", "SQL", "REST APIs", "Docker", "Kubernetes", "PostgreSQL"},
			"Frontend Developer":   {"JavaScript", "TypeScript", "React", "HTML", "CSS"},
			"Full Stack Developer": {"JavaScript", "Python", "SQL", "React", "Node.js", "Git"},
			"Mobile Developer":     {"Swift", "Kotlin", "React Native", "REST APIs"},
		},
		"Data Science": {
			"Data Scientist":            {"Python", "SQL", "Machine Learning", "Statistics", "Pandas"},
			"Data Engineer":             {"Python", "SQL", "Spark", "Airflow", "ETL"},
			"Machine Learning Engineer": {"Python", "TensorFlow", "PyTorch", "Machine Learning", "Docker"},
		},
		"DevOps & Infrastructure": {
			"DevOps Engineer":           {"Linux", "Docker", "Kubernetes", "Terraform", "CI/CD", "AWS"},
			"Site Reliability Engineer": {"Linux", "Kubernetes", "Prometheus", "Go", "Incident Response"},
			"Cloud Architect":           {"AWS", "GCP", "Terraform", "Networking", "Security"},
		},
		"Product & Design": {
			"Product Manager": {"Roadmapping", "Stakeholder Management", "Analytics", "Agile"},
			"UX Designer":     {"Figma", "User Research", "Prototyping", "Wireframing"},
		},
		"Quality Assurance": {
			"QA Engineer":         {"Test Planning", "Selenium", "API Testing", "SQL"},
			"Automation Engineer": {"Python", "Selenium", "CI/CD", "API Testing"},
		},
	}

	profiles := make(map[string]map[string]types.RoleProfile, len(table))
	for category, group := range table {
		profiles[category] = make(map[string]types.RoleProfile, len(group))
		for name, skills := range group {
			profiles[category][name] = types.RoleProfile{
				Category:       category,
				Name:           name,
				RequiredSkills: skills,
			}
		}
	}
	return profiles
}
