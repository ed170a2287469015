package profile

func charter() *Profile {
	return &Profile{
		Name:               "charter",
		PrincipleSections:  []string{"Core Principles", "Principles", "Articles"},
		GovernanceSections: []string{"Governance", "Amendments"},
		MinPrinciples:      1,
	}
}
