package profile

func general() *Profile {
	return &Profile{
		Name:               "general",
		PrincipleSections:  []string{"Core Principles", "Principles", "Rules", "Policies"},
		GovernanceSections: []string{"Governance", "Versioning", "Change Management"},
		MinPrinciples:      1,
	}
}
