package profile

import "github.com/dshills/govlint/internal/section"

func constitution() *Profile {
	return &Profile{
		Name:               "constitution",
		PrincipleSections:  []string{"Core Principles"},
		GovernanceSections: []string{"Governance"},
		OrdinalStyle:       section.OrdinalRoman,
		MinPrinciples:      1,
		RequireHeader:      true,
	}
}
