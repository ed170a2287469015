// Package profile defines the named validation profiles that tune what
// the structure validator demands of a document class.
package profile

import (
	"fmt"

	"github.com/dshills/govlint/internal/section"
)

// Profile defines the rules for a named document profile.
type Profile struct {
	Name string

	// PrincipleSections are the accepted titles for the section that
	// holds the numbered principles, in preference order.
	PrincipleSections []string

	// GovernanceSections are the accepted titles for the governance
	// section.
	GovernanceSections []string

	// OrdinalStyle, when set, is the expected principle numbering
	// style; principles using the other style draw a warning.
	OrdinalStyle section.OrdinalStyle

	// MinPrinciples is the minimum number of numbered principles the
	// principles section must contain.
	MinPrinciples int

	// RequireHeader warns when the document carries no front-matter
	// header at all. Headers stay optional (never an error) in every
	// profile.
	RequireHeader bool
}

// Get returns the built-in profile for the given name. The empty name
// selects the constitution profile.
func Get(name string) (*Profile, error) {
	switch name {
	case "constitution", "":
		return constitution(), nil
	case "charter":
		return charter(), nil
	case "general":
		return general(), nil
	default:
		return nil, fmt.Errorf("unknown profile %q: valid profiles are constitution, charter, general", name)
	}
}
