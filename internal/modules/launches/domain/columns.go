package domain

import (
	"fmt"
	"strings"

	apperrors "launchdash/internal/platform/errors"
)

// Role is the semantic meaning of a dataset column, independent of its header.
type Role string

const (
	RoleSite    Role = "launch site"
	RoleClass   Role = "outcome class"
	RolePayload Role = "payload mass"
	RoleBooster Role = "booster category"
)

// Aliases lists accepted header names per role, in priority order.
var Aliases = map[Role][]string{
	RoleSite:    {"Launch Site", "Launch_Site", "LaunchSite"},
	RoleClass:   {"class", "Class", "outcome", "Outcome", "landing_class"},
	RolePayload: {"Payload Mass (kg)", "PayloadMass", "Payload Mass", "Payload"},
	RoleBooster: {"Booster Version Category", "Booster Version", "Booster_Version", "BoosterVersion"},
}

var requiredRoles = []Role{RoleSite, RoleClass, RolePayload}

// Column is a resolved header: its name and zero-based position.
type Column struct {
	Name  string
	Index int
}

func (c Column) Found() bool { return c.Index >= 0 }

// ColumnMap records where each role lives in a header row.
type ColumnMap struct {
	Site    Column
	Class   Column
	Payload Column
	Booster Column
}

// MissingColumnsError is the fatal startup error for a dataset lacking a
// required role.
type MissingColumnsError struct {
	Missing   []Role
	Available []string
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, r := range e.Missing {
		names[i] = string(r)
	}
	quoted := make([]string, len(e.Available))
	for i, c := range e.Available {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf("missing expected column(s): %s. Available columns: [%s]",
		strings.Join(names, ", "), strings.Join(quoted, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return apperrors.ErrMissingColumns }

// ResolveColumns matches header names against Aliases. Required roles that
// match nothing produce a *MissingColumnsError; the booster role is optional.
func ResolveColumns(header []string) (ColumnMap, error) {
	cm := ColumnMap{
		Site:    find(header, Aliases[RoleSite]),
		Class:   find(header, Aliases[RoleClass]),
		Payload: find(header, Aliases[RolePayload]),
		Booster: find(header, Aliases[RoleBooster]),
	}
	var missing []Role
	for _, role := range requiredRoles {
		if !cm.Column(role).Found() {
			missing = append(missing, role)
		}
	}
	if len(missing) > 0 {
		available := make([]string, len(header))
		copy(available, header)
		return ColumnMap{}, &MissingColumnsError{Missing: missing, Available: available}
	}
	return cm, nil
}

func (m ColumnMap) Column(role Role) Column {
	switch role {
	case RoleSite:
		return m.Site
	case RoleClass:
		return m.Class
	case RolePayload:
		return m.Payload
	case RoleBooster:
		return m.Booster
	default:
		return Column{Index: -1}
	}
}

func find(header []string, candidates []string) Column {
	for _, c := range candidates {
		for i, h := range header {
			if h == c {
				return Column{Name: h, Index: i}
			}
		}
	}
	return Column{Index: -1}
}
