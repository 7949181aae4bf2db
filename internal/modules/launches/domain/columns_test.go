package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"launchdash/internal/modules/launches/domain"
	apperrors "launchdash/internal/platform/errors"
)

func TestResolveColumnsCanonicalHeader(t *testing.T) {
	t.Parallel()
	header := []string{"Flight Number", "Launch Site", "class", "Payload Mass (kg)", "Booster Version", "Booster Version Category"}
	cm, err := domain.ResolveColumns(header)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := domain.ColumnMap{
		Site:    domain.Column{Name: "Launch Site", Index: 1},
		Class:   domain.Column{Name: "class", Index: 2},
		Payload: domain.Column{Name: "Payload Mass (kg)", Index: 3},
		Booster: domain.Column{Name: "Booster Version Category", Index: 5},
	}
	if diff := cmp.Diff(want, cm); diff != "" {
		t.Fatalf("column map mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveColumnsAliases(t *testing.T) {
	t.Parallel()
	cm, err := domain.ResolveColumns([]string{"LaunchSite", "Outcome", "PayloadMass"})
	if err != nil {
		t.Fatalf("resolve aliases: %v", err)
	}
	if cm.Class.Name != "Outcome" || cm.Class.Index != 1 {
		t.Fatalf("expected Outcome to resolve the class role, got %+v", cm.Class)
	}
	if cm.Booster.Found() {
		t.Fatalf("booster should be optional and absent, got %+v", cm.Booster)
	}
}

func TestResolveColumnsMissingPayloadNamesAvailableColumns(t *testing.T) {
	t.Parallel()
	header := []string{"Launch Site", "class", "Mission"}
	_, err := domain.ResolveColumns(header)
	if err == nil {
		t.Fatalf("expected missing column error")
	}
	if !errors.Is(err, apperrors.ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	var missing *domain.MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingColumnsError, got %T", err)
	}
	if diff := cmp.Diff([]domain.Role{domain.RolePayload}, missing.Missing); diff != "" {
		t.Fatalf("missing roles (-want +got):\n%s", diff)
	}
	for _, col := range header {
		if !strings.Contains(err.Error(), `"`+col+`"`) {
			t.Fatalf("error should list available column %q: %v", col, err)
		}
	}
	if !strings.Contains(err.Error(), "payload mass") {
		t.Fatalf("error should name the missing role: %v", err)
	}
}

func TestResolveColumnsAliasPriority(t *testing.T) {
	t.Parallel()
	cm, err := domain.ResolveColumns([]string{"Outcome", "class", "Launch_Site", "Payload", "Payload Mass (kg)"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cm.Class.Name != "class" {
		t.Fatalf("class alias should win over Outcome, got %s", cm.Class.Name)
	}
	if cm.Payload.Name != "Payload Mass (kg)" {
		t.Fatalf("canonical payload alias should win, got %s", cm.Payload.Name)
	}
}
