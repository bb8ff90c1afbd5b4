package schema

import (
	"errors"
	"testing"

	"github.com/danmuck/forgesync/internal/testutil/testlog"
)

func TestValidateKnownProperties(t *testing.T) {
	testlog.Start(t)
	for _, kind := range []ObjectKind{ObjectCard, ObjectPlayer, ObjectGame} {
		for _, req := range Properties(kind) {
			if err := Validate(kind, req.Name); err != nil {
				t.Fatalf("validate %s.%s: %v", kind, req.Name, err)
			}
		}
	}
}

func TestValidateUnknownPropertyDeterministic(t *testing.T) {
	testlog.Start(t)
	err := Validate(ObjectPlayer, PropZone)
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.Object != ObjectPlayer || ve.Property != PropZone || ve.Reason != "unknown property" {
		t.Fatalf("unexpected validation error: %+v", ve)
	}
}

func TestValidateUnknownKind(t *testing.T) {
	testlog.Start(t)
	err := Validate(ObjectKind(42), PropName)
	ve, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.Reason != "unknown object kind" || ve.Property != "" {
		t.Fatalf("unexpected validation error: %+v", ve)
	}
	if ve.Error() != "schema: object=object(42): unknown object kind" {
		t.Fatalf("unexpected message: %q", ve.Error())
	}
}

func TestValidateSnapshotRequiredProperties(t *testing.T) {
	testlog.Start(t)
	if err := ValidateSnapshot(ObjectCard, []string{PropName, PropZone, PropOwner, PropTapped}); err != nil {
		t.Fatalf("validate card snapshot: %v", err)
	}
	err := ValidateSnapshot(ObjectCard, []string{PropName, PropOwner})
	ve, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.Property != PropZone || ve.Reason != "missing required property" {
		t.Fatalf("unexpected validation error: %+v", ve)
	}
}

func TestPropertiesReturnsCopy(t *testing.T) {
	props := Properties(ObjectGame)
	props[0].Name = "mutated"
	if Properties(ObjectGame)[0].Name != PropTurn {
		t.Fatalf("Properties leaked internal slice")
	}
}
