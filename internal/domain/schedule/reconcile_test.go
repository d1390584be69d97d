package schedule

import (
	"reflect"
	"testing"
	"time"
)

func TestReconcile_EmptyCurrent_CreatesEverything(t *testing.T) {
	target, err := Expand(day(2024, time.January, 1), day(2024, time.January, 3), []TimeOfDay{{Hour: 9}, {Hour: 21}})
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}

	d := Reconcile(nil, target)
	if !reflect.DeepEqual(d.ToCreate, target) {
		t.Fatalf("expected ToCreate == target, got %v", d.ToCreate)
	}
	if len(d.ToDelete) != 0 || len(d.ToKeep) != 0 {
		t.Fatalf("expected empty ToDelete/ToKeep, got %v / %v", d.ToDelete, d.ToKeep)
	}
}

func TestReconcile_EmptyTarget_DeletesEverything(t *testing.T) {
	current := []Slot{
		{"2024-01-01", "09:00"},
		{"2024-01-01", "21:00"},
		{"2024-01-02", "09:00"},
	}

	d := Reconcile(current, nil)
	if !reflect.DeepEqual(d.ToDelete, current) {
		t.Fatalf("expected ToDelete == current, got %v", d.ToDelete)
	}
	if len(d.ToCreate) != 0 || len(d.ToKeep) != 0 {
		t.Fatalf("expected empty ToCreate/ToKeep, got %v / %v", d.ToCreate, d.ToKeep)
	}
}

func TestReconcile_Identity_KeepsEverything(t *testing.T) {
	s := []Slot{
		{"2024-01-01", "09:00"},
		{"2024-01-02", "09:00"},
	}

	d := Reconcile(s, s)
	if !d.Empty() {
		t.Fatalf("expected empty diff, got create=%v delete=%v", d.ToCreate, d.ToDelete)
	}
	if !reflect.DeepEqual(d.ToKeep, s) {
		t.Fatalf("expected ToKeep == current, got %v", d.ToKeep)
	}
}

func TestReconcile_ShrunkRange(t *testing.T) {
	// Medicina de 3 días editada para terminar el día 2: caen los slots
	// del día 3, el resto queda intacto.
	current, _ := Expand(day(2024, time.January, 1), day(2024, time.January, 3), []TimeOfDay{{Hour: 9}, {Hour: 21}})
	target, _ := Expand(day(2024, time.January, 1), day(2024, time.January, 2), []TimeOfDay{{Hour: 9}, {Hour: 21}})

	d := Reconcile(current, target)

	wantDelete := []Slot{
		{"2024-01-03", "09:00"},
		{"2024-01-03", "21:00"},
	}
	if !reflect.DeepEqual(d.ToDelete, wantDelete) {
		t.Fatalf("expected delete %v, got %v", wantDelete, d.ToDelete)
	}
	if len(d.ToCreate) != 0 {
		t.Fatalf("expected nothing to create, got %v", d.ToCreate)
	}
	if len(d.ToKeep) != 4 {
		t.Fatalf("expected 4 kept slots, got %d", len(d.ToKeep))
	}
}

func TestReconcile_ChangedTimes(t *testing.T) {
	current, _ := Expand(day(2024, time.January, 1), day(2024, time.January, 2), []TimeOfDay{{Hour: 9}, {Hour: 21}})
	target, _ := Expand(day(2024, time.January, 1), day(2024, time.January, 2), []TimeOfDay{{Hour: 9}, {Hour: 22}})

	d := Reconcile(current, target)

	wantCreate := []Slot{{"2024-01-01", "22:00"}, {"2024-01-02", "22:00"}}
	wantDelete := []Slot{{"2024-01-01", "21:00"}, {"2024-01-02", "21:00"}}
	wantKeep := []Slot{{"2024-01-01", "09:00"}, {"2024-01-02", "09:00"}}

	if !reflect.DeepEqual(d.ToCreate, wantCreate) {
		t.Fatalf("expected create %v, got %v", wantCreate, d.ToCreate)
	}
	if !reflect.DeepEqual(d.ToDelete, wantDelete) {
		t.Fatalf("expected delete %v, got %v", wantDelete, d.ToDelete)
	}
	if !reflect.DeepEqual(d.ToKeep, wantKeep) {
		t.Fatalf("expected keep %v, got %v", wantKeep, d.ToKeep)
	}
}
