/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package schedule

import (
	"errors"
	"testing"

	"github.com/friendsincode/grimnir_tv/internal/catalog"
)

// fakeLibrary satisfies Library without touching the filesystem.
type fakeLibrary map[string]catalog.Asset

func (l fakeLibrary) Asset(id string) (catalog.Asset, bool) {
	a, ok := l[id]
	return a, ok
}

func testLibrary() fakeLibrary {
	return fakeLibrary{
		"feature": {ID: "feature", Duration: 5400, Valid: true},
		"short":   {ID: "short", Duration: 1800, Valid: true},
		"corrupt": {ID: "corrupt", Duration: 0, Valid: false, Error: "manifest unreadable"},
	}
}

func pinAt(sec int) *int {
	return &sec
}

func TestAddProgramSnapshotsDuration(t *testing.T) {
	ch := New("America/Sao_Paulo")
	lib := testLibrary()

	if err := ch.AddProgram(lib, 1, "feature", nil); err != nil {
		t.Fatalf("AddProgram: %v", err)
	}
	if err := ch.AddProgram(lib, 1, "short", pinAt(72000)); err != nil {
		t.Fatalf("AddProgram pinned: %v", err)
	}

	entries := ch.Day(1)
	if len(entries) != 2 {
		t.Fatalf("day 1 has %d entries, want 2", len(entries))
	}
	if entries[0].Duration != 5400 || entries[0].Pinned() {
		t.Errorf("entry 0 = %+v, want unpinned 5400s", entries[0])
	}
	if !entries[1].Pinned() || *entries[1].Pin != 72000 {
		t.Errorf("entry 1 = %+v, want pin at 72000", entries[1])
	}

	// A later catalog change must not reach the already-scheduled entry.
	lib["feature"] = catalog.Asset{ID: "feature", Duration: 1, Valid: true}
	if ch.Day(1)[0].Duration != 5400 {
		t.Error("scheduled duration changed after catalog refresh")
	}
}

func TestAddProgramUnknownAsset(t *testing.T) {
	ch := New("UTC")
	lib := testLibrary()

	cases := []string{"ghost", "corrupt"}
	for _, id := range cases {
		err := ch.AddProgram(lib, 1, id, nil)
		if !errors.Is(err, ErrUnknownAsset) {
			t.Errorf("AddProgram(%q) err = %v, want ErrUnknownAsset", id, err)
		}
	}
	if len(ch.Day(1)) != 0 {
		t.Error("failed add must leave the day untouched")
	}
}

func TestAddProgramRejectsBadDayNumber(t *testing.T) {
	ch := New("UTC")
	if err := ch.AddProgram(testLibrary(), 0, "feature", nil); !errors.Is(err, ErrInvalidDayNumber) {
		t.Fatalf("err = %v, want ErrInvalidDayNumber", err)
	}
}

func TestRemoveLast(t *testing.T) {
	ch := New("UTC")
	lib := testLibrary()
	_ = ch.AddProgram(lib, 2, "feature", nil)
	_ = ch.AddProgram(lib, 2, "short", nil)

	removed, err := ch.RemoveLast(2)
	if err != nil {
		t.Fatalf("RemoveLast: %v", err)
	}
	if removed.AssetID != "short" {
		t.Errorf("removed %q, want short", removed.AssetID)
	}
	if len(ch.Day(2)) != 1 || ch.Day(2)[0].AssetID != "feature" {
		t.Errorf("day 2 after removal = %+v", ch.Day(2))
	}

	_, _ = ch.RemoveLast(2)
	if _, err := ch.RemoveLast(2); !errors.Is(err, ErrEmptyDay) {
		t.Errorf("RemoveLast on empty day err = %v, want ErrEmptyDay", err)
	}
}

func TestRemoveAtKeepsOrder(t *testing.T) {
	ch := New("UTC")
	lib := fakeLibrary{
		"a": {ID: "a", Duration: 60, Valid: true},
		"b": {ID: "b", Duration: 60, Valid: true},
		"c": {ID: "c", Duration: 60, Valid: true},
	}
	for _, id := range []string{"a", "b", "c"} {
		_ = ch.AddProgram(lib, 1, id, nil)
	}

	if _, err := ch.RemoveAt(1, 1); err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	entries := ch.Day(1)
	if len(entries) != 2 || entries[0].AssetID != "a" || entries[1].AssetID != "c" {
		t.Errorf("day after RemoveAt = %+v, want [a c]", entries)
	}

	if _, err := ch.RemoveAt(1, 5); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("RemoveAt out of range err = %v", err)
	}
	if _, err := ch.RemoveAt(1, -1); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("RemoveAt negative err = %v", err)
	}
}

func TestSetAndClearPin(t *testing.T) {
	ch := New("UTC")
	_ = ch.AddProgram(testLibrary(), 1, "feature", nil)

	if err := ch.SetPin(1, 0, "20:00"); err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	if pin := ch.Day(1)[0].Pin; pin == nil || *pin != 72000 {
		t.Fatalf("pin = %v, want 72000", pin)
	}

	if err := ch.SetPin(1, 0, "25:00"); err == nil {
		t.Error("SetPin with invalid time should fail")
	}
	if *ch.Day(1)[0].Pin != 72000 {
		t.Error("failed SetPin must not alter the existing pin")
	}

	if err := ch.SetPin(1, 3, "20:00"); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("SetPin out of range err = %v", err)
	}

	if err := ch.ClearPin(1, 0); err != nil {
		t.Fatalf("ClearPin: %v", err)
	}
	if ch.Day(1)[0].Pinned() {
		t.Error("pin survived ClearPin")
	}
	if err := ch.ClearPin(1, 9); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("ClearPin out of range err = %v", err)
	}
}

func TestClearVersusDelete(t *testing.T) {
	ch := New("UTC")
	lib := testLibrary()
	_ = ch.AddProgram(lib, 3, "feature", nil)
	_ = ch.AddProgram(lib, 5, "feature", nil)

	if err := ch.ClearDay(3); err != nil {
		t.Fatalf("ClearDay: %v", err)
	}
	if !ch.HasDay(3) {
		t.Error("cleared day must still exist")
	}
	if len(ch.Day(3)) != 0 {
		t.Error("cleared day must have no entries")
	}
	if ch.CycleLength() != 5 {
		t.Errorf("cycle length = %d, want 5", ch.CycleLength())
	}

	ch.DeleteDay(5)
	if ch.HasDay(5) {
		t.Error("deleted day must not exist")
	}
	if ch.CycleLength() != 3 {
		t.Errorf("cycle length after delete = %d, want 3", ch.CycleLength())
	}
}

func TestCopyDayIsDeep(t *testing.T) {
	ch := New("UTC")
	lib := testLibrary()
	_ = ch.AddProgram(lib, 1, "feature", pinAt(72000))
	_ = ch.AddProgram(lib, 1, "short", nil)

	if err := ch.CopyDay(1, 4); err != nil {
		t.Fatalf("CopyDay: %v", err)
	}
	if len(ch.Day(4)) != 2 {
		t.Fatalf("day 4 has %d entries, want 2", len(ch.Day(4)))
	}

	// Mutating the destination must never reach the source.
	if _, err := ch.RemoveLast(4); err != nil {
		t.Fatalf("RemoveLast on copy: %v", err)
	}
	if err := ch.SetPin(4, 0, "09:30"); err != nil {
		t.Fatalf("SetPin on copy: %v", err)
	}
	if len(ch.Day(1)) != 2 {
		t.Error("source lost entries after destination edit")
	}
	if *ch.Day(1)[0].Pin != 72000 {
		t.Error("source pin changed after destination repin")
	}

	if err := ch.CopyDay(9, 2); !errors.Is(err, ErrUnknownDay) {
		t.Errorf("CopyDay from missing day err = %v, want ErrUnknownDay", err)
	}
}

func TestCopyDayToMany(t *testing.T) {
	ch := New("UTC")
	_ = ch.AddProgram(testLibrary(), 2, "feature", nil)

	if err := ch.CopyDayToMany(2, []int{1, 2, 3, 7}); err != nil {
		t.Fatalf("CopyDayToMany: %v", err)
	}
	for _, day := range []int{1, 3, 7} {
		if len(ch.Day(day)) != 1 {
			t.Errorf("day %d has %d entries, want 1", day, len(ch.Day(day)))
		}
	}
	if len(ch.Day(2)) != 1 {
		t.Error("source day altered by self-copy skip")
	}
}

func TestDayNumbersSorted(t *testing.T) {
	ch := New("UTC")
	lib := testLibrary()
	for _, day := range []int{7, 1, 4} {
		_ = ch.AddProgram(lib, day, "short", nil)
	}
	got := ch.DayNumbers()
	want := []int{1, 4, 7}
	if len(got) != len(want) {
		t.Fatalf("DayNumbers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("DayNumbers = %v, want %v", got, want)
		}
	}
}
