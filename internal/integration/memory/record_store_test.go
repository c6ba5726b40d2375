package memory

import (
	"sync"
	"testing"

	"github.com/kpi-tracker/backend/internal/domain/entity"
)

func mamparas(employeeID string, month int, actual float64) entity.MonthlyRecord {
	return entity.MonthlyRecord{
		EmployeeID: employeeID,
		Month:      month,
		Category:   "Mamparas",
		Section:    entity.SectionSanitario,
		Actual:     actual,
	}
}

func TestRecordStore_UpsertReplacesValue(t *testing.T) {
	store := NewRecordStore()

	store.Upsert(mamparas("s1", 2, 4))
	store.Upsert(mamparas("s1", 2, 9))

	records := store.Records(entity.SectionSanitario)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Actual != 9 {
		t.Errorf("Actual = %v, want 9", records[0].Actual)
	}

	v, ok := store.Get(mamparas("s1", 2, 0).Key())
	if !ok || v != 9 {
		t.Errorf("Get() = %v, %v; want 9, true", v, ok)
	}
}

func TestRecordStore_KeyIncludesSection(t *testing.T) {
	store := NewRecordStore()

	store.Upsert(mamparas("s1", 0, 1))
	other := mamparas("s1", 0, 2)
	other.Section = entity.SectionCocinas
	store.Upsert(other)

	if got := len(store.Records(entity.SectionSanitario)); got != 1 {
		t.Errorf("Sanitario records = %d, want 1", got)
	}
	if got := len(store.Records(entity.SectionCocinas)); got != 1 {
		t.Errorf("Cocinas records = %d, want 1", got)
	}
	if got := len(store.Snapshot().Records); got != 2 {
		t.Errorf("snapshot records = %d, want 2", got)
	}
}

func TestRecordStore_ToggleLock(t *testing.T) {
	store := NewRecordStore()

	if store.IsLocked(entity.SectionMadera, 3) {
		t.Fatal("absent status must read as unlocked")
	}
	if !store.ToggleLock(entity.SectionMadera, 3) {
		t.Error("first toggle should lock")
	}
	if !store.IsLocked(entity.SectionMadera, 3) {
		t.Error("month should be locked")
	}
	if store.IsLocked(entity.SectionJardin, 3) {
		t.Error("lock must not leak to other sections")
	}
	if store.ToggleLock(entity.SectionMadera, 3) {
		t.Error("second toggle should unlock")
	}

	statuses := store.Statuses(entity.SectionMadera)
	if len(statuses) != 1 || statuses[0].IsFilled {
		t.Errorf("Statuses() = %+v, want one unlocked entry", statuses)
	}
}

func TestRecordStore_Replace(t *testing.T) {
	store := NewRecordStore()
	store.Upsert(mamparas("old", 0, 1))

	store.Replace(&entity.Snapshot{
		Records: []entity.MonthlyRecord{
			mamparas("s1", 0, 3),
			mamparas("s1", 0, 5),
			mamparas("s2", 1, 2),
		},
		Statuses: []entity.MonthStatus{{Month: 0, Section: entity.SectionSanitario, IsFilled: true}},
	})

	snapshot := store.Snapshot()
	if len(snapshot.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(snapshot.Records))
	}
	if snapshot.Records[0].EmployeeID != "s1" || snapshot.Records[0].Actual != 5 {
		t.Errorf("Records[0] = %+v, want s1 with 5", snapshot.Records[0])
	}
	if !store.IsLocked(entity.SectionSanitario, 0) {
		t.Error("replaced status should be locked")
	}

	store.Replace(nil)
	if got := len(store.Snapshot().Records); got != 0 {
		t.Errorf("records after nil replace = %d, want 0", got)
	}
}

func TestRecordStore_RecordsAreOrdered(t *testing.T) {
	store := NewRecordStore()
	store.Upsert(mamparas("s2", 0, 1))
	store.Upsert(mamparas("s1", 5, 1))
	store.Upsert(mamparas("s1", 1, 1))

	records := store.Records(entity.SectionSanitario)
	got := []string{}
	for _, r := range records {
		got = append(got, r.EmployeeID)
	}
	if got[0] != "s1" || records[0].Month != 1 || got[2] != "s2" {
		t.Errorf("order = %+v", records)
	}
}

// Concurrent writers to one key are not reconciled: the last writer to take
// the lock wins and the other value is lost. This test pins that behavior.
func TestRecordStore_ConcurrentWritersLastWriteWins(t *testing.T) {
	store := NewRecordStore()
	key := mamparas("s1", 0, 0).Key()

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 1; i <= writers; i++ {
		go func(v float64) {
			defer wg.Done()
			store.Upsert(mamparas("s1", 0, v))
		}(float64(i))
	}
	wg.Wait()

	records := store.Records(entity.SectionSanitario)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want exactly one row for the key", len(records))
	}
	v, _ := store.Get(key)
	if v < 1 || v > writers {
		t.Errorf("value = %v, want one of the written values", v)
	}
}
