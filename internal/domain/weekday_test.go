package domain

import (
	"testing"
	"time"
)

func weekdayCatalog() []Weekday {
	return []Weekday{
		{ID: 1, Name: "Monday"},
		{ID: 2, Name: "Tuesday"},
		{ID: 3, Name: "Wednesday"},
		{ID: 4, Name: "Thursday"},
		{ID: 5, Name: "Friday"},
		{ID: 6, Name: "Saturday"},
		{ID: 7, Name: "Sunday"},
	}
}

func TestResolveWeekday(t *testing.T) {
	// 2026-09-07 — понедельник
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	weekday, ok := ResolveWeekday(weekdayCatalog(), date)
	if !ok {
		t.Fatal("дата должна сопоставляться с днем недели")
	}
	if weekday.ID != 1 || weekday.Name != "Monday" {
		t.Errorf("получено %+v, ожидался Monday с ID 1", weekday)
	}
}

func TestResolveWeekdayNoMatch(t *testing.T) {
	catalog := []Weekday{
		{ID: 1, Name: "Понедельник"},
	}

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	_, ok := ResolveWeekday(catalog, date)
	if ok {
		t.Error("локализованное название не должно совпадать с английским")
	}
}

func TestResolveWeekdayEmptyCatalog(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	_, ok := ResolveWeekday(nil, date)
	if ok {
		t.Error("пустой справочник не должен давать совпадений")
	}
}
