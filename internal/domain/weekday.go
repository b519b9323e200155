package domain

import (
	"time"
)

type Weekday struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ResolveWeekday сопоставляет календарную дату с записью справочника дней недели
// по точному совпадению английского названия дня. Если совпадение не найдено,
// возвращается ok == false, это не является ошибкой.
func ResolveWeekday(catalog []Weekday, date time.Time) (Weekday, bool) {
	name := date.Weekday().String()
	for _, weekday := range catalog {
		if weekday.Name == name {
			return weekday, true
		}
	}
	return Weekday{}, false
}
