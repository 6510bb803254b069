package form

import "strings"

// DeriveFullName вычисляет полное имя из имени и фамилии.
// Повторное применение с теми же аргументами даёт тот же результат
// (идемпотентность — см. тесты).
func DeriveFullName(name, surName string) string {
	return strings.TrimSpace(name + " " + surName)
}
