package form

import (
	"strings"
	"time"
)

// dateLayouts — форматы дат, которые принимает нормализатор: календарная дата
// из поля ввода и ISO-8601 варианты, которые отдаёт каталог.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate приводит «похожее на дату» сырое значение к канонической дате.
// Функция тотальна и никогда не возвращает ошибку: пустая строка и
// нераспознанный ввод дают nil.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// DateOnly обрезает ISO-8601 метку времени до календарной даты YYYY-MM-DD.
// Используется при гидрации формы из ответа каталога: серверная строка даты
// нормализуется к «плоскому» представлению без времени.
func DateOnly(raw string) string {
	if raw == "" {
		return ""
	}
	date, _, _ := strings.Cut(raw, "T")
	return date
}

// NormalizeOptional переводит пустую строку в nil для любого опционального
// строкового поля, чтобы «не заполнено» представлялось единообразно —
// как null, а не как "".
func NormalizeOptional(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

// NormalizePhone нормализует телефон: пустая строка превращается в nil,
// любое другое значение проходит без изменений к валидатору формата.
// Переформатирование здесь намеренно не выполняется.
func NormalizePhone(raw string) *string {
	return NormalizeOptional(raw)
}
