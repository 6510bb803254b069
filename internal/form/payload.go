package form

import "time"

// Payload — проводная нагрузка, отправляемая сервису каталога при создании
// или обновлении записи.
type Payload map[string]any

// BuildCreate строит нагрузку создания: все поля, кроме confirmPassword и
// changePassword. Поле с каноническим значением null полностью опускается —
// проводной контракт различает «поле не передано» и «поле явно очищено»,
// и при создании null никогда не отправляется явно.
func BuildCreate(d *Draft) Payload {
	p := Payload{
		"name":          d.Name,
		"surName":       d.SurName,
		"fullName":      d.FullName,
		"email":         d.Email,
		"password":      d.Password,
		"employment":    d.Employment,
		"userAgreement": d.UserAgreement,
	}
	if t := ParseDate(d.BirthDate); t != nil {
		p["birthDate"] = serializeDate(d.BirthDate)
	}
	if d.Telephone != nil {
		p["telephone"] = *d.Telephone
	}
	return p
}

// BuildEdit строит разреженную нагрузку обновления: среди полей name,
// surName, fullName, birthDate, telephone и employment отправляются только
// изменённые относительно базового снимка — и только при непустом текущем
// значении. Из-за правила «отправлять, если непусто» очистить telephone или
// birthDate обратно в пустое значение через этот канал нельзя; политика
// сохранена как есть (см. DESIGN.md).
//
// userAgreement включается всегда. password — только при активной ветке смены
// пароля и непустом значении. confirmPassword, id и email не отправляются
// никогда: confirmPassword — локальное поле формы, id — параметр пути,
// email при редактировании принадлежит серверу.
func BuildEdit(d, baseline *Draft) Payload {
	p := Payload{}

	if d.Name != baseline.Name && d.Name != "" {
		p["name"] = d.Name
	}
	if d.SurName != baseline.SurName && d.SurName != "" {
		p["surName"] = d.SurName
	}
	if d.FullName != baseline.FullName && d.FullName != "" {
		p["fullName"] = d.FullName
	}
	if d.BirthDate != baseline.BirthDate {
		if t := ParseDate(d.BirthDate); t != nil {
			p["birthDate"] = serializeDate(d.BirthDate)
		}
	}
	if !equalOptional(d.Telephone, baseline.Telephone) && d.Telephone != nil {
		p["telephone"] = *d.Telephone
	}
	if d.Employment != baseline.Employment && d.Employment != "" {
		p["employment"] = d.Employment
	}

	p["userAgreement"] = d.UserAgreement

	if d.ChangePassword && d.Password != "" {
		p["password"] = d.Password
	}

	return p
}

// serializeDate сериализует дату для проводной нагрузки: каноническая дата
// форматируется как ISO-8601 метка времени в UTC; строка, уже пришедшая в
// проводном формате, проходит без повторной сериализации.
func serializeDate(raw string) string {
	if _, err := time.Parse(time.RFC3339, raw); err == nil {
		return raw
	}
	t := ParseDate(raw)
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
