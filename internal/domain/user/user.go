package user

// Employment описывает тип занятости пользователя.
type Employment string

const (
	EmploymentIntern    Employment = "intern"    // стажёр
	EmploymentFulltime  Employment = "fulltime"  // полная занятость
	EmploymentFreelance Employment = "freelance" // фриланс
)

// Valid возвращает true, если значение входит в список допустимых типов занятости.
func (e Employment) Valid() bool {
	switch e {
	case EmploymentIntern, EmploymentFulltime, EmploymentFreelance:
		return true
	}
	return false
}

// User представляет каноническую запись пользователя, которой оперирует
// сервис каталога пользователей.
//
// Важно: эта модель описывает проводной контракт каталога (camelCase-поля)
// и не зависит от деталей форм создания/редактирования.
type User struct {
	ID            string     `json:"id"`                  // Непрозрачный идентификатор, назначается каталогом
	Name          string     `json:"name"`                // Имя
	SurName       string     `json:"surName"`             // Фамилия
	FullName      string     `json:"fullName"`            // Полное имя (производное от имени и фамилии)
	Email         string     `json:"email"`               // Email (в режиме редактирования — только отображение)
	BirthDate     *string    `json:"birthDate,omitempty"` // Дата рождения как ISO-8601 строка каталога (nil, если не указана)
	Telephone     *string    `json:"telephone,omitempty"` // Телефон в формате +7XXXXXXXXXX (nil, если не указан)
	Employment    Employment `json:"employment"`          // Тип занятости
	UserAgreement bool       `json:"userAgreement"`       // Согласие с политикой
}

// BirthDateValue возвращает дату рождения как строку или пустую строку,
// если дата не указана.
func (u *User) BirthDateValue() string {
	if u.BirthDate == nil {
		return ""
	}
	return *u.BirthDate
}

// TelephoneValue возвращает телефон как строку или пустую строку,
// если телефон не указан.
func (u *User) TelephoneValue() string {
	if u.Telephone == nil {
		return ""
	}
	return *u.Telephone
}

// Identity представляет аутентифицированную личность, которую возвращает
// сервис сессий. Консоль не хранит учётные данные — только эту пару.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
