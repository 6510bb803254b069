package form

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	domain "user-console/internal/domain/user"
)

// Mode определяет сценарий работы формы: создание новой записи или
// редактирование существующей. Режим передаётся в валидацию явным
// параметром — схема остаётся чистой функцией от (draft, mode).
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Имена полей формы. Совпадают с ключами проводного контракта каталога.
const (
	FieldName            = "name"
	FieldSurName         = "surName"
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldBirthDate       = "birthDate"
	FieldTelephone       = "telephone"
	FieldEmployment      = "employment"
	FieldUserAgreement   = "userAgreement"
	FieldChangePassword  = "changePassword"
)

// FullNameMaxLen — максимальная длина полного имени в символах.
const FullNameMaxLen = 130

// PasswordMinLen — минимальная длина пароля в символах.
const PasswordMinLen = 5

// telephoneRe — требуемый формат телефона: +7 и ровно 10 цифр.
var telephoneRe = regexp.MustCompile(`^\+7\d{10}$`)

// validate — единый экземпляр go-playground валидатора; используется для
// правила формата email (то же ядро, что и в binding-тегах gin).
var validate = validator.New()

// Draft — черновик записи пользователя: значения формы после нормализации
// пустых строк, до отправки. Поля BirthDate и Telephone хранят «как введено»
// (телефон — уже схлопнутый к nil при пустом вводе), канонизация даты
// выполняется при построении полезной нагрузки.
type Draft struct {
	Name            string
	SurName         string
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	BirthDate       string  // календарная дата YYYY-MM-DD или другой сырой ввод; "" = не указана
	Telephone       *string // nil = не указан
	Employment      string
	UserAgreement   bool
	ChangePassword  bool // переключатель смены пароля; только режим редактирования, не сохраняется
}

// passwordBranchActive возвращает true, если для данного режима активна
// парольная ветка схемы: при создании — всегда, при редактировании — только
// при включённом переключателе смены пароля.
func passwordBranchActive(d *Draft, mode Mode) bool {
	return mode == ModeCreate || d.ChangePassword
}

// Validate проверяет черновик по декларативному набору правил и возвращает
// отображение поле → сообщение об ошибке. Пустое отображение означает, что
// черновик валиден. Все применимые правила выполняются независимо, без
// остановки на первой ошибке — вызывающая сторона показывает все ошибки сразу.
//
// Поле, нормализованное к null, считается «отсутствующим» и валидно, если не
// входит в обязательный набор текущего режима. Строки из одних пробелов
// намеренно не обрезаются перед проверкой обязательности.
func Validate(d *Draft, mode Mode) map[string]string {
	errs := make(map[string]string)

	if d.Name == "" {
		errs[FieldName] = "Имя обязательно"
	}
	if d.SurName == "" {
		errs[FieldSurName] = "Фамилия обязательна"
	}

	switch {
	case d.FullName == "":
		errs[FieldFullName] = "Полное имя обязательно"
	case utf8.RuneCountInString(d.FullName) > FullNameMaxLen:
		// Проверяется производное значение, так что в обычной работе правило
		// не срабатывает — оно страхует от будущей смены деривации.
		errs[FieldFullName] = "Не более 130 символов"
	}

	// Email проверяется только при создании; при редактировании поле
	// отображается как есть, источник истины — сервер.
	if mode == ModeCreate {
		switch {
		case d.Email == "":
			errs[FieldEmail] = "Email обязателен"
		case validate.Var(d.Email, "email") != nil:
			errs[FieldEmail] = "Неверный email"
		}
	}

	if passwordBranchActive(d, mode) {
		switch {
		case d.Password == "":
			errs[FieldPassword] = "Пароль обязателен"
		case utf8.RuneCountInString(d.Password) < PasswordMinLen:
			errs[FieldPassword] = "Минимум 5 символов"
		}
		switch {
		case d.ConfirmPassword == "":
			errs[FieldConfirmPassword] = "Подтверждение обязательно"
		case d.ConfirmPassword != d.Password:
			errs[FieldConfirmPassword] = "Пароли не совпадают"
		}
	}

	if strings.TrimSpace(d.BirthDate) != "" && ParseDate(d.BirthDate) == nil {
		errs[FieldBirthDate] = "Неверный формат даты"
	}

	if d.Telephone != nil && !telephoneRe.MatchString(*d.Telephone) {
		errs[FieldTelephone] = "Телефон должен быть в формате +79991234567"
	}

	switch {
	case d.Employment == "":
		errs[FieldEmployment] = "Укажите занятость"
	case !domain.Employment(d.Employment).Valid():
		errs[FieldEmployment] = "Недопустимый тип занятости"
	}

	if !d.UserAgreement {
		errs[FieldUserAgreement] = "Требуется согласие"
	}

	return errs
}
