package form

import (
	"github.com/google/uuid"

	domain "user-console/internal/domain/user"
)

// Status описывает состояние отправки формы.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// Controller — единственный источник истины для черновика в процессе
// заполнения: хранит текущие значения, ошибки валидации, признаки изменённости
// относительно базового снимка и статус отправки. На каждое изменение поля
// контроллер нормализует значение, пересчитывает производные поля и заново
// валидирует черновик.
//
// Экземпляр принадлежит одной сессии создания/редактирования и не разделяется
// между формами; все операции вызываются из одного потока управления.
type Controller struct {
	id       string // идентификатор экземпляра формы (для логов)
	mode     Mode
	recordID string // идентификатор записи каталога; только режим редактирования

	draft    Draft
	baseline Draft // базовый снимок для подсчёта изменений; только режим редактирования
	hydrated bool

	errors  map[string]string
	touched map[string]bool

	status    Status
	serverErr string
	disposed  bool
}

// NewController создаёт контроллер формы для заданного режима.
// В режиме создания черновик начинается пустым; в режиме редактирования
// перед работой требуется Hydrate.
func NewController(mode Mode) *Controller {
	c := &Controller{
		id:      uuid.NewString(),
		mode:    mode,
		touched: make(map[string]bool),
		status:  StatusIdle,
	}
	c.revalidate()
	return c
}

// ID возвращает идентификатор экземпляра формы.
func (c *Controller) ID() string { return c.id }

// Mode возвращает режим формы.
func (c *Controller) Mode() Mode { return c.mode }

// RecordID возвращает идентификатор редактируемой записи каталога.
// Идентификатор не входит в редактируемую нагрузку — это параметр пути
// операции обновления.
func (c *Controller) RecordID() string { return c.recordID }

// Draft возвращает копию текущего черновика.
func (c *Controller) Draft() Draft { return c.draft }

// Baseline возвращает копию базового снимка.
func (c *Controller) Baseline() Draft { return c.baseline }

// Status возвращает текущий статус отправки.
func (c *Controller) Status() Status { return c.status }

// ServerError возвращает последнее сообщение об ошибке сервера
// (пустая строка, если ошибки нет).
func (c *Controller) ServerError() string { return c.serverErr }

// Errors возвращает копию отображения поле → сообщение об ошибке валидации.
func (c *Controller) Errors() map[string]string {
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Touched возвращает true, если поле изменялось оператором.
func (c *Controller) Touched(field string) bool { return c.touched[field] }

// Hydrate загружает снимок записи каталога как текущий черновик и как базу
// для подсчёта изменений (только режим редактирования). Признаки изменённости
// сбрасываются, переключатель смены пароля выключается. Серверная строка даты
// нормализуется к календарной дате.
func (c *Controller) Hydrate(u *domain.User) {
	if c.disposed || c.mode != ModeEdit {
		return
	}
	d := Draft{
		Name:           u.Name,
		SurName:        u.SurName,
		FullName:       u.FullName,
		Email:          u.Email,
		BirthDate:      DateOnly(u.BirthDateValue()),
		Telephone:      NormalizePhone(u.TelephoneValue()),
		Employment:     string(u.Employment),
		UserAgreement:  u.UserAgreement,
		ChangePassword: false,
	}
	c.recordID = u.ID
	c.draft = d
	c.baseline = d
	c.hydrated = true
	c.touched = make(map[string]bool)
	c.status = StatusIdle
	c.serverErr = ""
	c.revalidate()
}

// SetField нормализует сырое значение, записывает его в черновик,
// пересчитывает производное полное имя при изменении имени/фамилии и заново
// валидирует черновик. Редактирование поля после неудачной отправки
// оптимистично сбрасывает статус в idle и очищает серверную ошибку.
//
// Нормализация никогда не завершается ошибкой: нераспознанный ввод
// деградирует к null/без изменений.
func (c *Controller) SetField(field string, value any) {
	if c.disposed {
		return
	}

	switch field {
	case FieldName:
		c.draft.Name = asString(value)
		c.draft.FullName = DeriveFullName(c.draft.Name, c.draft.SurName)
	case FieldSurName:
		c.draft.SurName = asString(value)
		c.draft.FullName = DeriveFullName(c.draft.Name, c.draft.SurName)
	case FieldFullName:
		// Ручной ввод принимается как есть, но перезаписывается деривацией
		// при следующем изменении имени или фамилии (last-writer-wins).
		c.draft.FullName = asString(value)
	case FieldEmail:
		c.draft.Email = asString(value)
	case FieldPassword:
		c.draft.Password = asString(value)
	case FieldConfirmPassword:
		c.draft.ConfirmPassword = asString(value)
	case FieldBirthDate:
		c.draft.BirthDate = asString(value)
	case FieldTelephone:
		c.draft.Telephone = NormalizePhone(asString(value))
	case FieldEmployment:
		c.draft.Employment = asString(value)
	case FieldUserAgreement:
		c.draft.UserAgreement = asBool(value)
	case FieldChangePassword:
		c.ToggleChangePassword(asBool(value))
		return
	default:
		return
	}

	c.touched[field] = true
	c.clearFailure()
	c.revalidate()
}

// ToggleChangePassword включает или выключает ветку смены пароля
// (только режим редактирования). Выключение очищает значения пароля
// и подтверждения вместе с их ошибками, не затрагивая признаки
// изменённости остальных полей.
func (c *Controller) ToggleChangePassword(flag bool) {
	if c.disposed || c.mode != ModeEdit {
		return
	}
	c.draft.ChangePassword = flag
	if !flag {
		c.draft.Password = ""
		c.draft.ConfirmPassword = ""
		delete(c.touched, FieldPassword)
		delete(c.touched, FieldConfirmPassword)
	}
	c.clearFailure()
	c.revalidate()
}

// IsDirty возвращает true, если черновик отличается от базового снимка
// хотя бы по одному отслеживаемому полю либо активна ветка смены пароля
// с непустым паролем. Сам переключатель смены пароля изменением записи
// не считается — он не сохраняется.
func (c *Controller) IsDirty() bool {
	if c.FieldDirty(FieldName) || c.FieldDirty(FieldSurName) || c.FieldDirty(FieldFullName) ||
		c.FieldDirty(FieldBirthDate) || c.FieldDirty(FieldTelephone) ||
		c.FieldDirty(FieldEmployment) || c.FieldDirty(FieldUserAgreement) {
		return true
	}
	return c.draft.ChangePassword && c.draft.Password != ""
}

// FieldDirty возвращает true, если каноническое значение поля отличается
// от базового снимка.
func (c *Controller) FieldDirty(field string) bool {
	switch field {
	case FieldName:
		return c.draft.Name != c.baseline.Name
	case FieldSurName:
		return c.draft.SurName != c.baseline.SurName
	case FieldFullName:
		return c.draft.FullName != c.baseline.FullName
	case FieldEmail:
		return c.draft.Email != c.baseline.Email
	case FieldBirthDate:
		return c.draft.BirthDate != c.baseline.BirthDate
	case FieldTelephone:
		return !equalOptional(c.draft.Telephone, c.baseline.Telephone)
	case FieldEmployment:
		return c.draft.Employment != c.baseline.Employment
	case FieldUserAgreement:
		return c.draft.UserAgreement != c.baseline.UserAgreement
	case FieldPassword:
		return c.draft.ChangePassword && c.draft.Password != ""
	}
	return false
}

// IsSubmittable возвращает true, если черновик валиден и форма готова к
// отправке: в режиме создания — всегда при валидном черновике, в режиме
// редактирования — только если запись изменена относительно загруженного
// снимка. Во время выполняющейся отправки форма не готова к повторной.
func (c *Controller) IsSubmittable() bool {
	if len(c.errors) != 0 || c.status == StatusSubmitting {
		return false
	}
	if c.mode == ModeEdit {
		return c.hydrated && c.IsDirty()
	}
	return true
}

// Dispose помечает экземпляр формы как покинутый: уход со страницы просто
// теряет интерес к результату. Последующие мутации, включая разрешение
// отправки, безопасно игнорируются.
func (c *Controller) Dispose() { c.disposed = true }

// Disposed возвращает true, если экземпляр формы покинут.
func (c *Controller) Disposed() bool { return c.disposed }

// revalidate пересчитывает отображение ошибок валидации для текущего черновика.
func (c *Controller) revalidate() {
	c.errors = Validate(&c.draft, c.mode)
}

// clearFailure оптимистично сбрасывает состояние неудачной отправки
// при следующем редактировании.
func (c *Controller) clearFailure() {
	if c.status == StatusFailed {
		c.status = StatusIdle
		c.serverErr = ""
	}
}

// beginSubmit переводит форму в состояние отправки. Повторная отправка во
// время выполняющейся отклоняется, равно как и отправка неготовой формы.
func (c *Controller) beginSubmit() error {
	if c.status == StatusSubmitting {
		return ErrSubmitInFlight
	}
	if !c.IsSubmittable() {
		return ErrNotSubmittable
	}
	c.status = StatusSubmitting
	return nil
}

// resolveSuccess фиксирует успешную отправку. На покинутом экземпляре — no-op.
func (c *Controller) resolveSuccess() {
	if c.disposed {
		return
	}
	c.status = StatusSucceeded
}

// resolveFailure фиксирует неудачную отправку и сохраняет сообщение сервера
// для отображения; черновик остаётся без изменений, чтобы оператор мог
// исправить данные и повторить. На покинутом экземпляре — no-op.
func (c *Controller) resolveFailure(msg string) {
	if c.disposed {
		return
	}
	c.status = StatusFailed
	c.serverErr = msg
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
