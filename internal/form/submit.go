package form

import (
	"context"
	"errors"

	domain "user-console/internal/domain/user"
)

// Ошибки оркестратора отправки.
var (
	// ErrSubmitInFlight — отправка этой формы уже выполняется.
	ErrSubmitInFlight = errors.New("отправка формы уже выполняется")
	// ErrNotSubmittable — форма не готова к отправке (ошибки валидации
	// или отсутствие изменений в режиме редактирования).
	ErrNotSubmittable = errors.New("форма не готова к отправке")
	// ErrDeleteDeclined — удаление не подтверждено оператором.
	ErrDeleteDeclined = errors.New("удаление не подтверждено")
)

// Резервные сообщения об ошибках операций, когда сервер не прислал своё.
const (
	FallbackCreateMsg = "Ошибка при создании пользователя"
	FallbackUpdateMsg = "Ошибка при обновлении пользователя"
	FallbackLoadMsg   = "Ошибка при загрузке данных пользователя"
	FallbackListMsg   = "Ошибка загрузки"
	FallbackDeleteMsg = "Ошибка удаления"
)

// DirectoryService — внешний сервис каталога пользователей с точки зрения
// движка формы. Движок только формирует отправляемые нагрузки и потребляет
// форму записи, которую возвращает сервис.
type DirectoryService interface {
	CreateUser(ctx context.Context, payload Payload) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, payload Payload) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// ConfirmFunc — внедряемая способность подтверждения разрушительных действий.
// Заменяет браузерный confirm, чтобы оркестратор был тестируем без UI.
type ConfirmFunc func(prompt string) bool

// serverMessenger извлекает серверное сообщение из ошибки транспорта.
// Реализуется ошибкой клиента каталога.
type serverMessenger interface {
	ServerMessage() string
}

// ServerMessage возвращает сообщение сервера из ошибки или резервный текст,
// если сервер сообщение не прислал.
func ServerMessage(err error, fallback string) string {
	var sm serverMessenger
	if errors.As(err, &sm) && sm.ServerMessage() != "" {
		return sm.ServerMessage()
	}
	return fallback
}

// Result — терминальный результат успешной отправки.
type Result struct {
	Record   *domain.User // запись, которую вернул каталог
	Navigate bool         // сигнал «уйти со страницы» для вызывающей стороны
}

// Orchestrator управляет жизненным циклом отправки формы:
// idle → submitting → succeeded|failed, с возвратом failed → idle при
// следующем редактировании поля (это делает контроллер).
type Orchestrator struct {
	dir     DirectoryService
	confirm ConfirmFunc
}

// NewOrchestrator создаёт оркестратор отправки. Если confirm равен nil,
// разрушительные действия считаются подтверждёнными.
func NewOrchestrator(dir DirectoryService, confirm ConfirmFunc) *Orchestrator {
	return &Orchestrator{dir: dir, confirm: confirm}
}

// Submit выполняет отправку формы: строит нагрузку по режиму (полный объект
// при создании, разреженный дифф при редактировании) и вызывает операцию
// каталога. Повторная отправка во время выполняющейся отклоняется. При ошибке
// сервера черновик сохраняется без изменений, сообщение фиксируется в
// контроллере; при успехе результат сигнализирует о навигации. Разрешение
// отправки на покинутом экземпляре формы состояние не мутирует.
func (o *Orchestrator) Submit(ctx context.Context, c *Controller) (*Result, error) {
	if err := c.beginSubmit(); err != nil {
		return nil, err
	}

	draft := c.Draft()
	baseline := c.Baseline()

	var (
		rec      *domain.User
		err      error
		fallback string
	)
	switch c.Mode() {
	case ModeEdit:
		fallback = FallbackUpdateMsg
		rec, err = o.dir.UpdateUser(ctx, c.RecordID(), BuildEdit(&draft, &baseline))
	default:
		fallback = FallbackCreateMsg
		rec, err = o.dir.CreateUser(ctx, BuildCreate(&draft))
	}

	if err != nil {
		c.resolveFailure(ServerMessage(err, fallback))
		return nil, err
	}

	c.resolveSuccess()
	return &Result{Record: rec, Navigate: true}, nil
}

// Delete удаляет запись каталога после явного подтверждения.
func (o *Orchestrator) Delete(ctx context.Context, id string) error {
	if o.confirm != nil && !o.confirm("Удалить пользователя?") {
		return ErrDeleteDeclined
	}
	return o.dir.DeleteUser(ctx, id)
}
