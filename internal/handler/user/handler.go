package user

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"user-console/internal/directory"
	domain "user-console/internal/domain/user"
	"user-console/internal/form"
	"user-console/internal/handler/response"
)

// Directory — операции каталога пользователей, которые использует handler.
type Directory interface {
	form.DirectoryService
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
}

// Handler обрабатывает HTTP-запросы, связанные с записями пользователей.
// Создание и редактирование прогоняются через движок формы: нормализация,
// валидация по схеме, пересчёт производных полей, подсчёт изменений и
// построение проводной нагрузки.
type Handler struct {
	dir Directory
}

// NewHandler создаёт новый UserHandler.
func NewHandler(dir Directory) *Handler {
	return &Handler{dir: dir}
}

// List возвращает все записи каталога.
func (h *Handler) List(c *gin.Context) {
	users, err := h.dir.List(c.Request.Context())
	if err != nil {
		log.Printf("directory error in List: err=%v", err)
		upstreamError(c, err, "directory_error", form.FallbackListMsg)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	c.JSON(http.StatusOK, users)
}

// Get возвращает одну запись каталога — источник гидрации формы редактирования.
func (h *Handler) Get(c *gin.Context) {
	u, err := h.dir.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("directory error in Get: id=%s err=%v", c.Param("id"), err)
		upstreamError(c, err, "directory_error", form.FallbackLoadMsg)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Create прогоняет значения формы создания через движок и отправляет полную
// нагрузку в каталог. Ошибки валидации возвращаются все сразу, отображением
// поле → сообщение.
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_request", "Некорректное тело запроса", err.Error())
		return
	}

	ctrl := form.NewController(form.ModeCreate)
	ctrl.SetField(form.FieldName, req.Name)
	ctrl.SetField(form.FieldSurName, req.SurName)
	if req.FullName != "" {
		ctrl.SetField(form.FieldFullName, req.FullName)
	}
	ctrl.SetField(form.FieldEmail, req.Email)
	ctrl.SetField(form.FieldPassword, req.Password)
	ctrl.SetField(form.FieldConfirmPassword, req.ConfirmPassword)
	ctrl.SetField(form.FieldBirthDate, req.BirthDate)
	ctrl.SetField(form.FieldTelephone, req.Telephone)
	ctrl.SetField(form.FieldEmployment, req.Employment)
	ctrl.SetField(form.FieldUserAgreement, req.UserAgreement)

	if errs := ctrl.Errors(); len(errs) > 0 {
		response.ValidationError(c, errs)
		return
	}

	orch := form.NewOrchestrator(h.dir, nil)
	res, err := orch.Submit(c.Request.Context(), ctrl)
	if err != nil {
		log.Printf("directory error in Create: err=%v", err)
		upstreamError(c, err, "create_failed", form.FallbackCreateMsg)
		return
	}

	c.JSON(http.StatusCreated, res.Record)
}

// Update гидрирует форму редактирования снимком записи, применяет переданные
// изменения и отправляет разреженный дифф. Запись без изменений относительно
// снимка к отправке не допускается.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_request", "Некорректное тело запроса", err.Error())
		return
	}

	snapshot, err := h.dir.Get(c.Request.Context(), id)
	if err != nil {
		log.Printf("directory error in Update (Get): id=%s err=%v", id, err)
		upstreamError(c, err, "directory_error", form.FallbackLoadMsg)
		return
	}

	ctrl := form.NewController(form.ModeEdit)
	ctrl.Hydrate(snapshot)

	// Переключатель смены пароля применяется до парольных полей:
	// от него зависит активность парольной ветки схемы.
	if req.ChangePassword != nil {
		ctrl.ToggleChangePassword(*req.ChangePassword)
	}
	if req.Password != nil {
		ctrl.SetField(form.FieldPassword, *req.Password)
	}
	if req.ConfirmPassword != nil {
		ctrl.SetField(form.FieldConfirmPassword, *req.ConfirmPassword)
	}
	if req.Name != nil {
		ctrl.SetField(form.FieldName, *req.Name)
	}
	if req.SurName != nil {
		ctrl.SetField(form.FieldSurName, *req.SurName)
	}
	if req.FullName != nil {
		ctrl.SetField(form.FieldFullName, *req.FullName)
	}
	if req.BirthDate != nil {
		ctrl.SetField(form.FieldBirthDate, *req.BirthDate)
	}
	if req.Telephone != nil {
		ctrl.SetField(form.FieldTelephone, *req.Telephone)
	}
	if req.Employment != nil {
		ctrl.SetField(form.FieldEmployment, *req.Employment)
	}
	if req.UserAgreement != nil {
		ctrl.SetField(form.FieldUserAgreement, *req.UserAgreement)
	}

	if errs := ctrl.Errors(); len(errs) > 0 {
		response.ValidationError(c, errs)
		return
	}
	if !ctrl.IsSubmittable() {
		response.Error(c, http.StatusConflict, "not_modified", "Нет изменений для сохранения", nil)
		return
	}

	orch := form.NewOrchestrator(h.dir, nil)
	res, err := orch.Submit(c.Request.Context(), ctrl)
	if err != nil {
		log.Printf("directory error in Update: id=%s err=%v", id, err)
		upstreamError(c, err, "update_failed", form.FallbackUpdateMsg)
		return
	}

	c.JSON(http.StatusOK, res.Record)
}

// Delete удаляет запись каталога. Подтверждение — явное, параметром запроса
// confirm=true (замена браузерного confirm у таблицы пользователей).
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	orch := form.NewOrchestrator(h.dir, func(string) bool {
		return c.Query("confirm") == "true"
	})

	if err := orch.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, form.ErrDeleteDeclined) {
			response.Error(c, http.StatusConflict, "delete_not_confirmed", "Удаление требует подтверждения (confirm=true)", nil)
			return
		}
		log.Printf("directory error in Delete: id=%s err=%v", id, err)
		upstreamError(c, err, "delete_failed", form.FallbackDeleteMsg)
		return
	}

	c.Status(http.StatusNoContent)
}

// upstreamError переводит ошибку каталога в ответ консоли: статус берётся из
// ответа каталога (если он осмысленный), сообщение — серверное либо резервное
// для конкретной операции.
func upstreamError(c *gin.Context, err error, code, fallback string) {
	status := http.StatusBadGateway
	var apiErr *directory.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status <= 599 {
		status = apiErr.Status
	}
	response.Error(c, status, code, form.ServerMessage(err, fallback), nil)
}
