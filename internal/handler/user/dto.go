package user

// CreateUserRequest описывает сырые значения формы создания пользователя.
// Поля намеренно без binding-тегов: пополевую валидацию выполняет схема
// движка формы, чтобы клиент получил все ошибки сразу, а не первую.
type CreateUserRequest struct {
	Name            string `json:"name"`
	SurName         string `json:"surName"`
	FullName        string `json:"fullName"` // ручной ввод поверх производного значения
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	BirthDate       string `json:"birthDate"`
	Telephone       string `json:"telephone"`
	Employment      string `json:"employment"`
	UserAgreement   bool   `json:"userAgreement"`
}

// UpdateUserRequest описывает изменения формы редактирования. Все поля
// опциональны: переданные применяются к гидрированному черновику, признак
// изменённости считается движком относительно загруженного снимка.
type UpdateUserRequest struct {
	Name            *string `json:"name,omitempty"`
	SurName         *string `json:"surName,omitempty"`
	FullName        *string `json:"fullName,omitempty"`
	BirthDate       *string `json:"birthDate,omitempty"`
	Telephone       *string `json:"telephone,omitempty"`
	Employment      *string `json:"employment,omitempty"`
	UserAgreement   *bool   `json:"userAgreement,omitempty"`
	ChangePassword  *bool   `json:"changePassword,omitempty"`
	Password        *string `json:"password,omitempty"`
	ConfirmPassword *string `json:"confirmPassword,omitempty"`
}
