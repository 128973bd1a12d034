package models

// Contact - заявка, оставленная через контактную форму.
// CreatedAt проставляет сервис заявок, хранилище время не вычисляет.
type Contact struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// ContactInput - данные контактной формы.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactNotification публикуется в брокер после сохранения заявки.
type ContactNotification struct {
	MessageID string `json:"message_id"`
	ContactID int    `json:"contact_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}
