package domain

import "time"

// User es el registro de identidad reconciliado entre Postgres y Stream Chat.
// El UserID se deriva del email y nunca cambia después de la creación.
type User struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Turn es la unidad atómica de conversación persistida: un mensaje del
// usuario junto con la respuesta del modelo. Nunca se guarda un mensaje
// sin su respuesta.
type Turn struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"createdAt"`
}
