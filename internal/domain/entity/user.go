package entity

import "time"

// User directorio de usuarios del taller. Solo lectura desde esta API:
// la autenticación y la gestión de cuentas viven fuera del servicio.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Role      string // "admin" | "operario"
	Active    bool
	CreatedAt time.Time
}

// FullName nombre para mostrar en tableros y reportes.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
