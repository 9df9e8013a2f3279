package entity

import "time"

// Site representa un sitio físico (planta, bodega o taller) donde se particiona el stock.
type Site struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
