package dto

// CreateSiteRequest body para POST /api/sites.
type CreateSiteRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// SiteResponse representación de un sitio.
type SiteResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserResponse representación de un usuario del directorio (sin credenciales).
type UserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
}

// UomResponse unidad de medida.
type UomResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}
