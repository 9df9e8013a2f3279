package catalog

import (
	"time"

	"github.com/tu-usuario/ensamblados-api/internal/application/dto"
	"github.com/tu-usuario/ensamblados-api/internal/domain"
	"github.com/tu-usuario/ensamblados-api/internal/domain/entity"
	"github.com/tu-usuario/ensamblados-api/internal/domain/repository"
)

// DirectoryUseCase lecturas de referencia: sitios, usuarios y unidades de
// medida. Los usuarios son solo directorio; sus credenciales viven fuera.
type DirectoryUseCase struct {
	siteRepo repository.SiteRepository
	userRepo repository.UserRepository
	uomRepo  repository.UomRepository
}

// NewDirectoryUseCase construye el caso de uso.
func NewDirectoryUseCase(
	siteRepo repository.SiteRepository,
	userRepo repository.UserRepository,
	uomRepo repository.UomRepository,
) *DirectoryUseCase {
	return &DirectoryUseCase{siteRepo: siteRepo, userRepo: userRepo, uomRepo: uomRepo}
}

// CreateSite crea un sitio.
func (uc *DirectoryUseCase) CreateSite(in dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	now := time.Now()
	site := &entity.Site{Name: in.Name, CreatedAt: now, UpdatedAt: now}
	if err := uc.siteRepo.Create(site); err != nil {
		return nil, err
	}
	return &dto.SiteResponse{ID: site.ID, Name: site.Name}, nil
}

// GetSite obtiene un sitio por ID.
func (uc *DirectoryUseCase) GetSite(id int64) (*dto.SiteResponse, error) {
	site, err := uc.siteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.SiteResponse{ID: site.ID, Name: site.Name}, nil
}

// ListSites todos los sitios.
func (uc *DirectoryUseCase) ListSites() ([]dto.SiteResponse, error) {
	sites, err := uc.siteRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SiteResponse, 0, len(sites))
	for _, s := range sites {
		out = append(out, dto.SiteResponse{ID: s.ID, Name: s.Name})
	}
	return out, nil
}

// GetUser obtiene un usuario del directorio.
func (uc *DirectoryUseCase) GetUser(id int64) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(u), nil
}

// ListUsers todos los usuarios del directorio.
func (uc *DirectoryUseCase) ListUsers() ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// ListUoms unidades de medida de referencia.
func (uc *DirectoryUseCase) ListUoms() ([]dto.UomResponse, error) {
	uoms, err := uc.uomRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UomResponse, 0, len(uoms))
	for _, u := range uoms {
		out = append(out, dto.UomResponse{ID: u.ID, Name: u.Name, Symbol: u.Symbol})
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
	}
}
