package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/inamhi-tic/helpdesk-service/internal/errs"
	"github.com/inamhi-tic/helpdesk-service/internal/model"
	"github.com/inamhi-tic/helpdesk-service/internal/ticketcode"
)

// Display placeholders. The null-reference and broken-join cases stay
// distinguishable in listings.
const (
	PlaceholderUnassigned  = "Sin Asignar"
	PlaceholderNoArea      = "Sin Área asignada"
	PlaceholderNoType      = "Sin Tipo asignado"
	PlaceholderUnknownArea = "Área Desconocida"
	PlaceholderUnknownType = "Tipo Desconocido"
)

// CreateTicketInput carries the public form fields. Area and RequestType are
// free-text catalog names, resolved best-effort at insert time.
type CreateTicketInput struct {
	RequesterName string
	Position      string
	Email         string
	Phone         string
	Area          string
	RequestType   string
	OtherDetail   string
	Description   string
	Observations  string
}

// TicketView is the read shape for listings and search: catalog references
// resolved to names (with placeholders) and the derived display code.
type TicketView struct {
	Code          string             `json:"id"`
	CreatedAt     time.Time          `json:"fecha_creacion"`
	RequesterName string             `json:"nombre_completo"`
	Area          string             `json:"area"`
	RequestType   string             `json:"tipo"`
	Status        model.TicketStatus `json:"estado"`
	Technician    string             `json:"tecnico_asignado"`
	Description   string             `json:"descripcion_problema"`
}

type TicketService struct {
	db *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db}
}

// Create validates the required fields, resolves both catalog references and
// inserts the row. Unresolvable catalog names are stored as NULL, never
// rejected; the listing placeholders make them visible.
func (s *TicketService) Create(ctx context.Context, in CreateTicketInput) (*model.Ticket, error) {
	if strings.TrimSpace(in.RequesterName) == "" {
		return nil, errs.NewValidation("nombre_completo")
	}
	if strings.TrimSpace(in.Area) == "" {
		return nil, errs.NewValidation("area")
	}
	if strings.TrimSpace(in.RequestType) == "" {
		return nil, errs.NewValidation("tipo_requerimiento")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, errs.NewValidation("descripcion_problema")
	}

	areaID, _, err := s.resolveArea(ctx, in.Area)
	if err != nil {
		return nil, err
	}
	typeID, typeName, err := s.resolveType(ctx, in.RequestType)
	if err != nil {
		return nil, err
	}
	if typeName == model.CatalogTypeOther && strings.TrimSpace(in.OtherDetail) == "" {
		return nil, errs.NewValidation("detalle_otro_requerimiento")
	}

	t := &model.Ticket{
		RequesterName: strings.TrimSpace(in.RequesterName),
		Position:      strings.TrimSpace(in.Position),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		AreaID:        areaID,
		RequestTypeID: typeID,
		OtherDetail:   optional(in.OtherDetail),
		Description:   strings.TrimSpace(in.Description),
		Observations:  optional(in.Observations),
		Status:        model.TicketStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// List returns every ticket, newest first, with catalog names resolved.
func (s *TicketService) List(ctx context.Context) ([]TicketView, error) {
	var rows []ticketRow
	if err := s.viewQuery(ctx).Order("t.fecha_creacion DESC, t.id_ticket DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	views := make([]TicketView, len(rows))
	for i := range rows {
		views[i] = rows[i].view()
	}
	return views, nil
}

// Search resolves term to a single ticket. An exact display-code match wins:
// the code is decoded, the row fetched by id, and the code re-derived from
// the row must equal the term. Otherwise the term is treated as a
// case-insensitive requester-name substring and the most recently created
// match is returned.
func (s *TicketService) Search(ctx context.Context, term string) (*TicketView, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errs.NewValidation("term")
	}

	if ticketcode.Looks(term) {
		if id, err := ticketcode.Decode(term); err == nil {
			var row ticketRow
			err := s.viewQuery(ctx).Where("t.id_ticket = ?", id).Scan(&row).Error
			if err != nil {
				return nil, err
			}
			if row.ID == id && ticketcode.Encode(row.ID, row.CreatedAt) == term {
				v := row.view()
				return &v, nil
			}
		}
	}

	var row ticketRow
	res := s.viewQuery(ctx).
		Where("LOWER(t.nombre_completo) LIKE ?", "%"+strings.ToLower(term)+"%").
		Order("t.fecha_creacion DESC, t.id_ticket DESC").
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.ErrTicketNotFound
	}
	v := row.view()
	return &v, nil
}

// Update sets the status and, when technician is non-nil, the assignment in
// the same statement. An empty or "Sin Asignar" technician unassigns (NULL).
// Last writer wins; there is no version check.
func (s *TicketService) Update(ctx context.Context, id uint64, status model.TicketStatus, technician *string) error {
	if !status.Valid() {
		return errs.NewValidation("estado")
	}
	changes := map[string]interface{}{"estado": status}
	if technician != nil {
		tech := strings.TrimSpace(*technician)
		if tech == "" || tech == PlaceholderUnassigned {
			changes["tecnico_asignado"] = nil
		} else {
			changes["tecnico_asignado"] = tech
		}
	}
	res := s.db.WithContext(ctx).Model(&model.Ticket{}).Where("id_ticket = ?", id).Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrTicketNotFound
	}
	return nil
}

// Delete removes the row. A second delete of the same id reports not found.
func (s *TicketService) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Where("id_ticket = ?", id).Delete(&model.Ticket{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrTicketNotFound
	}
	return nil
}

// ticketRow is the joined scan target for List and Search.
type ticketRow struct {
	ID            uint64
	RequesterName string
	AreaID        *int64
	AreaName      *string
	TypeID        *int64
	TypeName      *string
	Status        model.TicketStatus
	Technician    *string
	Description   string
	CreatedAt     time.Time
}

func (r *ticketRow) view() TicketView {
	v := TicketView{
		Code:          ticketcode.Encode(r.ID, r.CreatedAt),
		CreatedAt:     r.CreatedAt,
		RequesterName: r.RequesterName,
		Area:          resolveName(r.AreaID, r.AreaName, PlaceholderNoArea, PlaceholderUnknownArea),
		RequestType:   resolveName(r.TypeID, r.TypeName, PlaceholderNoType, PlaceholderUnknownType),
		Status:        r.Status,
		Technician:    PlaceholderUnassigned,
		Description:   r.Description,
	}
	if r.Technician != nil && strings.TrimSpace(*r.Technician) != "" {
		v.Technician = *r.Technician
	}
	return v
}

func resolveName(fk *int64, name *string, whenNull, whenBroken string) string {
	if name != nil {
		return *name
	}
	if fk != nil {
		return whenBroken
	}
	return whenNull
}

func (s *TicketService) viewQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("tickets_soporte AS t").
		Select("t.id_ticket AS id, t.nombre_completo AS requester_name, " +
			"t.id_area AS area_id, a.nombre_area AS area_name, " +
			"t.id_tipo_requerimiento AS type_id, tr.nombre_tipo AS type_name, " +
			"t.estado AS status, t.tecnico_asignado AS technician, " +
			"t.descripcion_problema AS description, t.fecha_creacion AS created_at").
		Joins("LEFT JOIN catalogo_areas a ON t.id_area = a.id_area").
		Joins("LEFT JOIN catalogo_tipos tr ON t.id_tipo_requerimiento = tr.id_tipo")
}

// resolveArea matches the free-text area name against the catalog, trimmed
// and case-insensitive. No match is not an error.
func (s *TicketService) resolveArea(ctx context.Context, input string) (*int64, string, error) {
	var area model.CatalogArea
	err := s.db.WithContext(ctx).
		Where("LOWER(TRIM(nombre_area)) = LOWER(TRIM(?))", input).
		First(&area).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return &area.ID, area.Name, nil
}

func (s *TicketService) resolveType(ctx context.Context, input string) (*int64, string, error) {
	var typ model.CatalogType
	err := s.db.WithContext(ctx).
		Where("LOWER(TRIM(nombre_tipo)) = LOWER(TRIM(?))", input).
		First(&typ).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return &typ.ID, typ.Name, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
