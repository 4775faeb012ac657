package model

import "time"

type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "Pendiente"
	TicketStatusInProgress TicketStatus = "En Proceso"
	TicketStatusResolved   TicketStatus = "Resuelto"
)

// Valid reports whether s is one of the three known states. Any state may
// follow any other; there is no transition table.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusPending, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}

type Role string

const (
	RoleAdmin      Role = "Administrador"
	RoleTechnician Role = "Tecnico"
	RoleIntern     Role = "Pasante"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleIntern:
		return true
	}
	return false
}

// Ticket maps the tickets_soporte table. Identity is the database-assigned
// id_ticket; the human-facing code is derived from it, never stored.
type Ticket struct {
	ID            uint64       `gorm:"column:id_ticket;primaryKey" json:"id_ticket"`
	RequesterName string       `gorm:"column:nombre_completo;type:varchar(255);not null" json:"nombre_completo"`
	Position      string       `gorm:"column:cargo;type:varchar(255)" json:"cargo,omitempty"`
	Email         string       `gorm:"column:correo_institucional;type:varchar(255)" json:"correo_institucional,omitempty"`
	Phone         string       `gorm:"column:telefono_extension;type:varchar(64)" json:"telefono_extension,omitempty"`
	AreaID        *int64       `gorm:"column:id_area" json:"id_area,omitempty"`
	RequestTypeID *int64       `gorm:"column:id_tipo_requerimiento" json:"id_tipo_requerimiento,omitempty"`
	OtherDetail   *string      `gorm:"column:detalle_otro_requerimiento;type:text" json:"detalle_otro_requerimiento,omitempty"`
	Description   string       `gorm:"column:descripcion_problema;type:text;not null" json:"descripcion_problema"`
	Observations  *string      `gorm:"column:observaciones_adicionales;type:text" json:"observaciones_adicionales,omitempty"`
	Status        TicketStatus `gorm:"column:estado;type:varchar(32);not null;default:Pendiente" json:"estado"`
	AssignedTech  *string      `gorm:"column:tecnico_asignado;type:varchar(255)" json:"tecnico_asignado,omitempty"`
	CreatedAt     time.Time    `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`
}

func (Ticket) TableName() string { return "tickets_soporte" }

// User maps the usuarios table. Password holds a bcrypt hash.
type User struct {
	ID       uint64 `gorm:"column:id;primaryKey" json:"id"`
	FullName string `gorm:"column:nombre_completo;type:varchar(255);not null" json:"nombre_completo"`
	Email    string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Role     Role   `gorm:"column:rol;type:varchar(32);not null" json:"rol"`
}

func (User) TableName() string { return "usuarios" }

type CatalogArea struct {
	ID   int64  `gorm:"column:id_area;primaryKey" json:"id_area"`
	Name string `gorm:"column:nombre_area;type:varchar(255);uniqueIndex;not null" json:"nombre_area"`
}

func (CatalogArea) TableName() string { return "catalogo_areas" }

type CatalogType struct {
	ID   int64  `gorm:"column:id_tipo;primaryKey" json:"id_tipo"`
	Name string `gorm:"column:nombre_tipo;type:varchar(255);uniqueIndex;not null" json:"nombre_tipo"`
}

func (CatalogType) TableName() string { return "catalogo_tipos" }

// CatalogTypeOther is the request type whose selection requires
// detalle_otro_requerimiento on the public form.
const CatalogTypeOther = "Otros"
