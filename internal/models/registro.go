package models

// Status codes stored in the status column. The table predates this service
// and uses the literal Spanish yes/no codes for active/inactive.
const (
	StatusActive   = "SI"
	StatusInactive = "NO"
)

// Registro represents one person/work-assignment record.
// JSON field names match the wire contract (snake_case column names).
type Registro struct {
	ID              int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Proyecto        string  `gorm:"not null" json:"proyecto"`
	CentroOperacion *string `gorm:"column:centro_operacion" json:"centro_operacion"`
	Cargo           *string `json:"cargo"`
	Cedula          string  `gorm:"not null" json:"cedula"`
	Nombre          string  `gorm:"not null" json:"nombre"`
	Numero          *string `json:"numero"`
	Status          string  `gorm:"not null;default:'SI'" json:"status"`
}

// TableName specifies the table name for the Registro model
func (Registro) TableName() string {
	return "registros"
}

// OptionalField converts a form value to its stored representation.
// Empty optional fields persist as NULL, not as empty strings.
func OptionalField(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
