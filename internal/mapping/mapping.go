package mapping

import (
	"fmt"

	"github.com/ironloft/gymboard/internal/domain"
)

// ValueKind identifies the wire representation a remote column expects.
type ValueKind string

const (
	KindText     ValueKind = "text"
	KindEmail    ValueKind = "email"
	KindPhone    ValueKind = "phone"
	KindDate     ValueKind = "date"
	KindStatus   ValueKind = "status"
	KindNumber   ValueKind = "number"
	KindDropdown ValueKind = "dropdown"
	KindCheckbox ValueKind = "checkbox"
	KindLink     ValueKind = "link"
)

// ColumnMapping ties one local field to one remote board column.
type ColumnMapping struct {
	LocalField string
	ColumnID   string
	Kind       ValueKind
}

// Per-entity-type translation tables. Static: the remote boards are
// provisioned once with these column ids and the tables change only with a
// deploy. Keep each table in sync with its board template.
var tables = map[domain.EntityType][]ColumnMapping{
	domain.EntityMember: {
		{LocalField: "email", ColumnID: "email", Kind: KindEmail},
		{LocalField: "phone", ColumnID: "phone", Kind: KindPhone},
		{LocalField: "join_date", ColumnID: "date4", Kind: KindDate},
		{LocalField: "membership_status", ColumnID: "status", Kind: KindStatus},
		{LocalField: "membership_type", ColumnID: "dropdown", Kind: KindDropdown},
		{LocalField: "monthly_fee", ColumnID: "numbers", Kind: KindNumber},
		{LocalField: "notes", ColumnID: "text", Kind: KindText},
	},
	domain.EntityEmployee: {
		{LocalField: "email", ColumnID: "email", Kind: KindEmail},
		{LocalField: "phone", ColumnID: "phone", Kind: KindPhone},
		{LocalField: "role", ColumnID: "status", Kind: KindStatus},
		{LocalField: "hire_date", ColumnID: "date4", Kind: KindDate},
		{LocalField: "hourly_rate", ColumnID: "numbers", Kind: KindNumber},
		{LocalField: "certified", ColumnID: "checkbox", Kind: KindCheckbox},
	},
	domain.EntityContract: {
		{LocalField: "member_id", ColumnID: "connect_boards", Kind: KindLink},
		{LocalField: "start_date", ColumnID: "date4", Kind: KindDate},
		{LocalField: "end_date", ColumnID: "date_1", Kind: KindDate},
		{LocalField: "contract_status", ColumnID: "status", Kind: KindStatus},
		{LocalField: "plan", ColumnID: "dropdown", Kind: KindDropdown},
		{LocalField: "total_value", ColumnID: "numbers", Kind: KindNumber},
	},
	domain.EntityPayment: {
		{LocalField: "member_id", ColumnID: "connect_boards", Kind: KindLink},
		{LocalField: "amount", ColumnID: "numbers", Kind: KindNumber},
		{LocalField: "paid_at", ColumnID: "date4", Kind: KindDate},
		{LocalField: "method", ColumnID: "dropdown", Kind: KindDropdown},
		{LocalField: "payment_status", ColumnID: "status", Kind: KindStatus},
		{LocalField: "reference", ColumnID: "text", Kind: KindText},
	},
	domain.EntityInventory: {
		{LocalField: "sku", ColumnID: "text", Kind: KindText},
		{LocalField: "category", ColumnID: "dropdown", Kind: KindDropdown},
		{LocalField: "price", ColumnID: "numbers", Kind: KindNumber},
		{LocalField: "stock", ColumnID: "numbers_1", Kind: KindNumber},
		{LocalField: "restock_date", ColumnID: "date4", Kind: KindDate},
		{LocalField: "sellable", ColumnID: "checkbox", Kind: KindCheckbox},
	},
	domain.EntitySchedule: {
		{LocalField: "class_date", ColumnID: "date4", Kind: KindDate},
		{LocalField: "trainer_id", ColumnID: "connect_boards", Kind: KindLink},
		{LocalField: "class_type", ColumnID: "dropdown", Kind: KindDropdown},
		{LocalField: "capacity", ColumnID: "numbers", Kind: KindNumber},
		{LocalField: "class_status", ColumnID: "status", Kind: KindStatus},
	},
}

// ForEntity returns the column mappings for an entity type.
func ForEntity(entityType domain.EntityType) []ColumnMapping {
	return tables[entityType]
}

// ByColumnID resolves a remote column id to its mapping for an entity type.
func ByColumnID(entityType domain.EntityType, columnID string) (ColumnMapping, bool) {
	for _, m := range tables[entityType] {
		if m.ColumnID == columnID {
			return m, true
		}
	}
	return ColumnMapping{}, false
}

// Validate checks the table invariants: local fields unique per entity type,
// and one remote column maps to at most one local field.
func Validate() error {
	for entityType, cols := range tables {
		fields := make(map[string]bool, len(cols))
		columns := make(map[string]bool, len(cols))
		for _, m := range cols {
			if fields[m.LocalField] {
				return fmt.Errorf("mapping for %s: duplicate local field %q", entityType, m.LocalField)
			}
			if columns[m.ColumnID] {
				return fmt.Errorf("mapping for %s: duplicate column id %q", entityType, m.ColumnID)
			}
			fields[m.LocalField] = true
			columns[m.ColumnID] = true
		}
	}
	return nil
}
