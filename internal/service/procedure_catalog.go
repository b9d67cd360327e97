package service

import (
	"dental-clinic-api/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CatalogProcedure is a common procedure with its default price, offered to
// the treatment plan builder as a starting point.
type CatalogProcedure struct {
	Name        string          `json:"name"`
	DefaultCost decimal.Decimal `json:"default_cost"`
}

var commonProcedures = []CatalogProcedure{
	{Name: "Regular Cleaning", DefaultCost: decimal.NewFromInt(80)},
	{Name: "Deep Cleaning", DefaultCost: decimal.NewFromInt(200)},
	{Name: "Composite Filling", DefaultCost: decimal.NewFromInt(150)},
	{Name: "Amalgam Filling", DefaultCost: decimal.NewFromInt(120)},
	{Name: "Root Canal", DefaultCost: decimal.NewFromInt(1100)},
	{Name: "Porcelain Crown", DefaultCost: decimal.NewFromInt(800)},
	{Name: "Zirconia Crown", DefaultCost: decimal.NewFromInt(1200)},
	{Name: "Tooth Extraction", DefaultCost: decimal.NewFromInt(150)},
	{Name: "Surgical Extraction", DefaultCost: decimal.NewFromInt(300)},
	{Name: "Dental Implant", DefaultCost: decimal.NewFromInt(2500)},
	{Name: "Teeth Whitening", DefaultCost: decimal.NewFromInt(500)},
	{Name: "Veneer", DefaultCost: decimal.NewFromInt(900)},
	{Name: "Dental Sealant", DefaultCost: decimal.NewFromInt(50)},
}

// ProcedureCatalog exposes the static list of common dental procedures
type ProcedureCatalog struct{}

func NewProcedureCatalog() *ProcedureCatalog {
	return &ProcedureCatalog{}
}

// Common returns a copy of the catalog
func (c *ProcedureCatalog) Common() []CatalogProcedure {
	out := make([]CatalogProcedure, len(commonProcedures))
	copy(out, commonProcedures)
	return out
}

// Draft converts a catalog entry into a plan procedure draft
func (c *ProcedureCatalog) Draft(p CatalogProcedure) entity.ProcedureDraft {
	return entity.ProcedureDraft{Description: p.Name, Cost: p.DefaultCost}
}
