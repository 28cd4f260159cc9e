package dto

import (
	"time"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
)

// PresentationResponse perfil de presentación.
type PresentationResponse struct {
	ProductID       string     `json:"product_id,omitempty"`
	Name            string     `json:"name,omitempty"`
	Kind            string     `json:"kind"`
	UnitsPerPackage int        `json:"units_per_package"`
	UnitOfMeasure   string     `json:"unit_of_measure"`
	Rule            string     `json:"rule"`
	ClassifiedAt    *time.Time `json:"classified_at,omitempty"`
}

// NewPresentationResponse convierte la entidad a respuesta.
func NewPresentationResponse(p entity.PresentationProfile) PresentationResponse {
	r := PresentationResponse{
		ProductID:       p.ProductID,
		Kind:            string(p.Kind),
		UnitsPerPackage: p.UnitsPerPackage,
		UnitOfMeasure:   p.UnitOfMeasure,
		Rule:            p.Rule,
	}
	if !p.ClassifiedAt.IsZero() {
		at := p.ClassifiedAt
		r.ClassifiedAt = &at
	}
	return r
}

// ClassificationSummaryResponse resultado de una reclasificación del catálogo.
type ClassificationSummaryResponse struct {
	Scanned    int            `json:"scanned"`
	Classified int            `json:"classified"`
	Skipped    int            `json:"skipped"`
	DryRun     bool           `json:"dry_run,omitempty"`
	ByKind     map[string]int `json:"by_kind"`
}
