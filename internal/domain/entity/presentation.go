package entity

import "time"

// PresentationKind forma farmacéutica del producto.
type PresentationKind string

const (
	PresentationBlister   PresentationKind = "Blister"
	PresentationCapsule   PresentationKind = "Capsule"
	PresentationSyrup     PresentationKind = "Syrup"
	PresentationInjection PresentationKind = "Injection"
	PresentationDrops     PresentationKind = "Drops"
	PresentationCream     PresentationKind = "Cream"
	PresentationOintment  PresentationKind = "Ointment"
	PresentationPowder    PresentationKind = "Powder"
	PresentationLiquid    PresentationKind = "Liquid"
	PresentationTablet    PresentationKind = "Tablet"
)

// Unidades de medida tal como las guarda el catálogo.
const (
	UnitTablets  = "tabletas"
	UnitCapsules = "capsulas"
	UnitML       = "ml"
	UnitGrams    = "g"
	UnitUnits    = "unidades"
)

// PresentationProfile clasificación de presentación de un producto.
// Solo la usan reportes y formularios; no interviene en los saldos.
type PresentationProfile struct {
	ProductID       string
	Kind            PresentationKind
	UnitsPerPackage int
	UnitOfMeasure   string
	Rule            string // regla que produjo la clasificación
	ClassifiedAt    time.Time
}
