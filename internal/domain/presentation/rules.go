package presentation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
)

// CountStrategy define cómo se obtiene la cantidad por empaque a partir del nombre.
type CountStrategy int

const (
	// CountFirstInteger toma el primer entero aislado si cae en 1..MaxUnits.
	CountFirstInteger CountStrategy = iota
	// CountFirstWithinRange recorre todos los enteros y toma el primero en 1..MaxUnits.
	// Evita confundir la dosis ("500mg") con el tamaño del empaque.
	CountFirstWithinRange
	// CountFixed siempre devuelve DefaultUnits.
	CountFixed
)

// Rule una fila de la tabla de clasificación. Match recibe el nombre ya normalizado.
type Rule struct {
	Name         string
	Match        func(normalized string) bool
	Kind         entity.PresentationKind
	Unit         string
	DefaultUnits int
	MaxUnits     int
	Count        CountStrategy
}

// integerToken entero precedido por un límite de palabra: "120ml" → 120, "b12" no cuenta.
var integerToken = regexp.MustCompile(`\b\d+`)

func integers(normalized string) []int {
	var out []int
	for _, tok := range integerToken.FindAllString(normalized, -1) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue // desborda int
		}
		out = append(out, n)
	}
	return out
}

// Units aplica la estrategia de conteo de la regla.
func (r Rule) Units(normalized string) int {
	switch r.Count {
	case CountFixed:
		return r.DefaultUnits
	case CountFirstWithinRange:
		for _, n := range integers(normalized) {
			if n >= 1 && n <= r.MaxUnits {
				return n
			}
		}
	default:
		if ns := integers(normalized); len(ns) > 0 && ns[0] >= 1 && ns[0] <= r.MaxUnits {
			return ns[0]
		}
	}
	return r.DefaultUnits
}

// keywords coincide si alguna palabra del nombre empieza por uno de los prefijos.
func keywords(prefixes ...string) func(string) bool {
	quoted := make([]string, len(prefixes))
	for i, p := range prefixes {
		quoted[i] = regexp.QuoteMeta(p)
	}
	re := regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)`)
	return re.MatchString
}

var percent = regexp.MustCompile(`\d\s*%`)

func liquid(n string) bool {
	return strings.Contains(n, "alcohol") || percent.MatchString(n)
}

// mgDose nombres con dosis en mg que no son líquidos (ml) ni presentaciones por kilo.
func mgDose(n string) bool {
	return strings.Contains(n, "mg") && !strings.Contains(n, "ml") && !strings.Contains(n, "kg")
}

// DefaultRules tabla en orden de prioridad; gana la primera que coincide.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "blister", Match: keywords("blister"), Kind: entity.PresentationBlister,
			Unit: entity.UnitTablets, DefaultUnits: 20, MaxUnits: 100},
		{Name: "capsula", Match: keywords("capsul", "caps"), Kind: entity.PresentationCapsule,
			Unit: entity.UnitCapsules, DefaultUnits: 20, MaxUnits: 100},
		{Name: "jarabe", Match: keywords("jarabe", "suspension"), Kind: entity.PresentationSyrup,
			Unit: entity.UnitML, DefaultUnits: 100, MaxUnits: 500},
		{Name: "inyeccion", Match: keywords("inyec", "ampolla", "ampolleta", "vial"), Kind: entity.PresentationInjection,
			Unit: entity.UnitUnits, DefaultUnits: 1, Count: CountFixed},
		{Name: "gotas", Match: keywords("gotas"), Kind: entity.PresentationDrops,
			Unit: entity.UnitML, DefaultUnits: 15, MaxUnits: 50},
		{Name: "crema", Match: keywords("crema"), Kind: entity.PresentationCream,
			Unit: entity.UnitGrams, DefaultUnits: 30, MaxUnits: 200},
		{Name: "unguento", Match: keywords("unguento", "pomada"), Kind: entity.PresentationOintment,
			Unit: entity.UnitGrams, DefaultUnits: 30, MaxUnits: 200},
		{Name: "polvo", Match: keywords("polvo"), Kind: entity.PresentationPowder,
			Unit: entity.UnitGrams, DefaultUnits: 10, MaxUnits: 200},
		{Name: "liquido", Match: liquid, Kind: entity.PresentationLiquid,
			Unit: entity.UnitML, DefaultUnits: 100, MaxUnits: 500},
		{Name: "dosis-mg", Match: mgDose, Kind: entity.PresentationTablet,
			Unit: entity.UnitTablets, DefaultUnits: 20, MaxUnits: 100, Count: CountFirstWithinRange},
		{Name: "tableta", Match: keywords("tableta", "tab", "comprimido", "gragea"), Kind: entity.PresentationTablet,
			Unit: entity.UnitTablets, DefaultUnits: 20, MaxUnits: 100},
	}
}

// fallback cuando ninguna regla coincide.
var fallback = Rule{
	Name:         "default",
	Kind:         entity.PresentationTablet,
	Unit:         entity.UnitTablets,
	DefaultUnits: 20,
	Count:        CountFixed,
}
