// Package presentation infiere la forma farmacéutica y el tamaño de empaque a partir
// del nombre comercial del producto. Es heurístico: solo alimenta reportes y formularios.
package presentation

import "github.com/jhoicas/kardex-farmacia/internal/domain/entity"

// Classifier aplica una tabla de reglas ordenada.
type Classifier struct {
	rules []Rule
}

// NewClassifier crea un clasificador; con rules vacío usa DefaultRules.
func NewClassifier(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify devuelve el perfil para name. No asigna ProductID ni ClassifiedAt.
func (c *Classifier) Classify(name string) entity.PresentationProfile {
	n := Normalize(name)
	rule := fallback
	for _, r := range c.rules {
		if r.Match != nil && r.Match(n) {
			rule = r
			break
		}
	}
	return entity.PresentationProfile{
		Kind:            rule.Kind,
		UnitsPerPackage: rule.Units(n),
		UnitOfMeasure:   rule.Unit,
		Rule:            rule.Name,
	}
}

var defaultClassifier = NewClassifier(nil)

// Classify usa la tabla por defecto.
func Classify(name string) entity.PresentationProfile {
	return defaultClassifier.Classify(name)
}
