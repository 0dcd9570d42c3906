// Package listing implementa el patrón lista/filtro/búsqueda que comparten los listados
// de movimientos, transferencias y acciones: se obtiene el conjunto completo una vez y
// los filtros y la búsqueda derivan un subconjunto en memoria.
package listing

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Accessors describe cómo leer de T los campos que usan filtros, búsqueda y orden.
type Accessors[T any] struct {
	Timestamp    func(T) time.Time
	Category     func(T) string
	SearchFields func(T) []string
}

// Filters filtros activos. Un campo vacío no filtra.
type Filters struct {
	From     *time.Time // inclusivo desde el inicio del día
	To       *time.Time // inclusivo hasta el final del día
	Category string     // igualdad exacta
}

// IsZero indica que no hay ningún filtro activo.
func (f Filters) IsZero() bool {
	return f.From == nil && f.To == nil && f.Category == ""
}

// List mantiene el conjunto sin filtrar, los filtros activos y el conjunto derivado.
type List[T any] struct {
	acc      Accessors[T]
	all      []T
	filtered []T
	active   Filters
}

// New construye la lista ordenada por fecha descendente (si hay Timestamp).
func New[T any](items []T, acc Accessors[T]) *List[T] {
	all := make([]T, len(items))
	copy(all, items)
	if acc.Timestamp != nil {
		sort.SliceStable(all, func(i, j int) bool {
			return acc.Timestamp(all[i]).After(acc.Timestamp(all[j]))
		})
	}
	return &List[T]{acc: acc, all: all, filtered: all}
}

// Items devuelve el conjunto derivado actual.
func (l *List[T]) Items() []T { return l.filtered }

// All devuelve el conjunto sin filtrar.
func (l *List[T]) All() []T { return l.all }

// Active devuelve los filtros activos.
func (l *List[T]) Active() Filters { return l.active }

// ApplyFilters fija los filtros activos y deriva el conjunto desde el sin filtrar.
func (l *List[T]) ApplyFilters(f Filters) []T {
	l.active = f
	l.filtered = l.filter(f)
	return l.filtered
}

// ResetFilters limpia los filtros y restaura el conjunto completo.
func (l *List[T]) ResetFilters() []T {
	l.active = Filters{}
	l.filtered = l.all
	return l.filtered
}

// Search filtra por subcadena (sin distinguir mayúsculas, reglas turcas) sobre el conjunto
// sin filtrar; no se acumula con los filtros activos. Con texto vacío vuelve a aplicar
// los filtros activos.
func (l *List[T]) Search(text string) []T {
	needle := lower(strings.TrimSpace(text))
	if needle == "" {
		l.filtered = l.filter(l.active)
		return l.filtered
	}
	out := make([]T, 0, len(l.all))
	for _, item := range l.all {
		if l.matches(item, needle) {
			out = append(out, item)
		}
	}
	l.filtered = out
	return l.filtered
}

func (l *List[T]) matches(item T, needle string) bool {
	if l.acc.SearchFields == nil {
		return false
	}
	for _, field := range l.acc.SearchFields(item) {
		if strings.Contains(lower(field), needle) {
			return true
		}
	}
	return false
}

func (l *List[T]) filter(f Filters) []T {
	if f.IsZero() {
		return l.all
	}
	var from, to time.Time
	if f.From != nil {
		from = StartOfDay(*f.From)
	}
	if f.To != nil {
		to = EndOfDay(*f.To)
	}
	out := make([]T, 0, len(l.all))
	for _, item := range l.all {
		if l.acc.Timestamp != nil {
			ts := l.acc.Timestamp(item)
			if f.From != nil && ts.Before(from) {
				continue
			}
			if f.To != nil && ts.After(to) {
				continue
			}
		}
		if f.Category != "" && (l.acc.Category == nil || l.acc.Category(item) != f.Category) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// StartOfDay 00:00:00 del día de t en su zona.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay último instante representable del día de t en su zona.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func lower(s string) string {
	return cases.Lower(language.Turkish).String(s)
}
