package frecord

import (
	"flatrec/flat/fvalue"

	"github.com/iancoleman/orderedmap"
)

// ToOrderedMap exports the non-skipped fields in position order. Dates are rendered
// with the schema's output pattern and Null becomes nil.
func (r *Record) ToOrderedMap() *orderedmap.OrderedMap {
	om := orderedmap.New()
	om.SetEscapeHTML(false)
	for _, name := range r.schema.Names(false) {
		value, _ := r.Get(name)
		switch {
		case value.IsNull():
			om.Set(name, nil)
		case value.Type == fvalue.TypeDate:
			om.Set(name, fvalue.Render(value.Type, value, r.schema.DateOutput()))
		default:
			om.Set(name, value.Native())
		}
	}
	return om
}

func (r *Record) MarshalJSON() ([]byte, error) {
	return r.ToOrderedMap().MarshalJSON()
}
