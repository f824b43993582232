package record

import "sort"

// Parameter is one name/value entry in a parameter collection.
type Parameter struct {
	Name  string
	Value string
}

// Parameters is an ordered collection of free-form name/value metadata
// entries. Document order is preserved and duplicate names are allowed; a nil
// or empty collection means the field is unset.
type Parameters []Parameter

// Get returns the value of the first entry with the given name.
func (p Parameters) Get(name string) (string, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

// ParametersFromMap builds a collection from a plain map, ordered by name so
// the result is deterministic.
func ParametersFromMap(values map[string]string) Parameters {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make(Parameters, 0, len(values))
	for _, name := range names {
		params = append(params, Parameter{Name: name, Value: values[name]})
	}
	return params
}
