package dataset

import (
	"maps"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/acs-demographics/internal/acs"
)

// VariableNameMapping maps raw API field codes to display column names.
type VariableNameMapping map[string]string

// DefaultNameMapping returns the renames applied to every collection.
func DefaultNameMapping() VariableNameMapping {
	return VariableNameMapping{
		acs.ColumnZCTA: "ZIP Code",
		acs.ColumnName: "Area Name",
	}
}

// Merge returns a new mapping with other's entries layered over m's.
func (m VariableNameMapping) Merge(other VariableNameMapping) VariableNameMapping {
	out := make(VariableNameMapping, len(m)+len(other))
	maps.Copy(out, m)
	maps.Copy(out, other)
	return out
}

// VariableSelection is the set of variable codes a query requests, either as a plain list
// or with display labels. Codes keep the order they were given in.
type VariableSelection struct {
	codes  []string
	labels VariableNameMapping
}

// VariablesFromList selects codes without renaming them.
func VariablesFromList(codes ...string) VariableSelection {
	return VariableSelection{codes: dedupe(codes)}
}

// VariablesFromMap selects the map's keys, sorted, and renames each to its value.
func VariablesFromMap(m map[string]string) VariableSelection {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	labels := make(VariableNameMapping, len(m))
	maps.Copy(labels, m)
	return VariableSelection{codes: keys, labels: labels}
}

// Add appends a code with an optional label and returns the extended selection.
func (s VariableSelection) Add(code, label string) VariableSelection {
	out := VariableSelection{codes: slices.Clone(s.codes)}
	if s.labels != nil || label != "" {
		out.labels = make(VariableNameMapping, len(s.labels)+1)
		maps.Copy(out.labels, s.labels)
	}
	if !slices.Contains(out.codes, code) {
		out.codes = append(out.codes, code)
	}
	if label != "" {
		out.labels[code] = label
	}
	return out
}

// Codes returns the selected variable codes in request order.
func (s VariableSelection) Codes() []string {
	return slices.Clone(s.codes)
}

// IsMapping reports whether the selection carries display labels.
func (s VariableSelection) IsMapping() bool {
	return s.labels != nil
}

// Mapping returns the code to label renames (empty for list selections).
func (s VariableSelection) Mapping() VariableNameMapping {
	out := make(VariableNameMapping, len(s.labels))
	maps.Copy(out, s.labels)
	return out
}

// Len returns the number of selected codes.
func (s VariableSelection) Len() int { return len(s.codes) }

// ParseVariableArgs parses command-line selections of the form "CODE" or "CODE=Label".
func ParseVariableArgs(args []string) (VariableSelection, error) {
	var sel VariableSelection
	for _, arg := range args {
		code, label, _ := strings.Cut(arg, "=")
		code = strings.TrimSpace(code)
		if code == "" {
			return VariableSelection{}, eris.Wrapf(ErrInvalidConfig, "dataset: empty variable code in %q", arg)
		}
		sel = sel.Add(code, strings.TrimSpace(label))
	}
	return sel, nil
}

// ParseVariablesYAML reads a selection from YAML: either a sequence of codes or a mapping
// of code to label. Mapping order is preserved.
func ParseVariablesYAML(data []byte) (VariableSelection, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return VariableSelection{}, eris.Wrap(err, "dataset: parse variables yaml")
	}
	if len(doc.Content) == 0 {
		return VariableSelection{}, eris.Wrap(ErrInvalidConfig, "dataset: variables yaml is empty")
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var codes []string
		if err := root.Decode(&codes); err != nil {
			return VariableSelection{}, eris.Wrap(err, "dataset: decode variable list")
		}
		return VariablesFromList(codes...), nil
	case yaml.MappingNode:
		sel := VariableSelection{labels: VariableNameMapping{}}
		for i := 0; i+1 < len(root.Content); i += 2 {
			sel = sel.Add(root.Content[i].Value, root.Content[i+1].Value)
		}
		return sel, nil
	default:
		return VariableSelection{}, eris.Wrap(ErrInvalidConfig, "dataset: variables yaml must be a list or a mapping")
	}
}

func dedupe(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
