package config

import (
	"reflect"
	"strconv"
)

// Display field names accepted by Override.
const (
	DisplayQuestion = "question"
	DisplayOption   = "option"
	DisplayEnrich   = "enrich"
	DisplayLabels   = "labels"
)

var displayFields = map[string]string{
	DisplayQuestion: "QuestionHeight",
	DisplayOption:   "OptionHeight",
	DisplayEnrich:   "EnrichHeight",
	DisplayLabels:   "LabelsHeight",
}

// Bounds describes the allowed range of one display height.
type Bounds struct {
	Min, Max, Step int
}

// Snap clamps v into the range and rounds it to the nearest step.
func (b Bounds) Snap(v int) int {
	if v <= b.Min {
		return b.Min
	}
	if v >= b.Max {
		return b.Max
	}
	if b.Step <= 0 {
		return v
	}
	steps := (v - b.Min + b.Step/2) / b.Step
	v = b.Min + steps*b.Step
	if v > b.Max {
		v = b.Max
	}
	return v
}

// DisplayBounds returns the range of each height keyed by its display name.
func DisplayBounds() map[string]Bounds {
	t := reflect.TypeOf(DisplayConfig{})
	out := make(map[string]Bounds, len(displayFields))
	for name, field := range displayFields {
		f, _ := t.FieldByName(field)
		out[name] = Bounds{
			Min:  atoiTag(f, "min"),
			Max:  atoiTag(f, "max"),
			Step: atoiTag(f, "step"),
		}
	}
	return out
}

func atoiTag(f reflect.StructField, name string) int {
	n, _ := strconv.Atoi(f.Tag.Get(name))
	return n
}

// Override returns a copy of d with the given heights applied.
// Unknown names are ignored; values are snapped into range.
func (d DisplayConfig) Override(values map[string]int) DisplayConfig {
	bounds := DisplayBounds()
	v := reflect.ValueOf(&d).Elem()
	for name, height := range values {
		field, ok := displayFields[name]
		if !ok {
			continue
		}
		v.FieldByName(field).SetInt(int64(bounds[name].Snap(height)))
	}
	return d
}

// Height returns the height for a display name, or 0 if unknown.
func (d DisplayConfig) Height(name string) int {
	field, ok := displayFields[name]
	if !ok {
		return 0
	}
	return int(reflect.ValueOf(d).FieldByName(field).Int())
}
