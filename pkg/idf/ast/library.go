package ast

// Properties maps an electrical property name (CAPACITANCE, RESISTANCE,
// TOLERANCE, POWER_OPR, POWER_MAX, THERM_COND, THETA_JB, THETA_JC or a
// user-defined name) to its value.
type Properties map[string]float32

// ElectricalComponent is a footprint definition from an ELECTRICAL section.
type ElectricalComponent struct {
	GeometryName string     `json:"geometry_name" yaml:"geometry_name"`
	PartNumber   string     `json:"part_number" yaml:"part_number"`
	Units        Units      `json:"units" yaml:"units"`
	Height       float32    `json:"height" yaml:"height"`
	Outline      []Point    `json:"outline" yaml:"outline"`
	Properties   Properties `json:"properties" yaml:"properties"`
}

// MechanicalComponent is a footprint definition from a MECHANICAL section.
type MechanicalComponent struct {
	GeometryName string  `json:"geometry_name" yaml:"geometry_name"`
	PartNumber   string  `json:"part_number" yaml:"part_number"`
	Units        Units   `json:"units" yaml:"units"`
	Height       float32 `json:"height" yaml:"height"`
	Outline      []Point `json:"outline" yaml:"outline"`
}

// Component is the sum of ElectricalComponent and MechanicalComponent as
// they appear in document order. Exactly one field is set.
type Component struct {
	Electrical *ElectricalComponent
	Mechanical *MechanicalComponent
}

// GeometryName returns the geometry name of whichever variant is set.
func (c Component) GeometryName() string {
	switch {
	case c.Electrical != nil:
		return c.Electrical.GeometryName
	case c.Mechanical != nil:
		return c.Mechanical.GeometryName
	default:
		return ""
	}
}

// Library is a parsed component library document.
type Library struct {
	Header               LibraryHeader         `json:"header" yaml:"header"`
	ElectricalComponents []ElectricalComponent `json:"electrical_components" yaml:"electrical_components"`
	MechanicalComponents []MechanicalComponent `json:"mechanical_components" yaml:"mechanical_components"`

	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`
}

// NewLibrary partitions components, given in document order, into their
// electrical and mechanical lists.
func NewLibrary(header LibraryHeader, components []Component) *Library {
	lib := &Library{
		Header:               header,
		ElectricalComponents: make([]ElectricalComponent, 0),
		MechanicalComponents: make([]MechanicalComponent, 0),
	}
	for _, c := range components {
		switch {
		case c.Electrical != nil:
			lib.ElectricalComponents = append(lib.ElectricalComponents, *c.Electrical)
		case c.Mechanical != nil:
			lib.MechanicalComponents = append(lib.MechanicalComponents, *c.Mechanical)
		}
	}
	return lib
}

// GeometryNames returns the set of geometry names defined by the library.
func (l *Library) GeometryNames() map[string]struct{} {
	names := make(map[string]struct{}, len(l.ElectricalComponents)+len(l.MechanicalComponents))
	for _, c := range l.ElectricalComponents {
		names[c.GeometryName] = struct{}{}
	}
	for _, c := range l.MechanicalComponents {
		names[c.GeometryName] = struct{}{}
	}
	return names
}

// HasGeometry returns true if the library defines the named geometry.
func (l *Library) HasGeometry(name string) bool {
	for _, c := range l.ElectricalComponents {
		if c.GeometryName == name {
			return true
		}
	}
	for _, c := range l.MechanicalComponents {
		if c.GeometryName == name {
			return true
		}
	}
	return false
}

// Summary returns per-section record counts.
func (l *Library) Summary() Summary {
	return Summary{
		string(SectionElectrical): len(l.ElectricalComponents),
		string(SectionMechanical): len(l.MechanicalComponents),
	}
}
