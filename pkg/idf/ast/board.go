package ast

// PlatingStyle is the plating of a drilled hole.
type PlatingStyle string

const (
	PlatingPTH  PlatingStyle = "PTH"  // Plated through hole
	PlatingNPTH PlatingStyle = "NPTH" // Non-plated through hole
)

// HoleType is the function of a drilled hole.
type HoleType string

const (
	HolePin  HoleType = "PIN"
	HoleVia  HoleType = "VIA"
	HoleMTG  HoleType = "MTG"  // Mounting hole
	HoleTool HoleType = "TOOL" // Tooling hole
)

// Hole is a single drilled hole record.
type Hole struct {
	Diameter       float32      `json:"diameter" yaml:"diameter"`
	X              float32      `json:"x" yaml:"x"`
	Y              float32      `json:"y" yaml:"y"`
	PlatingStyle   PlatingStyle `json:"plating_style" yaml:"plating_style"`
	AssociatedPart string       `json:"associated_part" yaml:"associated_part"` // BOARD, NOREFDES, PANEL or a reference designator
	HoleType       HoleType     `json:"hole_type" yaml:"hole_type"`
	Owner          Owner        `json:"owner" yaml:"owner"`
}

// Note is a text annotation placed on the board.
type Note struct {
	X                        float32 `json:"x" yaml:"x"`
	Y                        float32 `json:"y" yaml:"y"`
	TextHeight               float32 `json:"text_height" yaml:"text_height"`
	TestStringPhysicalLength float32 `json:"test_string_physical_length" yaml:"test_string_physical_length"`
	Text                     string  `json:"text" yaml:"text"`
}

// PlacementStatus is the placement state of a component instance.
type PlacementStatus string

const (
	StatusPlaced   PlacementStatus = "PLACED"
	StatusUnplaced PlacementStatus = "UNPLACED"
	StatusECAD     PlacementStatus = "ECAD"
	StatusMCAD     PlacementStatus = "MCAD"
)

// Reference designators with special meaning.
const (
	RefDesBoard    = "BOARD"    // Sub-board instance in a panel
	RefDesNoRefDes = "NOREFDES" // Unreferenced instance
)

// ComponentPlacement places one instance of a library geometry (or, in a
// panel, one board) on the board.
type ComponentPlacement struct {
	PackageName         string          `json:"package_name" yaml:"package_name"`
	PartNumber          string          `json:"part_number" yaml:"part_number"`
	ReferenceDesignator string          `json:"reference_designator" yaml:"reference_designator"`
	X                   float32         `json:"x" yaml:"x"`
	Y                   float32         `json:"y" yaml:"y"`
	MountingOffset      float32         `json:"mounting_offset" yaml:"mounting_offset"`
	RotationAngle       float32         `json:"rotation_angle" yaml:"rotation_angle"`
	BoardSide           BoardSide       `json:"board_side" yaml:"board_side"`
	PlacementStatus     PlacementStatus `json:"placement_status" yaml:"placement_status"`
}

// IsBoardReference returns true if the placement references a sub-board.
func (c ComponentPlacement) IsBoardReference() bool {
	return c.ReferenceDesignator == RefDesBoard
}

// BoardPanel is a parsed board or panel document.
type BoardPanel struct {
	Header              BoardPanelHeader     `json:"header" yaml:"header"`
	Outline             BoardPanelOutline    `json:"outline" yaml:"outline"`
	OtherOutlines       []OtherOutline       `json:"other_outlines" yaml:"other_outlines"`
	RoutingOutlines     []RoutingOutline     `json:"routing_outlines" yaml:"routing_outlines"`
	PlacementOutlines   []PlacementOutline   `json:"placement_outlines" yaml:"placement_outlines"`
	RoutingKeepouts     []RoutingKeepout     `json:"routing_keepouts" yaml:"routing_keepouts"`
	ViaKeepouts         []ViaKeepout         `json:"via_keepouts" yaml:"via_keepouts"`
	PlacementKeepouts   []PlacementKeepout   `json:"placement_keepouts" yaml:"placement_keepouts"`
	PlacementGroupAreas []PlacementGroupArea `json:"placement_group_areas" yaml:"placement_group_areas"`
	DrilledHoles        []Hole               `json:"drilled_holes" yaml:"drilled_holes"`
	Notes               []Note               `json:"notes" yaml:"notes"`
	ComponentPlacements []ComponentPlacement `json:"component_placements" yaml:"component_placements"`

	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`
}

// Name returns the board or panel name declared in the header.
func (b *BoardPanel) Name() string {
	return b.Header.BoardName
}

// Outlines returns every outline, keepout and area of the document in
// section order, starting with the primary outline.
func (b *BoardPanel) Outlines() []Outline {
	out := []Outline{b.Outline}
	for _, o := range b.OtherOutlines {
		out = append(out, o)
	}
	for _, o := range b.RoutingOutlines {
		out = append(out, o)
	}
	for _, o := range b.PlacementOutlines {
		out = append(out, o)
	}
	for _, o := range b.RoutingKeepouts {
		out = append(out, o)
	}
	for _, o := range b.ViaKeepouts {
		out = append(out, o)
	}
	for _, o := range b.PlacementKeepouts {
		out = append(out, o)
	}
	for _, o := range b.PlacementGroupAreas {
		out = append(out, o)
	}
	return out
}

// BoardReferences returns the package names of all sub-board placements
// in document order, without duplicates.
func (b *BoardPanel) BoardReferences() []string {
	return b.packageNames(true)
}

// PackageReferences returns the package names of all non-board placements
// in document order, without duplicates.
func (b *BoardPanel) PackageReferences() []string {
	return b.packageNames(false)
}

func (b *BoardPanel) packageNames(boards bool) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, p := range b.ComponentPlacements {
		if p.IsBoardReference() != boards {
			continue
		}
		if _, ok := seen[p.PackageName]; ok {
			continue
		}
		seen[p.PackageName] = struct{}{}
		names = append(names, p.PackageName)
	}
	return names
}

// Summary returns per-section record counts.
func (b *BoardPanel) Summary() Summary {
	return Summary{
		string(b.Outline.Keyword):   1,
		string(SectionOtherOutline): len(b.OtherOutlines),
		string(SectionRouteOutline): len(b.RoutingOutlines),
		string(SectionPlaceOutline): len(b.PlacementOutlines),
		string(SectionRouteKeepout): len(b.RoutingKeepouts),
		string(SectionViaKeepout):   len(b.ViaKeepouts),
		string(SectionPlaceKeepout): len(b.PlacementKeepouts),
		string(SectionPlaceRegion):  len(b.PlacementGroupAreas),
		string(SectionDrilledHoles): len(b.DrilledHoles),
		string(SectionNotes):        len(b.Notes),
		string(SectionPlacement):    len(b.ComponentPlacements),
	}
}

// Summary maps a section keyword to the number of records parsed from it.
type Summary map[string]int
