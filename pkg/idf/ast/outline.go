package ast

// Section is a top-level IDF section keyword, without the leading dot.
type Section string

const (
	SectionHeader       Section = "HEADER"
	SectionBoardOutline Section = "BOARD_OUTLINE"
	SectionPanelOutline Section = "PANEL_OUTLINE"
	SectionOtherOutline Section = "OTHER_OUTLINE"
	SectionRouteOutline Section = "ROUTE_OUTLINE"
	SectionPlaceOutline Section = "PLACE_OUTLINE"
	SectionRouteKeepout Section = "ROUTE_KEEPOUT"
	SectionViaKeepout   Section = "VIA_KEEPOUT"
	SectionPlaceKeepout Section = "PLACE_KEEPOUT"
	SectionPlaceRegion  Section = "PLACE_REGION"
	SectionDrilledHoles Section = "DRILLED_HOLES"
	SectionNotes        Section = "NOTES"
	SectionPlacement    Section = "PLACEMENT"
	SectionElectrical   Section = "ELECTRICAL"
	SectionMechanical   Section = "MECHANICAL"
)

// Owner is the design discipline that authored an entity.
type Owner string

const (
	OwnerECAD    Owner = "ECAD"
	OwnerMCAD    Owner = "MCAD"
	OwnerUnowned Owner = "UNOWNED"
)

// BoardSide selects the side of the board an entity applies to.
type BoardSide string

const (
	SideTop    BoardSide = "TOP"
	SideBottom BoardSide = "BOTTOM"
	SideBoth   BoardSide = "BOTH"
)

// RoutingLayers selects the copper layers a routing outline or keepout applies to.
type RoutingLayers string

const (
	LayersTop    RoutingLayers = "TOP"
	LayersBottom RoutingLayers = "BOTTOM"
	LayersBoth   RoutingLayers = "BOTH"
	LayersInner  RoutingLayers = "INNER"
	LayersAll    RoutingLayers = "ALL"
)

// Outline is implemented by every outline, keepout and area record.
// All variants are plain data records sharing an ordered point sequence.
type Outline interface {
	// Section returns the keyword the record was parsed from.
	Section() Section
	// OutlineOwner returns the owning discipline.
	OutlineOwner() Owner
	// Points returns the ordered loop points.
	Points() []Point
}

// BoardPanelOutline is the primary outline of a board or panel.
type BoardPanelOutline struct {
	Keyword   Section `json:"keyword" yaml:"keyword"`
	Owner     Owner   `json:"owner" yaml:"owner"`
	Thickness float32 `json:"thickness" yaml:"thickness"`
	Outline   []Point `json:"outline" yaml:"outline"`
}

// OtherOutline is an extruded outline such as a heat sink or stiffener.
type OtherOutline struct {
	Owner            Owner     `json:"owner" yaml:"owner"`
	ID               string    `json:"id" yaml:"id"`
	ExtrudeThickness float32   `json:"extrude_thickness" yaml:"extrude_thickness"`
	BoardSide        BoardSide `json:"board_side" yaml:"board_side"`
	Outline          []Point   `json:"outline" yaml:"outline"`
}

// RoutingOutline bounds the area where routing is allowed.
type RoutingOutline struct {
	Owner         Owner         `json:"owner" yaml:"owner"`
	RoutingLayers RoutingLayers `json:"routing_layers" yaml:"routing_layers"`
	Outline       []Point       `json:"outline" yaml:"outline"`
}

// PlacementOutline bounds the area where components may be placed.
type PlacementOutline struct {
	Owner         Owner     `json:"owner" yaml:"owner"`
	BoardSide     BoardSide `json:"board_side" yaml:"board_side"`
	OutlineHeight float32   `json:"outline_height" yaml:"outline_height"`
	Outline       []Point   `json:"outline" yaml:"outline"`
}

// RoutingKeepout is an area where routing is not allowed.
type RoutingKeepout struct {
	Owner         Owner         `json:"owner" yaml:"owner"`
	RoutingLayers RoutingLayers `json:"routing_layers" yaml:"routing_layers"`
	Outline       []Point       `json:"outline" yaml:"outline"`
}

// ViaKeepout is an area where vias are not allowed.
type ViaKeepout struct {
	Owner   Owner   `json:"owner" yaml:"owner"`
	Outline []Point `json:"outline" yaml:"outline"`
}

// PlacementKeepout is an area where components may not be placed.
type PlacementKeepout struct {
	Owner         Owner     `json:"owner" yaml:"owner"`
	BoardSide     BoardSide `json:"board_side" yaml:"board_side"`
	KeepoutHeight float32   `json:"keepout_height" yaml:"keepout_height"`
	Outline       []Point   `json:"outline" yaml:"outline"`
}

// PlacementGroupArea groups related components into a named region.
type PlacementGroupArea struct {
	Owner     Owner     `json:"owner" yaml:"owner"`
	BoardSide BoardSide `json:"board_side" yaml:"board_side"`
	GroupName string    `json:"group_name" yaml:"group_name"`
	Outline   []Point   `json:"outline" yaml:"outline"`
}

func (o BoardPanelOutline) Section() Section { return o.Keyword }
func (o BoardPanelOutline) OutlineOwner() Owner { return o.Owner }
func (o BoardPanelOutline) Points() []Point { return o.Outline }

func (o OtherOutline) Section() Section { return SectionOtherOutline }
func (o OtherOutline) OutlineOwner() Owner { return o.Owner }
func (o OtherOutline) Points() []Point { return o.Outline }

func (o RoutingOutline) Section() Section { return SectionRouteOutline }
func (o RoutingOutline) OutlineOwner() Owner { return o.Owner }
func (o RoutingOutline) Points() []Point { return o.Outline }

func (o PlacementOutline) Section() Section { return SectionPlaceOutline }
func (o PlacementOutline) OutlineOwner() Owner { return o.Owner }
func (o PlacementOutline) Points() []Point { return o.Outline }

func (o RoutingKeepout) Section() Section { return SectionRouteKeepout }
func (o RoutingKeepout) OutlineOwner() Owner { return o.Owner }
func (o RoutingKeepout) Points() []Point { return o.Outline }

func (o ViaKeepout) Section() Section { return SectionViaKeepout }
func (o ViaKeepout) OutlineOwner() Owner { return o.Owner }
func (o ViaKeepout) Points() []Point { return o.Outline }

func (o PlacementKeepout) Section() Section { return SectionPlaceKeepout }
func (o PlacementKeepout) OutlineOwner() Owner { return o.Owner }
func (o PlacementKeepout) Points() []Point { return o.Outline }

func (o PlacementGroupArea) Section() Section { return SectionPlaceRegion }
func (o PlacementGroupArea) OutlineOwner() Owner { return o.Owner }
func (o PlacementGroupArea) Points() []Point { return o.Outline }
