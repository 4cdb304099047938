package model

// LayerCategory prefixes standard sub-layers of a drawing layer.
type LayerCategory string

const (
	CategoryLinework LayerCategory = "Linework"
	CategoryColor    LayerCategory = "Color"
	CategoryLegend   LayerCategory = "Legend"
)

// LayerSeparator joins parent and child layer names in a full layer path.
const LayerSeparator = "::"

// NoPrint is the print width of layers that never print.
const NoPrint = -1.0

// PointToMM is the number of millimetres in a typographic point.
const PointToMM = 0.352778

// PtToMM converts typographic points to millimetres.
func PtToMM(pt float64) float64 {
	return pt * PointToMM
}

// LayerSpec describes one standard layer. A nil PrintColor means the layer
// does not print; a nil PrintWidth on a printing layer means default width.
type LayerSpec struct {
	Name         string   `json:"name"`
	DisplayColor RGB      `json:"display_color"`
	PrintColor   *RGB     `json:"print_color,omitempty"`
	PrintWidth   *float64 `json:"print_width,omitempty"` // points
}

// PrintWidthMM returns the host print width in mm: NoPrint for non-printing
// layers, 0 for default width.
func (s LayerSpec) PrintWidthMM() float64 {
	if s.PrintColor == nil {
		return NoPrint
	}
	if s.PrintWidth == nil {
		return 0
	}
	return PtToMM(*s.PrintWidth)
}

// FullName returns the path of the standard layer below drawing.
func (s LayerSpec) FullName(drawing string, category LayerCategory) string {
	return drawing + LayerSeparator + string(category) + "_" + s.Name
}

// LayerRule moves every object on a top-level layer whose name contains one
// of Keywords to the Linework layer named Target.
type LayerRule struct {
	Target   string   `json:"target"`
	Keywords []string `json:"keywords"`
}

// LayerStandards groups the ordered standard layer tables.
type LayerStandards struct {
	Linework      []LayerSpec `json:"linework"`
	Colors        []LayerSpec `json:"colors"`
	Legend        []LayerSpec `json:"legend"`
	HatchSequence []string    `json:"hatch_sequence"`
}

// Table returns the layer table for a category.
func (s LayerStandards) Table(category LayerCategory) []LayerSpec {
	switch category {
	case CategoryColor:
		return s.Colors
	case CategoryLegend:
		return s.Legend
	default:
		return s.Linework
	}
}

// Find looks up a layer spec by name in a category.
func (s LayerStandards) Find(category LayerCategory, name string) (LayerSpec, bool) {
	for _, spec := range s.Table(category) {
		if spec.Name == name {
			return spec, true
		}
	}
	return LayerSpec{}, false
}

func rgb(r, g, b uint8) RGB { return RGB{R: r, G: g, B: b} }

func printing(display, pc RGB, width float64) LayerSpec {
	p := pc
	w := width
	return LayerSpec{DisplayColor: display, PrintColor: &p, PrintWidth: &w}
}

func printingDefault(display, pc RGB) LayerSpec {
	p := pc
	return LayerSpec{DisplayColor: display, PrintColor: &p}
}

func named(name string, s LayerSpec) LayerSpec {
	s.Name = name
	return s
}

func sameColor(name string, c RGB) LayerSpec {
	return named(name, printingDefault(c, c))
}

// Standard linework layer names referenced by the cleanup operations.
const (
	LineworkLabel           = "Label"
	LineworkDashed          = "1_Dashed"
	LineworkFurnitureHidden = "Furniture_Hidden"
	LineworkFurniture       = "Furniture"
)

// Standard legend layer names.
const (
	LegendNorthArrowBold  = "NorthArrow_Bold"
	LegendNorthArrowLight = "NorthArrow_Light"
	LegendScaleLines      = "ScaleLines"
	LegendScaleNumbers    = "ScaleNumbers"
	LegendHatches         = "LegendHatches"
	LegendTexts           = "LegendTexts"
	LegendFrames          = "LegendFrames"
	LegendPrintFrame      = "PrintFrame"
)

// DefaultLayerStandards returns the marketing drawing layer standards.
func DefaultLayerStandards() LayerStandards {
	black := rgb(0, 0, 0)
	return LayerStandards{
		Linework: []LayerSpec{
			named("4", printing(rgb(255, 127, 0), black, 0.35)),
			named("3", printing(black, black, 0.17)),
			named("2", printing(rgb(0, 0, 191), black, 0.125)),
			named("1", printing(rgb(255, 0, 0), black, 0.085)),
			{Name: LineworkDashed, DisplayColor: rgb(255, 191, 191)},
			named(LineworkFurniture, printing(rgb(127, 255, 191), black, 0.085)),
			{Name: LineworkFurnitureHidden, DisplayColor: rgb(0, 127, 0)},
			named(LineworkLabel, printing(black, black, 0.085)),
			named("Shadow", printing(rgb(105, 105, 105), black, 0.085)),
			named("Entourage", printing(rgb(127, 255, 191), black, 0.085)),
			named("Vegetation", printing(rgb(191, 191, 255), black, 0.085)),
		},
		Colors: []LayerSpec{
			sameColor("Office", rgb(125, 189, 206)),
			sameColor("Office Support", rgb(178, 214, 222)),
			sameColor("Lab", rgb(249, 161, 52)),
			sameColor("Lab Support", rgb(247, 204, 120)),
			sameColor("Vivarium", rgb(176, 136, 93)),
			sameColor("Vivarium Support", rgb(190, 168, 140)),
			sameColor("Clinical", rgb(136, 141, 182)),
			sameColor("Clinical Support", rgb(188, 192, 218)),
			sameColor("Classroom / Seminar Room", rgb(162, 107, 154)),
			sameColor("Conference", rgb(201, 125, 166)),
			sameColor("Interactive/BreakRoom", rgb(223, 175, 191)),
			named("Cafe", printingDefault(rgb(251, 212, 213), rgb(213, 213, 213))),
			sameColor("Retail", rgb(193, 115, 114)),
			sameColor("Green Roof", rgb(220, 233, 174)),
			sameColor("Parking", rgb(167, 169, 172)),
			sameColor("Building Support", rgb(216, 217, 215)),
			sameColor("Circulation Indoor", rgb(253, 245, 210)),
			sameColor("Circulation Outdoor", rgb(232, 230, 212)),
		},
		Legend: []LayerSpec{
			named(LegendNorthArrowBold, printing(black, black, 0.5)),
			named(LegendNorthArrowLight, printing(black, black, 0.085)),
			named(LegendScaleLines, printing(black, black, 0.125)),
			named(LegendScaleNumbers, printingDefault(black, black)),
			named(LegendHatches, printingDefault(rgb(255, 255, 255), black)),
			named(LegendTexts, printingDefault(black, black)),
			named(LegendFrames, printing(black, black, 0.125)),
			named(LegendPrintFrame, printing(black, black, 0.01)),
		},
		HatchSequence: []string{
			"Office", "Office Support", "Lab",
			"Lab Support", "Vivarium", "Vivarium Support",
			"Clinical", "Clinical Support", "Classroom / Seminar Room",
			"Conference", "Interactive/BreakRoom",
			"Cafe", "Retail", "Green Roof", "Parking",
			"Building Support", "Circulation Indoor", "Circulation Outdoor",
		},
	}
}

// DefaultLayerRules maps exported layer name keywords to linework layers.
func DefaultLayerRules() []LayerRule {
	return []LayerRule{
		{Target: "Furniture", Keywords: []string{"furn", "pfix", "case", "equi", "SPCQ"}},
		{Target: "2", Keywords: []string{"door", "0", "glaz", "strs", "wind"}},
		{Target: "3", Keywords: []string{"wall-i", "cols"}},
		{Target: "4", Keywords: []string{"wall-e"}},
		{Target: "1", Keywords: []string{"wind", "arch"}},
	}
}

// DefaultBlockKeywords lists block name fragments of fixtures and equipment
// that are usually filtered out of marketing drawings.
func DefaultBlockKeywords() []string {
	return []string{
		"Valve", "Card reader", "Eyewash", "drain", "Pressure Regulator",
		"Pure Water Fixture", "Faucet", "Fire Extinguisher",
		"GRAB-BAR-TOILET", "Welded_Grating", "Double Glazed",
		"White_Board", "Corner Guard", "Mobile Cabinet", "Base_Drwr", "Control Panel",
		"3 tier shelf", "Cylinder Restraint", "Shelf_Stainless", "Base_Drawer", "Wall Shelving",
		"Metal Panel Assembly", "Knee Space", "Guard", "SINK-COUNTER-SOLID-SURFACE", "VAULT DOOR COLUMN",
		"Unistrout", "Unistrut", "Fixed Base", "Benchtop Support Bracket", "Fixed_Cabinet", "Grommet",
		"Wall Hung", "2in Frame Base", "CABLE TRAY", "Exhaust", "DISPENSER", "Disposal", "Grab Bar",
		"CLOTHES HOOK", "P-FIX POWERS", "Waste-Receptacle", "Basic Wall _ interior",
		"Top Rail", "Taggable Marker", "floor box", "mirror", "HOT PLATE", "Water Polisher", "LARGENT",
		"drying rack", "Emergency Shower", "varsityrack", "Overflow Spout", "monitor", "HSS", "Hollow",
		"FDC Connection", "BOLLARD", "knox box", "sill", "Vacuum", "Pressurization", "Ice Maker",
		"AED Cabinet", "Gas Cylinder Rack",
	}
}
