package polyvoice

type (
	// Description describes the control surface of a voice unit: a tree of
	// groups whose leaves are input controls (sliders, buttons, checkboxes,
	// numeric entries) and monitored outputs (bargraphs). Every leaf has an
	// address, e.g. "/synth/freq", and the numeric parameter index used with
	// VoiceUnit.SetParam and VoiceUnit.Param.
	Description struct {
		Name    string
		Inputs  int // number of audio input channels of a unit
		Outputs int // number of audio output channels of a unit
		UI      []Item
	}

	// Item is a node of the control tree. The set of item types is closed:
	// Group, Slider, Button, Checkbox, NumEntry and BarGraph.
	Item interface {
		flatten(c *Controls)
	}

	GroupKind int

	// Group is a horizontal, vertical or tabbed group of items.
	Group struct {
		Kind  GroupKind
		Label string
		Items []Item
	}

	SliderKind int

	Slider struct {
		Kind    SliderKind
		Label   string
		Address string
		Index   int
		Init    float32
		Min     float32
		Max     float32
		Step    float32
	}

	// Button is 1 while pressed, 0 otherwise.
	Button struct {
		Label   string
		Address string
		Index   int
	}

	Checkbox struct {
		Label   string
		Address string
		Index   int
	}

	NumEntry struct {
		Label   string
		Address string
		Index   int
		Init    float32
		Min     float32
		Max     float32
		Step    float32
	}

	BarGraphKind int

	// BarGraph is a monitored output: the unit writes its value and the
	// engine polls it periodically.
	BarGraph struct {
		Kind    BarGraphKind
		Label   string
		Address string
		Index   int
		Min     float32
		Max     float32
	}

	// Control is a flattened leaf of the control tree.
	Control struct {
		Address string
		Index   int
		Init    float32
	}

	// Controls holds the flattened input and monitored controls, both in
	// depth-first document order.
	Controls struct {
		Inputs    []Control
		Monitored []Control
	}
)

const (
	HGroup GroupKind = iota
	VGroup
	TGroup
)

const (
	HSlider SliderKind = iota
	VSlider
)

const (
	HBarGraph BarGraphKind = iota
	VBarGraph
)

// Flatten walks the control tree once and returns the input and monitored
// controls.
func (d Description) Flatten() Controls {
	var c Controls
	for _, item := range d.UI {
		item.flatten(&c)
	}
	return c
}

func (g Group) flatten(c *Controls) {
	for _, item := range g.Items {
		item.flatten(c)
	}
}

func (s Slider) flatten(c *Controls) {
	c.Inputs = append(c.Inputs, Control{Address: s.Address, Index: s.Index, Init: s.Init})
}

func (b Button) flatten(c *Controls) {
	c.Inputs = append(c.Inputs, Control{Address: b.Address, Index: b.Index})
}

func (b Checkbox) flatten(c *Controls) {
	c.Inputs = append(c.Inputs, Control{Address: b.Address, Index: b.Index})
}

func (n NumEntry) flatten(c *Controls) {
	c.Inputs = append(c.Inputs, Control{Address: n.Address, Index: n.Index, Init: n.Init})
}

func (b BarGraph) flatten(c *Controls) {
	c.Monitored = append(c.Monitored, Control{Address: b.Address, Index: b.Index, Init: b.Min})
}

func (k GroupKind) String() string {
	switch k {
	case HGroup:
		return "hgroup"
	case VGroup:
		return "vgroup"
	case TGroup:
		return "tgroup"
	}
	return "unknown"
}

func (k SliderKind) String() string {
	if k == VSlider {
		return "vslider"
	}
	return "hslider"
}

func (k BarGraphKind) String() string {
	if k == VBarGraph {
		return "vbargraph"
	}
	return "hbargraph"
}

// MaxIndex returns the largest parameter index used by any leaf, or -1 if the
// description has no leaves.
func (c Controls) MaxIndex() int {
	ret := -1
	for _, l := range [][]Control{c.Inputs, c.Monitored} {
		for _, ctrl := range l {
			ret = max(ret, ctrl.Index)
		}
	}
	return ret
}
