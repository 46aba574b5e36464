package polyvoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

type (
	// jsonNumber accepts both 12 and "12"; description files written by
	// different compilers disagree on whether numbers are quoted.
	jsonNumber float64

	jsonItem struct {
		Type    string     `json:"type"`
		Label   string     `json:"label"`
		Address string     `json:"address"`
		Index   jsonNumber `json:"index"`
		Init    jsonNumber `json:"init"`
		Min     jsonNumber `json:"min"`
		Max     jsonNumber `json:"max"`
		Step    jsonNumber `json:"step"`
		Items   []jsonItem `json:"items"`
	}

	jsonDescription struct {
		Name    string     `json:"name"`
		Inputs  jsonNumber `json:"inputs"`
		Outputs jsonNumber `json:"outputs"`
		UI      []jsonItem `json:"ui"`
	}
)

// ReadDescription decodes a JSON voice description, i.e. an object with
// "name", "inputs", "outputs" and a "ui" array of items, each having a "type"
// among hgroup, vgroup, tgroup, hslider, vslider, button, checkbox, nentry,
// hbargraph and vbargraph.
func ReadDescription(r io.Reader) (Description, error) {
	var d Description
	b, err := io.ReadAll(r)
	if err != nil {
		return d, fmt.Errorf("could not read description: %w", err)
	}
	if err := json.Unmarshal(b, &d); err != nil {
		return d, fmt.Errorf("could not parse description: %w", err)
	}
	return d, nil
}

func (d *Description) UnmarshalJSON(b []byte) error {
	var jd jsonDescription
	if err := json.Unmarshal(b, &jd); err != nil {
		return err
	}
	ui, err := convertItems(jd.UI)
	if err != nil {
		return err
	}
	*d = Description{Name: jd.Name, Inputs: int(jd.Inputs), Outputs: int(jd.Outputs), UI: ui}
	return nil
}

func convertItems(items []jsonItem) ([]Item, error) {
	ret := make([]Item, 0, len(items))
	for _, j := range items {
		item, err := j.item()
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}

func (j jsonItem) item() (Item, error) {
	switch j.Type {
	case "hgroup", "vgroup", "tgroup":
		items, err := convertItems(j.Items)
		if err != nil {
			return nil, fmt.Errorf("in group %q: %w", j.Label, err)
		}
		kind := map[string]GroupKind{"hgroup": HGroup, "vgroup": VGroup, "tgroup": TGroup}[j.Type]
		return Group{Kind: kind, Label: j.Label, Items: items}, nil
	case "hslider", "vslider":
		kind := HSlider
		if j.Type == "vslider" {
			kind = VSlider
		}
		return Slider{Kind: kind, Label: j.Label, Address: j.Address, Index: int(j.Index),
			Init: float32(j.Init), Min: float32(j.Min), Max: float32(j.Max), Step: float32(j.Step)}, nil
	case "button":
		return Button{Label: j.Label, Address: j.Address, Index: int(j.Index)}, nil
	case "checkbox":
		return Checkbox{Label: j.Label, Address: j.Address, Index: int(j.Index)}, nil
	case "nentry":
		return NumEntry{Label: j.Label, Address: j.Address, Index: int(j.Index),
			Init: float32(j.Init), Min: float32(j.Min), Max: float32(j.Max), Step: float32(j.Step)}, nil
	case "hbargraph", "vbargraph":
		kind := HBarGraph
		if j.Type == "vbargraph" {
			kind = VBarGraph
		}
		return BarGraph{Kind: kind, Label: j.Label, Address: j.Address, Index: int(j.Index),
			Min: float32(j.Min), Max: float32(j.Max)}, nil
	}
	return nil, fmt.Errorf("unknown item type %q (label %q)", j.Type, j.Label)
}

func (n *jsonNumber) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", b)
	}
	*n = jsonNumber(f)
	return nil
}
