package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/vsariola/polyvoice"
	"github.com/vsariola/polyvoice/cmd"
	"github.com/vsariola/polyvoice/version"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	// listing is the data given to the template.
	listing struct {
		Name       string
		Inputs     int
		Outputs    int
		Parameters []parameter
		Monitored  []parameter
	}

	parameter struct {
		Label   string
		Address string
		Kind    string
		Index   int
		Init    float32
		Min     float32
		Max     float32
		Step    float32
	}
)

const defaultTemplate = `{{ .Name | title }}: {{ .Inputs }} input(s), {{ .Outputs }} output(s)

Parameters:
{{- range .Parameters }}
  {{ printf "%-32s" .Address }} {{ .Kind | printf "%-9s" }} {{ .Label | title | printf "%-12s" }} init {{ .Init }} range [{{ .Min }}, {{ .Max }}]
{{- else }}
  none
{{- end }}

Monitored:
{{- range .Monitored }}
  {{ printf "%-32s" .Address }} {{ .Kind | printf "%-9s" }} {{ .Label | title | printf "%-12s" }} range [{{ .Min }}, {{ .Max }}]
{{- else }}
  none
{{- end }}
`

func main() {
	voice := flag.String("voice", cmd.DefaultVoice, "List the parameters of this voice unit.")
	descFile := flag.String("description", "", "List the parameters of the JSON voice description in this file instead.")
	templateFile := flag.String("template", "", "Format the listing with this text/template file; sprig functions are available.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	desc, err := description(*voice, *descFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	text := defaultTemplate
	if *templateFile != "" {
		b, err := os.ReadFile(*templateFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not read template: %v\n", err)
			os.Exit(1)
		}
		text = string(b)
	}
	if err := list(os.Stdout, desc, text); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func description(voice, descFile string) (polyvoice.Description, error) {
	if descFile != "" {
		f, err := os.Open(descFile)
		if err != nil {
			return polyvoice.Description{}, fmt.Errorf("could not open description: %w", err)
		}
		defer f.Close()
		return polyvoice.ReadDescription(f)
	}
	factory, ok := cmd.Factories[voice]
	if !ok {
		return polyvoice.Description{}, fmt.Errorf("unknown voice %q, available voices: %v", voice, cmd.FactoryNames())
	}
	return factory.Description(), nil
}

func list(w io.Writer, desc polyvoice.Description, text string) error {
	funcs := sprig.TxtFuncMap()
	funcs["title"] = cases.Title(language.English).String
	tmpl, err := template.New("listing").Funcs(funcs).Parse(text)
	if err != nil {
		return fmt.Errorf("could not parse template: %w", err)
	}
	if err := tmpl.Execute(w, newListing(desc)); err != nil {
		return fmt.Errorf("could not execute template: %w", err)
	}
	return nil
}

func newListing(desc polyvoice.Description) listing {
	l := listing{Name: desc.Name, Inputs: desc.Inputs, Outputs: desc.Outputs}
	var walk func(items []polyvoice.Item)
	walk = func(items []polyvoice.Item) {
		for _, item := range items {
			switch v := item.(type) {
			case polyvoice.Group:
				walk(v.Items)
			case polyvoice.Slider:
				l.Parameters = append(l.Parameters, parameter{v.Label, v.Address, v.Kind.String(), v.Index, v.Init, v.Min, v.Max, v.Step})
			case polyvoice.NumEntry:
				l.Parameters = append(l.Parameters, parameter{v.Label, v.Address, "nentry", v.Index, v.Init, v.Min, v.Max, v.Step})
			case polyvoice.Button:
				l.Parameters = append(l.Parameters, parameter{v.Label, v.Address, "button", v.Index, 0, 0, 1, 1})
			case polyvoice.Checkbox:
				l.Parameters = append(l.Parameters, parameter{v.Label, v.Address, "checkbox", v.Index, 0, 0, 1, 1})
			case polyvoice.BarGraph:
				l.Monitored = append(l.Monitored, parameter{v.Label, v.Address, v.Kind.String(), v.Index, v.Min, v.Min, v.Max, 0})
			}
		}
	}
	walk(desc.UI)
	return l
}
