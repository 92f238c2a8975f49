package legendconfig

import (
	"image/color"
	"path/filepath"
	"strings"

	"github.com/jamesrr39/goutil/dirtraversal"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/userextra"
	"github.com/jamesrr39/ownmap-legend/fonts"
	"github.com/jamesrr39/ownmap-legend/framework"
	"github.com/jamesrr39/ownmap-legend/legend"
	"github.com/jamesrr39/ownmap-legend/ownmap"
	"github.com/jamesrr39/ownmap-legend/ownmaprenderer"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/jamesrr39/ownmap-legend/units"
	"gopkg.in/yaml.v3"
)

const (
	LineTypeText      = "text"
	LineTypeMapObject = "map_object"
	LineTypeScale     = "scale"
	LineTypeTurn      = "turn"
)

type BorderDefinition struct {
	Color       string  `yaml:"color"`
	StrokeWidth float64 `yaml:"stroke_width"`
	Radius      float64 `yaml:"radius"`
	Unit        string  `yaml:"unit"`
}

type FontDefinition struct {
	Family string           `yaml:"family"`
	Style  string           `yaml:"style"`
	Size   *units.Dimension `yaml:"size"`
}

type LineDefinition struct {
	Type string `yaml:"type"`
	// Text is the text of a text line
	Text string `yaml:"text"`
	// map object lines
	ObjectType string `yaml:"object_type"`
	Layer      string `yaml:"layer"`
	Feature    string `yaml:"feature"`
	Attributes string `yaml:"attributes"`
	Label      string `yaml:"label"`
	// Abbreviate turn lines
	Abbreviate bool `yaml:"abbreviate"`
}

// Definition describes a legend. Unset fields keep the values from the style preset.
type Definition struct {
	// Style is the preset the legend starts from: standard, turn, scale or empty
	Style           string            `yaml:"style"`
	BackgroundColor string            `yaml:"background_color"`
	Border          *BorderDefinition `yaml:"border"`
	Margin          *units.Dimension  `yaml:"margin"`
	MinLineHeight   *units.Dimension  `yaml:"min_line_height"`
	LabelWrapWidth  *units.Dimension  `yaml:"label_wrap_width"`
	Font            *FontDefinition   `yaml:"font"`
	TextColor       string            `yaml:"text_color"`
	DiagramColor    string            `yaml:"diagram_color"`
	Alignment       string            `yaml:"alignment"`
	PolygonRotation *float64          `yaml:"polygon_rotation"`
	// style sheet paths, relative to the definition file
	MainStyleSheet  string `yaml:"main_style_sheet"`
	ExtraStyleSheet string `yaml:"extra_style_sheet"`
	// Lines are added after the lines from the preset
	Lines []LineDefinition `yaml:"lines"`

	flags               legend.StyleFlags
	settings            []func(l *legend.Legend)
	mainStyleSheetData  []byte
	extraStyleSheetData []byte
}

// Load reads a definition file, and the style sheets it names.
func Load(fs gofs.Fs, path string) (*Definition, errorsx.Error) {
	path, err := userextra.ExpandUser(path)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", path)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", path)
	}

	definition, dErr := Parse(data)
	if dErr != nil {
		return nil, errorsx.Wrap(dErr, "path", path)
	}

	dErr = definition.LoadStyleSheets(fs, filepath.Dir(path))
	if dErr != nil {
		return nil, errorsx.Wrap(dErr, "path", path)
	}

	return definition, nil
}

// Parse reads and checks a definition. Style sheets are not read; see LoadStyleSheets.
func Parse(data []byte) (*Definition, errorsx.Error) {
	definition := new(Definition)
	err := yaml.Unmarshal(data, definition)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	dErr := definition.compile()
	if dErr != nil {
		return nil, dErr
	}

	return definition, nil
}

// LoadStyleSheets reads the style sheets the definition names. Paths are relative to baseDir, and may not go above it.
func (d *Definition) LoadStyleSheets(fs gofs.Fs, baseDir string) errorsx.Error {
	var err errorsx.Error
	d.mainStyleSheetData, err = readStyleSheet(fs, baseDir, d.MainStyleSheet)
	if err != nil {
		return errorsx.Wrap(err, "styleSheet", "main")
	}

	d.extraStyleSheetData, err = readStyleSheet(fs, baseDir, d.ExtraStyleSheet)
	if err != nil {
		return errorsx.Wrap(err, "styleSheet", "extra")
	}

	return nil
}

func readStyleSheet(fs gofs.Fs, baseDir, path string) ([]byte, errorsx.Error) {
	if path == "" {
		return nil, nil
	}

	if filepath.IsAbs(path) || dirtraversal.IsTryingToTraverseUp(path) {
		return nil, errorsx.Errorf("style sheet path must be inside the definition's directory: %q", path)
	}

	fullPath := filepath.Join(baseDir, path)
	data, err := fs.ReadFile(fullPath)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", fullPath)
	}

	return data, nil
}

// compile checks the definition, and turns it into settings to apply to a legend.
func (d *Definition) compile() errorsx.Error {
	flags, err := legend.ParseStyleFlags(d.Style)
	if err != nil {
		return err
	}
	d.flags = flags
	d.settings = nil

	add := func(setting func(l *legend.Legend)) {
		d.settings = append(d.settings, setting)
	}

	if d.BackgroundColor != "" {
		c, err := styling.ParseColor(d.BackgroundColor)
		if err != nil {
			return errorsx.Wrap(err, "field", "background_color")
		}
		add(func(l *legend.Legend) { l.SetBackgroundColor(c) })
	}

	if d.Border != nil {
		border := *d.Border
		c, err := styling.ParseColor(border.Color)
		if err != nil {
			return errorsx.Wrap(err, "field", "border.color")
		}
		add(func(l *legend.Legend) { l.SetBorder(c, border.StrokeWidth, border.Radius, border.Unit) })
	}

	for _, dimension := range []struct {
		value  *units.Dimension
		setter func(l *legend.Legend, value float64, unit string)
	}{
		{d.Margin, (*legend.Legend).SetMarginWidth},
		{d.MinLineHeight, (*legend.Legend).SetMinLineHeight},
		{d.LabelWrapWidth, (*legend.Legend).SetLabelWrapWidth},
	} {
		if dimension.value == nil {
			continue
		}
		value, setter := *dimension.value, dimension.setter
		add(func(l *legend.Legend) { setter(l, value.Value, value.Unit) })
	}

	if d.Font != nil {
		dErr := d.compileFont(add)
		if dErr != nil {
			return dErr
		}
	}

	for _, colorField := range []struct {
		name   string
		value  string
		setter func(l *legend.Legend, c color.Color)
	}{
		{"text_color", d.TextColor, (*legend.Legend).SetTextColor},
		{"diagram_color", d.DiagramColor, (*legend.Legend).SetDiagramColor},
	} {
		if colorField.value == "" {
			continue
		}
		c, err := styling.ParseColor(colorField.value)
		if err != nil {
			return errorsx.Wrap(err, "field", colorField.name)
		}
		setter := colorField.setter
		add(func(l *legend.Legend) { setter(l, c) })
	}

	if d.Alignment != "" {
		alignment, err := ownmaprenderer.ParseAlignment(d.Alignment)
		if err != nil {
			return errorsx.Wrap(err, "field", "alignment")
		}
		add(func(l *legend.Legend) { l.SetAlignment(alignment) })
	}

	if d.PolygonRotation != nil {
		rotation := *d.PolygonRotation
		add(func(l *legend.Legend) { l.SetPolygonRotation(rotation) })
	}

	for i, lineDefinition := range d.Lines {
		dErr := compileLine(lineDefinition, add)
		if dErr != nil {
			return errorsx.Wrap(dErr, "lineIndex", i)
		}
	}

	return nil
}

func (d *Definition) compileFont(add func(setting func(l *legend.Legend))) errorsx.Error {
	font := *d.Font
	if font.Family != "" {
		if !fonts.IsKnownFamily(font.Family) {
			return errorsx.Errorf("unknown font family: %q. Known families: %s", font.Family, strings.Join(fonts.Families(), ", "))
		}
		add(func(l *legend.Legend) { l.SetFontFamily(font.Family) })
	}

	if font.Style != "" {
		style, err := fonts.ParseFontStyle(font.Style)
		if err != nil {
			return errorsx.Wrap(err, "field", "font.style")
		}
		add(func(l *legend.Legend) { l.SetFontStyle(style) })
	}

	if font.Size != nil {
		size := *font.Size
		add(func(l *legend.Legend) { l.SetFontSize(size.Value, size.Unit) })
	}

	return nil
}

func compileLine(lineDefinition LineDefinition, add func(setting func(l *legend.Legend))) errorsx.Error {
	switch lineDefinition.Type {
	case LineTypeText:
		add(func(l *legend.Legend) { l.AddTextLine(lineDefinition.Text) })
	case LineTypeScale:
		add(func(l *legend.Legend) { l.AddScaleLine() })
	case LineTypeTurn:
		add(func(l *legend.Legend) { l.AddTurnLine(lineDefinition.Abbreviate) })
	case LineTypeMapObject:
		objectType, err := ownmap.ParseObjectType(lineDefinition.ObjectType)
		if err != nil {
			return err
		}
		featureInfo, err := ownmap.ParseFeatureInfo(lineDefinition.Feature)
		if err != nil {
			return err
		}
		add(func(l *legend.Legend) {
			l.AddMapObjectLine(objectType, lineDefinition.Layer, featureInfo, lineDefinition.Attributes, lineDefinition.Label)
		})
	default:
		return errorsx.Errorf("unknown line type: %q", lineDefinition.Type)
	}

	return nil
}

// Apply changes the legend to match the definition. The preset style is not applied; see NewLegend.
func (d *Definition) Apply(l *legend.Legend) {
	if len(d.mainStyleSheetData) != 0 {
		l.SetMainStyleSheet(d.mainStyleSheetData)
	}
	if len(d.extraStyleSheetData) != 0 {
		l.SetExtraStyleSheet(d.extraStyleSheetData)
	}

	for _, setting := range d.settings {
		setting(l)
	}
}

// Flags is the preset the legend starts from.
func (d *Definition) Flags() legend.StyleFlags {
	return d.flags
}

// NewLegend creates a legend from the preset, and applies the rest of the definition to it.
func (d *Definition) NewLegend(fw *framework.Framework) *legend.Legend {
	l := legend.New(fw, d.flags)
	d.Apply(l)
	return l
}
