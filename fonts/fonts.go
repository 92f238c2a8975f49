package fonts

import (
	"sort"
	"strings"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/jamesrr39/goutil/errorsx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
)

const DefaultFamily = "Go"

type FontStyle uint8

const (
	FontStyleRegular FontStyle = 0
	FontStyleBold    FontStyle = 1 << 0
	FontStyleItalic  FontStyle = 1 << 1
)

func (s FontStyle) String() string {
	switch s {
	case FontStyleRegular:
		return "regular"
	case FontStyleBold:
		return "bold"
	case FontStyleItalic:
		return "italic"
	case FontStyleBold | FontStyleItalic:
		return "bold italic"
	default:
		return "unknown"
	}
}

// ParseFontStyle reads "regular", "bold", "italic" or "bold italic" (in any order and case).
func ParseFontStyle(value string) (FontStyle, errorsx.Error) {
	var style FontStyle
	for _, part := range strings.Fields(strings.ToLower(value)) {
		switch part {
		case "regular", "normal":
		case "bold":
			style |= FontStyleBold
		case "italic":
			style |= FontStyleItalic
		default:
			return 0, errorsx.Errorf("unknown font style: %q", value)
		}
	}
	return style, nil
}

type family [4]*truetype.Font // indexed by FontStyle

var (
	families    map[string]*family // map[lower case family name]family
	familyNames []string
)

func init() {
	type variant struct {
		family string
		style  FontStyle
		ttf    []byte
	}

	variants := []variant{
		{"Go", FontStyleRegular, goregular.TTF},
		{"Go", FontStyleBold, gobold.TTF},
		{"Go", FontStyleItalic, goitalic.TTF},
		{"Go", FontStyleBold | FontStyleItalic, gobolditalic.TTF},
		{"Go Medium", FontStyleRegular, gomedium.TTF},
		{"Go Medium", FontStyleItalic, gomediumitalic.TTF},
		{"Go Mono", FontStyleRegular, gomono.TTF},
		{"Go Mono", FontStyleBold, gomonobold.TTF},
		{"Go Mono", FontStyleItalic, gomonoitalic.TTF},
		{"Go Mono", FontStyleBold | FontStyleItalic, gomonobolditalic.TTF},
		{"Go Smallcaps", FontStyleRegular, gosmallcaps.TTF},
		{"Go Smallcaps", FontStyleItalic, gosmallcapsitalic.TTF},
	}

	families = make(map[string]*family)
	for _, v := range variants {
		f, err := freetype.ParseFont(v.ttf)
		if err != nil {
			panic(errorsx.Wrap(err, "family", v.family, "style", v.style.String()))
		}

		key := strings.ToLower(v.family)
		fam, ok := families[key]
		if !ok {
			fam = new(family)
			families[key] = fam
			familyNames = append(familyNames, v.family)
		}
		fam[v.style] = f
	}
}

func DefaultFont() *truetype.Font {
	return Lookup(DefaultFamily, FontStyleRegular)
}

// Lookup finds the closest font available. An unknown family falls back to the default family,
// and a style a family doesn't have falls back to the nearest style it does have.
func Lookup(familyName string, style FontStyle) *truetype.Font {
	fam, ok := families[strings.ToLower(strings.TrimSpace(familyName))]
	if !ok {
		fam = families[strings.ToLower(DefaultFamily)]
	}

	for _, candidate := range []FontStyle{style, style &^ FontStyleBold, style &^ FontStyleItalic, FontStyleRegular} {
		if f := fam[candidate&(FontStyleBold|FontStyleItalic)]; f != nil {
			return f
		}
	}

	return fam[FontStyleRegular]
}

// IsKnownFamily reports whether the family is available without falling back.
func IsKnownFamily(familyName string) bool {
	_, ok := families[strings.ToLower(strings.TrimSpace(familyName))]
	return ok
}

func Families() []string {
	names := append([]string(nil), familyNames...)
	sort.Strings(names)
	return names
}

// FontSpec describes the font text is drawn with. Size is in pixels.
type FontSpec struct {
	Family string
	Style  FontStyle
	Size   float64
}

func (fs FontSpec) Font() *truetype.Font {
	return Lookup(fs.Family, fs.Style)
}

// Face returns a face for measuring text. The caller should close it.
func (fs FontSpec) Face() font.Face {
	return truetype.NewFace(fs.Font(), &truetype.Options{
		Size:    fs.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
