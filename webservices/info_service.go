package webservices

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-legend/dataset"
	"github.com/jamesrr39/ownmap-legend/framework"
	"github.com/jamesrr39/ownmap-legend/styling"
)

// NewInfoService describes the map, its styles and legends. dataSetInfo may be nil if the map data wasn't scanned.
func NewInfoService(logger *logpkg.Logger, fw *framework.Framework, styleSet *styling.StyleSet, registry *LegendRegistry, dataSetInfo *dataset.Info) *InfoService {
	ws := &InfoService{logger, fw, styleSet, registry, dataSetInfo, chi.NewRouter()}
	ws.Get("/", ws.handleGet)

	return ws
}

type InfoService struct {
	logger      *logpkg.Logger
	fw          *framework.Framework
	styleSet    *styling.StyleSet
	registry    *LegendRegistry
	dataSetInfo *dataset.Info
	chi.Router
}

type stylesType struct {
	DefaultStyleID string   `json:"defaultStyleId"`
	StyleIDs       []string `json:"styleIds"`
	MainStyleID    string   `json:"mainStyleId,omitempty"`
	BlendStyleID   string   `json:"blendStyleId,omitempty"`
}

type mapInfoType struct {
	DataSetName      string  `json:"dataSetName"`
	ScaleDenominator float64 `json:"scaleDenominator"`
	UnitSystem       string  `json:"unitSystem"`
}

type infoType struct {
	DPI       float64       `json:"dpi"`
	Map       *mapInfoType  `json:"map"`
	Style     stylesType    `json:"style"`
	LegendIDs []string      `json:"legendIds"`
	DataSet   *dataset.Info `json:"dataSet,omitempty"`
}

func sheetID(sheet *styling.Sheet) string {
	if sheet == nil {
		return ""
	}
	return sheet.ID
}

func (ws *InfoService) handleGet(w http.ResponseWriter, r *http.Request) {
	info := infoType{
		DPI: ws.fw.DPI(),
		Style: stylesType{
			DefaultStyleID: ws.styleSet.DefaultStyleID(),
			StyleIDs:       ws.styleSet.GetAllStyleIDs(),
		},
		LegendIDs: ws.registry.IDs(),
		DataSet:   ws.dataSetInfo,
	}

	if info.LegendIDs == nil {
		info.LegendIDs = []string{}
	}

	if hostMap := ws.fw.Map(); hostMap != nil {
		info.Map = &mapInfoType{
			DataSetName:      hostMap.DataSetName(),
			ScaleDenominator: hostMap.ScaleDenominator(),
			UnitSystem:       hostMap.UnitSystem().String(),
		}
		info.Style.MainStyleID = sheetID(hostMap.MainStyleSheet())
		info.Style.BlendStyleID = sheetID(hostMap.BlendStyleSheet())
	}

	render.JSON(w, r, info)
}
