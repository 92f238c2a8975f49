package webservices

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-legend/framework"
	"github.com/jamesrr39/ownmap-legend/styling"
	"github.com/jamesrr39/ownmap-legend/units"
)

const maxZoomLevel = 24

// MapService changes the map the legends are drawn for.
type MapService struct {
	logger   *logpkg.Logger
	fw       *framework.Framework
	styleSet *styling.StyleSet
	chi.Router
}

func NewMapService(logger *logpkg.Logger, fw *framework.Framework, styleSet *styling.StyleSet) *MapService {
	ms := &MapService{logger, fw, styleSet, chi.NewRouter()}

	ms.Put("/scale", ms.handlePutScale)
	ms.Put("/style", ms.handlePutStyle)
	ms.Put("/units", ms.handlePutUnits)

	return ms
}

func (ms *MapService) getMap(w http.ResponseWriter) *framework.Map {
	hostMap := ms.fw.Map()
	if hostMap == nil {
		errorsx.HTTPError(w, ms.logger, errorsx.Errorf("the map has been closed"), http.StatusServiceUnavailable)
		return nil
	}
	return hostMap
}

// scaleRequest sets the scale directly, or from a web mercator zoom level and latitude.
type scaleRequest struct {
	ScaleDenominator *float64 `json:"scaleDenominator"`
	Zoom             *float64 `json:"zoom"`
	Latitude         float64  `json:"latitude"`
}

type scaleResponse struct {
	ScaleDenominator float64 `json:"scaleDenominator"`
}

func (ms *MapService) handlePutScale(w http.ResponseWriter, r *http.Request) {
	hostMap := ms.getMap(w)
	if hostMap == nil {
		return
	}

	var request scaleRequest
	err := render.DecodeJSON(r.Body, &request)
	if err != nil {
		errorsx.HTTPError(w, ms.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	var scaleDenominator float64
	switch {
	case request.ScaleDenominator != nil:
		scaleDenominator = *request.ScaleDenominator
	case request.Zoom != nil:
		if *request.Zoom < 0 || *request.Zoom > maxZoomLevel || request.Latitude < -85 || request.Latitude > 85 {
			errorsx.HTTPError(w, ms.logger, errorsx.Errorf("zoom must be between 0 and %d and latitude between -85 and 85", maxZoomLevel), http.StatusBadRequest)
			return
		}
		scaleDenominator = ScaleDenominatorForZoom(request.Latitude, *request.Zoom, ms.fw.DPI())
	default:
		errorsx.HTTPError(w, ms.logger, errorsx.Errorf("either scaleDenominator or zoom is required"), http.StatusBadRequest)
		return
	}

	if scaleDenominator < 0 {
		errorsx.HTTPError(w, ms.logger, errorsx.Errorf("scale denominator can't be negative"), http.StatusBadRequest)
		return
	}

	hostMap.SetScaleDenominator(scaleDenominator)
	render.JSON(w, r, scaleResponse{scaleDenominator})
}

type styleRequest struct {
	MainStyleID  string `json:"mainStyleId"`
	BlendStyleID string `json:"blendStyleId"`
}

// lookupSheet returns nil for an empty ID or the builtin style, as the map draws with the builtin style when it has no sheet.
func (ms *MapService) lookupSheet(styleID string) (*styling.Sheet, errorsx.Error) {
	if styleID == "" || styleID == styling.BUILTIN_STYLEID {
		return nil, nil
	}

	sheet := ms.styleSet.GetSheetByID(styleID)
	if sheet == nil {
		return nil, errorsx.Errorf("style not loaded: %q", styleID)
	}

	return sheet, nil
}

func (ms *MapService) handlePutStyle(w http.ResponseWriter, r *http.Request) {
	hostMap := ms.getMap(w)
	if hostMap == nil {
		return
	}

	var request styleRequest
	decodeErr := render.DecodeJSON(r.Body, &request)
	if decodeErr != nil {
		errorsx.HTTPError(w, ms.logger, errorsx.Wrap(decodeErr), http.StatusBadRequest)
		return
	}

	mainSheet, err := ms.lookupSheet(request.MainStyleID)
	if err != nil {
		errorsx.HTTPError(w, ms.logger, err, http.StatusBadRequest)
		return
	}

	blendSheet, err := ms.lookupSheet(request.BlendStyleID)
	if err != nil {
		errorsx.HTTPError(w, ms.logger, err, http.StatusBadRequest)
		return
	}

	hostMap.SetMainStyleSheet(mainSheet)
	hostMap.SetBlendStyleSheet(blendSheet)
	w.WriteHeader(http.StatusNoContent)
}

type unitsRequest struct {
	UnitSystem string `json:"unitSystem"`
}

func (ms *MapService) handlePutUnits(w http.ResponseWriter, r *http.Request) {
	hostMap := ms.getMap(w)
	if hostMap == nil {
		return
	}

	var request unitsRequest
	decodeErr := render.DecodeJSON(r.Body, &request)
	if decodeErr != nil {
		errorsx.HTTPError(w, ms.logger, errorsx.Wrap(decodeErr), http.StatusBadRequest)
		return
	}

	unitSystem, err := units.ParseUnitSystem(request.UnitSystem)
	if err != nil {
		errorsx.HTTPError(w, ms.logger, err, http.StatusBadRequest)
		return
	}

	hostMap.SetUnitSystem(unitSystem)
	w.WriteHeader(http.StatusNoContent)
}
