package webservices

import (
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-legend/framework"
	"github.com/jamesrr39/ownmap-legend/legend"
	"github.com/jamesrr39/ownmap-legend/legendconfig"
	"github.com/jamesrr39/semaphore"
	"github.com/pkg/profile"
)

const maxDefinitionSize = 1 << 20

type LegendService struct {
	logger        *logpkg.Logger
	fw            *framework.Framework
	registry      *LegendRegistry
	fs            gofs.Fs
	stylesDir     string
	sema          *semaphore.Semaphore
	shouldProfile bool
	chi.Router
}

// NewLegendService serves the legends in the registry. Style sheets named in legend definitions are read from stylesDir.
func NewLegendService(logger *logpkg.Logger, fw *framework.Framework, registry *LegendRegistry, fs gofs.Fs, stylesDir string, shouldProfile bool) *LegendService {
	ls := &LegendService{logger, fw, registry, fs, stylesDir, semaphore.NewSemaphore(4), shouldProfile, chi.NewRouter()}

	ls.Post("/", ls.handlePost)
	ls.Get("/{id}", ls.handleGet)
	ls.Delete("/{id}", ls.handleDelete)
	ls.Get("/{id}/bitmap.png", ls.handleGetBitmap)
	ls.Put("/{id}/turnInstruction", ls.handlePutTurnInstruction)

	return ls
}

type legendCreatedResponse struct {
	ID     string `json:"id"`
	Serial uint64 `json:"serial"`
}

type lineResponse struct {
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	ObjectType string `json:"objectType,omitempty"`
	Layer      string `json:"layer,omitempty"`
	Feature    string `json:"feature,omitempty"`
	Attributes string `json:"attributes,omitempty"`
	Label      string `json:"label,omitempty"`
	Abbreviate bool   `json:"abbreviate,omitempty"`
}

type legendInfoResponse struct {
	ID                 string         `json:"id"`
	Serial             uint64         `json:"serial"`
	Lines              []lineResponse `json:"lines"`
	HasScale           bool           `json:"hasScale"`
	HasTurnInstruction bool           `json:"hasTurnInstruction"`
	TurnInstruction    string         `json:"turnInstruction"`
}

func parseNoticeKind(value string) (framework.NoticeKind, errorsx.Error) {
	switch value {
	case "":
		return 0, nil
	case framework.NoticeTurnInstructions.String():
		return framework.NoticeTurnInstructions, nil
	case framework.NoticeScaleBar.String():
		return framework.NoticeScaleBar, nil
	default:
		return 0, errorsx.Errorf("unknown notice: %q", value)
	}
}

// handlePost creates a legend from a YAML definition. With ?notice=turn_instructions or ?notice=scale_bar, the legend is also shown over the map.
func (ls *LegendService) handlePost(w http.ResponseWriter, r *http.Request) {
	notice, err := parseNoticeKind(r.URL.Query().Get("notice"))
	if err != nil {
		errorsx.HTTPError(w, ls.logger, err, http.StatusBadRequest)
		return
	}

	data, readErr := io.ReadAll(io.LimitReader(r.Body, maxDefinitionSize))
	if readErr != nil {
		errorsx.HTTPError(w, ls.logger, errorsx.Wrap(readErr), http.StatusBadRequest)
		return
	}

	definition, err := legendconfig.Parse(data)
	if err != nil {
		errorsx.HTTPError(w, ls.logger, err, http.StatusBadRequest)
		return
	}

	err = definition.LoadStyleSheets(ls.fs, ls.stylesDir)
	if err != nil {
		errorsx.HTTPError(w, ls.logger, err, http.StatusBadRequest)
		return
	}

	l := definition.NewLegend(ls.fw)
	id := ls.registry.Add(l, notice)
	ls.logger.Info("created legend %q", id)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, legendCreatedResponse{id, l.Serial()})
}

func (ls *LegendService) getLegend(w http.ResponseWriter, r *http.Request) *registeredLegend {
	id := chi.URLParam(r, "id")
	rl := ls.registry.Get(id)
	if rl == nil {
		errorsx.HTTPError(w, ls.logger, errorsx.Errorf("legend not found: %q", id), http.StatusNotFound)
		return nil
	}

	return rl
}

func toLineResponse(line legend.Line) lineResponse {
	switch line := line.(type) {
	case legend.MapObjectLine:
		return lineResponse{
			Type:       legendconfig.LineTypeMapObject,
			ObjectType: line.Type.String(),
			Layer:      line.Layer,
			Feature:    line.FeatureInfo.String(),
			Attributes: line.StringAttribute,
			Label:      line.Label,
		}
	case legend.TextLine:
		return lineResponse{Type: legendconfig.LineTypeText, Text: line.Text}
	case legend.ScaleLine:
		return lineResponse{Type: legendconfig.LineTypeScale}
	case legend.TurnLine:
		return lineResponse{Type: legendconfig.LineTypeTurn, Abbreviate: line.Abbreviate}
	default:
		return lineResponse{Type: "unknown"}
	}
}

func (ls *LegendService) handleGet(w http.ResponseWriter, r *http.Request) {
	rl := ls.getLegend(w, r)
	if rl == nil {
		return
	}

	response := legendInfoResponse{ID: rl.id, Lines: []lineResponse{}}
	rl.withLegend(func(l *legend.Legend) {
		response.Serial = l.Serial()
		for _, line := range l.Lines() {
			response.Lines = append(response.Lines, toLineResponse(line))
		}
		response.HasScale = l.HasScale()
		response.HasTurnInstruction = l.HasTurnInstruction()
		response.TurnInstruction = l.TurnInstruction()
	})

	render.JSON(w, r, response)
}

func (ls *LegendService) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !ls.registry.Remove(id) {
		errorsx.HTTPError(w, ls.logger, errorsx.Errorf("legend not found: %q", id), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type turnInstructionRequest struct {
	Text string `json:"text"`
}

func (ls *LegendService) handlePutTurnInstruction(w http.ResponseWriter, r *http.Request) {
	rl := ls.getLegend(w, r)
	if rl == nil {
		return
	}

	var request turnInstructionRequest
	decodeErr := render.DecodeJSON(r.Body, &request)
	if decodeErr != nil {
		errorsx.HTTPError(w, ls.logger, errorsx.Wrap(decodeErr), http.StatusBadRequest)
		return
	}

	var serial uint64
	rl.withLegend(func(l *legend.Legend) {
		l.SetTurnInstruction(request.Text)
		serial = l.Serial()
	})

	render.JSON(w, r, legendCreatedResponse{rl.id, serial})
}

func parseBitmapParams(r *http.Request) (bitmapParams, errorsx.Error) {
	query := r.URL.Query()
	params := bitmapParams{
		Unit: query.Get("unit"),
	}

	for _, field := range []struct {
		name     string
		required bool
		dest     *float64
	}{
		{"width", true, &params.Width},
		{"scale", false, &params.ScaleDenominator},
	} {
		value := query.Get(field.name)
		if value == "" {
			if field.required {
				return params, errorsx.Errorf("missing query parameter: %q", field.name)
			}
			continue
		}

		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return params, errorsx.Wrap(err, "parameter", field.name)
		}
		*field.dest = parsed
	}

	for _, field := range []struct {
		name string
		dest *int
	}{
		{"x", &params.TopLeft.X},
		{"y", &params.TopLeft.Y},
	} {
		value := query.Get(field.name)
		if value == "" {
			continue
		}

		parsed, err := strconv.Atoi(value)
		if err != nil {
			return params, errorsx.Wrap(err, "parameter", field.name)
		}
		*field.dest = parsed
	}

	return params, nil
}

// bitmapErrorStatus is the HTTP status for an error from creating a legend bitmap.
func bitmapErrorStatus(err errorsx.Error) int {
	switch errorsx.Cause(err) {
	case legend.ErrLayout:
		return http.StatusBadRequest
	case legend.ErrStyle:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (ls *LegendService) handleGetBitmap(w http.ResponseWriter, r *http.Request) {
	if ls.shouldProfile {
		defer profile.Start().Stop()
	}

	rl := ls.getLegend(w, r)
	if rl == nil {
		return
	}

	params, err := parseBitmapParams(r)
	if err != nil {
		errorsx.HTTPError(w, ls.logger, err, http.StatusBadRequest)
		return
	}

	ls.sema.Add()
	defer ls.sema.Done()

	span := tracing.StartSpan(r.Context(), "create legend bitmap")
	data, fromCache, err := rl.pngBitmap(params)
	span.End(r.Context())
	if err != nil {
		errorsx.HTTPError(w, ls.logger, err, bitmapErrorStatus(err))
		return
	}

	ls.logger.Debug("serving legend %q bitmap (from cache: %v)", rl.id, fromCache)

	w.Header().Set("Content-Type", "image/png")
	_, writeErr := w.Write(data)
	if writeErr != nil {
		switch writeErr.(type) {
		case *net.OpError:
			// broken pipe (request cancelled). Do nothing
		default:
			ls.logger.Error("failed to write legend bitmap: %s", writeErr)
		}
		return
	}
}
