package webservices

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-legend/framework"
	"github.com/jamesrr39/ownmap-legend/navigation"
)

// NavigationService passes navigation events from a navigation client on to the framework's observers.
type NavigationService struct {
	logger *logpkg.Logger
	fw     *framework.Framework
	chi.Router
}

func NewNavigationService(logger *logpkg.Logger, fw *framework.Framework) *NavigationService {
	ns := &NavigationService{logger, fw, chi.NewRouter()}

	ns.Post("/route", ns.handlePostRoute)
	ns.Post("/turn", ns.handlePostTurn)
	ns.Post("/state", ns.handlePostState)

	return ns
}

type routeRequest struct {
	HasRoute    bool    `json:"hasRoute"`
	Distance    float64 `json:"distance"`
	TimeSeconds float64 `json:"timeSeconds"`
}

type turnRequest struct {
	First           *navigation.Turn `json:"first"`
	Second          *navigation.Turn `json:"second"`
	Continuation    *navigation.Turn `json:"continuation"`
	DistanceLeft    float64          `json:"distanceLeft"`
	TimeLeftSeconds float64          `json:"timeLeftSeconds"`
}

type stateRequest struct {
	Phase navigation.Phase `json:"phase"`
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func (ns *NavigationService) handlePostRoute(w http.ResponseWriter, r *http.Request) {
	var request routeRequest
	err := render.DecodeJSON(r.Body, &request)
	if err != nil {
		errorsx.HTTPError(w, ns.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	var route *navigation.Route
	if request.HasRoute {
		route = &navigation.Route{
			Distance: request.Distance,
			Time:     secondsToDuration(request.TimeSeconds),
		}
	}

	ns.fw.NotifyRoute(route)
	w.WriteHeader(http.StatusNoContent)
}

func (ns *NavigationService) handlePostTurn(w http.ResponseWriter, r *http.Request) {
	var request turnRequest
	err := render.DecodeJSON(r.Body, &request)
	if err != nil {
		errorsx.HTTPError(w, ns.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	if request.First == nil {
		errorsx.HTTPError(w, ns.logger, errorsx.Errorf("missing first turn"), http.StatusBadRequest)
		return
	}

	ns.fw.NotifyTurn(request.First, request.Second, request.Continuation, request.DistanceLeft, secondsToDuration(request.TimeLeftSeconds))
	w.WriteHeader(http.StatusNoContent)
}

func (ns *NavigationService) handlePostState(w http.ResponseWriter, r *http.Request) {
	var request stateRequest
	err := render.DecodeJSON(r.Body, &request)
	if err != nil {
		errorsx.HTTPError(w, ns.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	ns.fw.NotifyState(request.Phase)
	w.WriteHeader(http.StatusNoContent)
}
