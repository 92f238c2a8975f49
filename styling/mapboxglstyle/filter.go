package mapboxglstyle

import (
	"fmt"
	"strconv"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/paulmach/osm"
)

const (
	FilterOperatorEquals       = "=="
	FilterOperatorNotEqual     = "!="
	FilterOperatorAny          = "any"
	FilterOperatorAll          = "all"
	FilterOperatorNone         = "none"
	FilterOperatorIn           = "in"
	FilterOperatorNotIn        = "!in"
	FilterOperatorHas          = "has"
	FilterOperatorNotHas       = "!has"
	FilterOperatorLess         = "<"
	FilterOperatorLessEqual    = "<="
	FilterOperatorGreater      = ">"
	FilterOperatorGreaterEqual = ">="
)

const (
	FilterThingType           = "$type"
	FilterThingTypePoint      = "Point"
	FilterThingTypeLineString = "LineString"
	FilterThingTypePolygon    = "Polygon"

	FilterThingClass    = "class"
	FilterThingSubclass = "subclass"
)

/*

    "filter": [
        "all",
        ["==", "$type", "Polygon"],
		["in", "class", "residential", "suburb", "neighbourhood"]
	]

	"filter": ["==", "$type", "Point"],
*/

// https://openmaptiles.org/schema/#transportation
const (
	SourceLayerTransportation string = "transportation"
	SourceLayerWaterway       string = "waterway"
	SourceLayerPlace          string = "place"
)

// filterObject is the thing a filter is tested against.
type filterObject struct {
	sourceLayer   string
	tags          osm.Tags
	geometryTypes []string
}

// Filter is a compiled layer filter.
type Filter interface {
	matches(obj *filterObject) bool
}

type allFilter []Filter

func (f allFilter) matches(obj *filterObject) bool {
	for _, sub := range f {
		if !sub.matches(obj) {
			return false
		}
	}
	return true
}

type anyFilter []Filter

func (f anyFilter) matches(obj *filterObject) bool {
	for _, sub := range f {
		if sub.matches(obj) {
			return true
		}
	}
	return false
}

type notFilter struct {
	Filter
}

func (f notFilter) matches(obj *filterObject) bool {
	return !f.Filter.matches(obj)
}

type inFilter struct {
	key    string
	values []string
}

func (f inFilter) matches(obj *filterObject) bool {
	for _, value := range f.values {
		if isValueShown(f.key, value, obj) {
			return true
		}
	}
	return false
}

type hasFilter struct {
	key string
}

func (f hasFilter) matches(obj *filterObject) bool {
	switch f.key {
	case FilterThingType:
		return true
	case FilterThingClass:
		return obj.tags.HasTag(FilterThingClass) || areTagsInSourceLayer(obj.sourceLayer, obj.tags)
	}
	return obj.tags.HasTag(f.key)
}

type compareFilter struct {
	key      string
	operator string
	value    float64
}

func (f compareFilter) matches(obj *filterObject) bool {
	tagValue, err := strconv.ParseFloat(obj.tags.Find(f.key), 64)
	if err != nil {
		return false
	}

	switch f.operator {
	case FilterOperatorLess:
		return tagValue < f.value
	case FilterOperatorLessEqual:
		return tagValue <= f.value
	case FilterOperatorGreater:
		return tagValue > f.value
	default:
		return tagValue >= f.value
	}
}

func isSubclassShown(subclass string, tags osm.Tags) bool {
	return isClassTypeShown(mapMapboxGLSubclassToOSMTags(subclass), tags)
}

func isClassShown(className, sourceLayer string, tags osm.Tags) bool {
	return isClassTypeShown(mapMapboxGLClassToOSMTags(className, sourceLayer), tags)
}

// https://docs.mapbox.com/vector-tiles/reference/mapbox-streets-v8/
func isClassTypeShown(lookingForOsmTags, objectTags osm.Tags) bool {
	for _, needleTag := range lookingForOsmTags {
		for _, objectTag := range objectTags {
			if objectTag.Key == needleTag.Key {
				if needleTag.Value == "*" || needleTag.Value == objectTag.Value {
					return true
				}
			}
		}
	}
	return false
}

func isValueShown(key, value string, obj *filterObject) bool {
	switch key {
	case FilterThingType:
		for _, geometryType := range obj.geometryTypes {
			if geometryType == value {
				return true
			}
		}
		return false
	case FilterThingClass:
		return obj.tags.Find(FilterThingClass) == value || isClassShown(value, obj.sourceLayer, obj.tags)
	case FilterThingSubclass:
		return obj.tags.Find(FilterThingSubclass) == value || isSubclassShown(value, obj.tags)
	default:
		return obj.tags.Find(key) == value
	}
}

// compileFilter turns the decoded JSON of a layer filter into a Filter.
// A nil filter matches everything.
func compileFilter(raw interface{}) (Filter, errorsx.Error) {
	if raw == nil {
		return allFilter{}, nil
	}

	base, ok := raw.([]interface{})
	if !ok || len(base) == 0 {
		return nil, errorsx.Errorf("a filter must be a non-empty array, but was %v", raw)
	}

	operator, ok := base[0].(string)
	if !ok {
		return nil, errorsx.Errorf("filter operator must be a string, but was %v", base[0])
	}

	switch operator {
	case FilterOperatorAll, FilterOperatorAny, FilterOperatorNone:
		var subFilters []Filter
		for _, rawSubFilter := range base[1:] {
			subFilter, err := compileFilter(rawSubFilter)
			if err != nil {
				return nil, err
			}
			subFilters = append(subFilters, subFilter)
		}
		switch operator {
		case FilterOperatorAll:
			return allFilter(subFilters), nil
		case FilterOperatorAny:
			return anyFilter(subFilters), nil
		default:
			return notFilter{anyFilter(subFilters)}, nil
		}
	case FilterOperatorEquals, FilterOperatorNotEqual:
		if len(base) != 3 {
			return nil, errorsx.Errorf("operator %q expects 2 arguments but found %d", operator, len(base)-1)
		}
		fallthrough
	case FilterOperatorIn, FilterOperatorNotIn:
		key, values, err := filterArguments(base)
		if err != nil {
			return nil, err
		}
		var f Filter = inFilter{key, values}
		if operator == FilterOperatorNotEqual || operator == FilterOperatorNotIn {
			f = notFilter{f}
		}
		return f, nil
	case FilterOperatorHas, FilterOperatorNotHas:
		key, values, err := filterArguments(base)
		if err != nil {
			return nil, err
		}
		if len(values) != 0 {
			return nil, errorsx.Errorf("operator %q expects 1 argument but found %d", operator, len(values)+1)
		}
		var f Filter = hasFilter{key}
		if operator == FilterOperatorNotHas {
			f = notFilter{f}
		}
		return f, nil
	case FilterOperatorLess, FilterOperatorLessEqual, FilterOperatorGreater, FilterOperatorGreaterEqual:
		if len(base) != 3 {
			return nil, errorsx.Errorf("operator %q expects 2 arguments but found %d", operator, len(base)-1)
		}
		key, values, err := filterArguments(base)
		if err != nil {
			return nil, err
		}
		value, parseErr := strconv.ParseFloat(values[0], 64)
		if parseErr != nil {
			return nil, errorsx.Wrap(parseErr, "operator", operator)
		}
		return compareFilter{key, operator, value}, nil
	default:
		return nil, errorsx.Errorf("unknown filter operator: %q", operator)
	}
}

func filterArguments(base []interface{}) (string, []string, errorsx.Error) {
	if len(base) < 2 {
		return "", nil, errorsx.Errorf("operator %v has no key", base[0])
	}

	key, ok := base[1].(string)
	if !ok {
		return "", nil, errorsx.Errorf("filter key must be a string, but was %v", base[1])
	}

	var values []string
	for _, rawValue := range base[2:] {
		switch rawValue.(type) {
		case string, float64, bool:
			values = append(values, fmt.Sprint(rawValue))
		default:
			return "", nil, errorsx.Errorf("unsupported filter value %v for key %q", rawValue, key)
		}
	}

	return key, values, nil
}
