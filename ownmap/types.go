package ownmap

import (
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

// ObjectType is the geometry kind of a map object.
type ObjectType int

const (
	ObjectTypeUnknown ObjectType = 0
	ObjectTypePoint   ObjectType = 1
	ObjectTypeLine    ObjectType = 2
	ObjectTypePolygon ObjectType = 3
)

var objectTypeNames = map[ObjectType]string{
	ObjectTypeUnknown: "unknown",
	ObjectTypePoint:   "point",
	ObjectTypeLine:    "line",
	ObjectTypePolygon: "polygon",
}

func (ot ObjectType) String() string {
	name, ok := objectTypeNames[ot]
	if !ok {
		return objectTypeNames[ObjectTypeUnknown]
	}
	return name
}

func ParseObjectType(name string) (ObjectType, errorsx.Error) {
	switch strings.ToLower(name) {
	case "point", "node":
		return ObjectTypePoint, nil
	case "line", "way", "linestring":
		return ObjectTypeLine, nil
	case "polygon", "area":
		return ObjectTypePolygon, nil
	default:
		return ObjectTypeUnknown, errorsx.Errorf("unknown object type: %q", name)
	}
}

// FeatureInfo identifies the kind of feature a map object represents.
type FeatureInfo int

const (
	FeatureInfoUnknown FeatureInfo = iota
	FeatureInfoMotorway
	FeatureInfoTrunk
	FeatureInfoPrimary
	FeatureInfoSecondary
	FeatureInfoTertiary
	FeatureInfoUnclassified
	FeatureInfoResidential
	FeatureInfoTrack
	FeatureInfoFootway
	FeatureInfoCycleway
	FeatureInfoRail
	FeatureInfoForest
	FeatureInfoPark
	FeatureInfoGrass
	FeatureInfoWater
	FeatureInfoStation
)

type featureInfoDef struct {
	name     string
	tagKey   string
	tagValue string
}

var featureInfoDefs = map[FeatureInfo]featureInfoDef{
	FeatureInfoMotorway:     {"motorway", "highway", "motorway"},
	FeatureInfoTrunk:        {"trunk", "highway", "trunk"},
	FeatureInfoPrimary:      {"primary", "highway", "primary"},
	FeatureInfoSecondary:    {"secondary", "highway", "secondary"},
	FeatureInfoTertiary:     {"tertiary", "highway", "tertiary"},
	FeatureInfoUnclassified: {"unclassified", "highway", "unclassified"},
	FeatureInfoResidential:  {"residential", "highway", "residential"},
	FeatureInfoTrack:        {"track", "highway", "track"},
	FeatureInfoFootway:      {"footway", "highway", "footway"},
	FeatureInfoCycleway:     {"cycleway", "highway", "cycleway"},
	FeatureInfoRail:         {"rail", "railway", "rail"},
	FeatureInfoForest:       {"forest", "landuse", "forest"},
	FeatureInfoPark:         {"park", "leisure", "park"},
	FeatureInfoGrass:        {"grass", "landuse", "grass"},
	FeatureInfoWater:        {"water", "natural", "water"},
	FeatureInfoStation:      {"station", "railway", "station"},
}

func (fi FeatureInfo) String() string {
	def, ok := featureInfoDefs[fi]
	if !ok {
		return "unknown"
	}
	return def.name
}

func ParseFeatureInfo(name string) (FeatureInfo, errorsx.Error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "unknown" {
		return FeatureInfoUnknown, nil
	}

	for fi, def := range featureInfoDefs {
		if def.name == name {
			return fi, nil
		}
	}

	return FeatureInfoUnknown, errorsx.Errorf("unknown feature info: %q", name)
}
