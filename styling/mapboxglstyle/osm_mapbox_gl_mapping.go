package mapboxglstyle

import (
	"github.com/paulmach/osm"
)

// mapMapboxGLClassToOSMTags returns the OSM tags an openmaptiles class stands for.
// Unknown classes map to no tags, so filters on them never match.
func mapMapboxGLClassToOSMTags(className, sourceLayer string) osm.Tags {
	switch sourceLayer {
	case "landuse", "landcover":
		// according to the docs, "landuse" should be used. However some mapbox styles use "landcover"
		// https://docs.mapbox.com/vector-tiles/reference/mapbox-streets-v8/
		switch className {
		case "agriculture", "farmland":
			return osm.Tags{
				{Key: "landuse", Value: "farmland"},
				{Key: "landuse", Value: "meadow"},
				{Key: "landuse", Value: "orchard"},
				{Key: "landuse", Value: "agriculture"}, // deprecated by OSM, still may be usages of it though.
			}
		case "grass":
			return osm.Tags{
				{Key: "landuse", Value: "grass"},
				{Key: "landcover", Value: "grass"},
			}
		case "wood":
			return osm.Tags{
				{Key: "natural", Value: "wood"},
				{Key: "landuse", Value: "forest"},
				{Key: "landcover", Value: "trees"},
			}
		case "sand":
			return osm.Tags{
				{Key: "natural", Value: "sand"},
			}
		case "residential", "suburb", "neighbourhood":
			return osm.Tags{
				{Key: "landuse", Value: "residential"},
			}
		case "national_park":
			return osm.Tags{
				{Key: "boundary", Value: "national_park"},
			}
		}
	case "park":
		switch className {
		case "park":
			return osm.Tags{
				{Key: "leisure", Value: "park"},
			}
		case "national_park", "nature_reserve":
			return osm.Tags{
				{Key: "boundary", Value: className},
				{Key: "leisure", Value: "nature_reserve"},
			}
		}
	case "water":
		switch className {
		case "lake", "river", "ocean":
			return osm.Tags{
				{Key: "natural", Value: "water"},
				{Key: "water", Value: className},
			}
		}
	case "transportation":
		switch className {
		case "pier":
			return osm.Tags{
				{Key: "man_made", Value: "pier"},
			}
		case "path":
			return osm.Tags{
				{Key: "highway", Value: "path"},
				{Key: "highway", Value: "footway"},
				{Key: "highway", Value: "cycleway"},
			}
		case "track":
			return osm.Tags{
				{Key: "highway", Value: "track"},
				{Key: "leisure", Value: "track"},
				{Key: "cycleway", Value: "track"},
			}
		case "minor", "minor_road":
			return osm.Tags{
				{Key: "highway", Value: "unclassified"},
				{Key: "highway", Value: "residential"},
			}
		case "aeroway":
			return osm.Tags{
				{Key: "aeroway", Value: "*"},
			}
		case "trunk", "primary", "service", "secondary", "tertiary", "motorway":
			return osm.Tags{
				{Key: "highway", Value: className},
			}
		case "rail":
			return osm.Tags{
				{Key: "railway", Value: "rail"},
			}
		case "transit":
			return osm.Tags{
				{Key: "railway", Value: "*"},
				{Key: "landuse", Value: "railway"},
			}
		}
	case "poi":
		switch className {
		case "railway":
			return osm.Tags{
				{Key: "railway", Value: "station"},
			}
		}
	case "aeroway", "airport_label", "housenum_label", "place":
		// OpenStreetMap replication
		return osm.Tags{
			{Key: sourceLayer, Value: className},
		}
	}

	return nil
}

func mapMapboxGLSubclassToOSMTags(subclassName string) osm.Tags {
	switch subclassName {
	case "ice_shelf":
		return osm.Tags{
			{Key: "glacier:type", Value: "shelf"},
		}
	case "glacier":
		return osm.Tags{
			{Key: "natural", Value: "glacier"},
		}
	case "station":
		return osm.Tags{
			{Key: "railway", Value: "station"},
		}
	default:
		return nil
	}
}

// areTagsInSourceLayer reports whether an object with these tags would be found in the source layer.
func areTagsInSourceLayer(sourceLayer string, tags osm.Tags) bool {
	for _, tag := range tags {
		switch sourceLayer {
		case SourceLayerTransportation:
			switch tag.Key {
			case "highway", "railway":
				if tag.Value != "station" {
					return true
				}
			}
		case "landcover", "landuse":
			if tag.Key == "landcover" || tag.Key == "landuse" || (tag.Key == "natural" && tag.Value == "wood") {
				return true
			}
		case "park":
			if tag.Key == "leisure" && tag.Value == "park" {
				return true
			}
		case "water":
			if tag.Key == "natural" && tag.Value == "water" {
				return true
			}
		case "poi":
			if tag.Key == "amenity" || tag.Key == "shop" || (tag.Key == "railway" && tag.Value == "station") {
				return true
			}
		default:
			if tag.Key == sourceLayer {
				return true
			}
		}
	}
	return false
}
