package ownmap

import (
	"strings"

	"github.com/paulmach/osm"
)

// Tags returns the OSM tags a feature of this kind would carry.
func (fi FeatureInfo) Tags() osm.Tags {
	def, ok := featureInfoDefs[fi]
	if !ok {
		return nil
	}

	return osm.Tags{{Key: def.tagKey, Value: def.tagValue}}
}

// ParseStringAttribute reads a string attribute of the form "key=value;key2=value2".
// A part without "=" is taken as the object's name.
func ParseStringAttribute(attribute string) osm.Tags {
	var tags osm.Tags
	for _, part := range strings.Split(attribute, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idxEquals := strings.Index(part, "=")
		if idxEquals == -1 {
			tags = append(tags, osm.Tag{Key: "name", Value: part})
			continue
		}

		tags = append(tags, osm.Tag{
			Key:   strings.TrimSpace(part[:idxEquals]),
			Value: strings.TrimSpace(part[idxEquals+1:]),
		})
	}

	return tags
}

// FeatureTags combines the tags derived from the feature info with those in the string attribute.
// Tags from the string attribute override tags with the same key.
func FeatureTags(featureInfo FeatureInfo, stringAttribute string) osm.Tags {
	extra := ParseStringAttribute(stringAttribute)
	tags := osm.Tags{}
	for _, tag := range featureInfo.Tags() {
		if extra.HasTag(tag.Key) {
			continue
		}
		tags = append(tags, tag)
	}

	return append(tags, extra...)
}

// FeatureInfoFromTags returns the first kind of feature the tags describe, or FeatureInfoUnknown.
func FeatureInfoFromTags(tags osm.Tags) FeatureInfo {
	for fi := FeatureInfoMotorway; fi <= FeatureInfoStation; fi++ {
		def := featureInfoDefs[fi]
		if tags.Find(def.tagKey) == def.tagValue {
			return fi
		}
	}
	return FeatureInfoUnknown
}
