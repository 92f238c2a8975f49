package legend

import (
	"image/color"

	"github.com/jamesrr39/ownmap-legend/fonts"
	"github.com/jamesrr39/ownmap-legend/ownmap"
	"github.com/jamesrr39/ownmap-legend/units"
)

type catalogueEntry struct {
	objectType  ownmap.ObjectType
	layer       string
	featureInfo ownmap.FeatureInfo
	label       string
}

// layer names follow the openmaptiles schema
var mapObjectCatalogue = []catalogueEntry{
	{ownmap.ObjectTypeLine, "transportation", ownmap.FeatureInfoMotorway, "motorway"},
	{ownmap.ObjectTypeLine, "transportation", ownmap.FeatureInfoTrunk, "trunk road"},
	{ownmap.ObjectTypeLine, "transportation", ownmap.FeatureInfoPrimary, "main road"},
	{ownmap.ObjectTypeLine, "transportation", ownmap.FeatureInfoSecondary, "secondary road"},
	{ownmap.ObjectTypeLine, "transportation", ownmap.FeatureInfoTertiary, "minor road"},
	{ownmap.ObjectTypeLine, "transportation", ownmap.FeatureInfoResidential, "other road"},
	{ownmap.ObjectTypeLine, "transportation", ownmap.FeatureInfoFootway, "footpath"},
	{ownmap.ObjectTypeLine, "transportation", ownmap.FeatureInfoCycleway, "cycle path"},
	{ownmap.ObjectTypeLine, "transportation", ownmap.FeatureInfoRail, "railway"},
	{ownmap.ObjectTypePolygon, "landcover", ownmap.FeatureInfoForest, "forest"},
	{ownmap.ObjectTypePolygon, "park", ownmap.FeatureInfoPark, "park"},
	{ownmap.ObjectTypePolygon, "water", ownmap.FeatureInfoWater, "water"},
	{ownmap.ObjectTypePoint, "poi", ownmap.FeatureInfoStation, "station"},
}

// applyStyleFlags changes the configuration for the turn and scale styles.
func (l *Legend) applyStyleFlags(flags StyleFlags) {
	if flags.TurnStyle {
		l.config.FontSize = units.Dimension{Value: 12, Unit: units.UnitPoint}
		l.config.FontStyle = fonts.FontStyleBold
		l.config.Margin = units.Dimension{Value: 6, Unit: units.UnitPoint}
		l.config.TextColor = color.Black
	}

	if flags.ScaleStyle {
		l.config.BackgroundColor = color.NRGBA{0xff, 0xff, 0xff, 0xc0}
		l.config.Border.StrokeWidth = units.Dimension{}
		l.config.Margin = units.Dimension{Value: 2, Unit: units.UnitPoint}
		l.config.TextColor = l.config.DiagramColor
	}
}

// populate adds the lines for the style flags: the title, the map object catalogue and a scale bar, in that order.
func (l *Legend) populate(flags StyleFlags, dataSetName string, scaleDenominator float64) {
	if flags.Title {
		title := dataSetName
		if flags.ScaleInTitle && scaleDenominator > 0 {
			title += " 1:" + units.FormatNumber(scaleDenominator, 0)
		}
		l.AddTextLine(title)
	}

	if flags.MapObjects {
		for _, entry := range mapObjectCatalogue {
			l.AddMapObjectLine(entry.objectType, entry.layer, entry.featureInfo, "", entry.label)
		}
	}

	if flags.ScaleBar {
		l.AddScaleLine()
	}
}
