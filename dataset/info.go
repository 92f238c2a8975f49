package dataset

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-legend/ownmap"
	"github.com/paulmach/osm"
)

const progressLogInterval = 5 * time.Second

// Info describes an OpenStreetMap extract: where it covers, and how many of each kind of legend feature it has.
type Info struct {
	Name            string         `json:"name"`
	Bounds          *osm.Bounds    `json:"bounds,omitempty"`
	ReplicationTime time.Time      `json:"replicationTime"`
	WritingProgram  string         `json:"writingProgram,omitempty"`
	ObjectCount     int            `json:"objectCount"`
	FeatureCounts   map[string]int `json:"featureCounts"`
}

// CentreLatitude is the latitude in the middle of the bounds, or 0 if the extract has no bounds.
func (info *Info) CentreLatitude() float64 {
	if info.Bounds == nil {
		return 0
	}
	return (info.Bounds.MinLat + info.Bounds.MaxLat) / 2
}

// NameFromPath is the file name without the directory or the .pbf/.osm.pbf extension.
func NameFromPath(path string) string {
	name := filepath.Base(path)
	for _, suffix := range []string{".pbf", ".osm"} {
		name = strings.TrimSuffix(name, suffix)
	}
	return name
}

func objectTags(object osm.Object) osm.Tags {
	switch object := object.(type) {
	case *osm.Node:
		return object.Tags
	case *osm.Way:
		return object.Tags
	case *osm.Relation:
		return object.Tags
	default:
		return nil
	}
}

// ReadInfo reads the header and every object from the reader.
func ReadInfo(name string, reader PBFReader) (*Info, errorsx.Error) {
	header, err := reader.Header()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	info := &Info{
		Name:          name,
		FeatureCounts: make(map[string]int),
	}
	if header != nil {
		info.Bounds = header.Bounds
		info.ReplicationTime = header.ReplicationTimestamp
		info.WritingProgram = header.WritingProgram
	}

	for reader.Scan() {
		info.ObjectCount++

		featureInfo := ownmap.FeatureInfoFromTags(objectTags(reader.Object()))
		if featureInfo != ownmap.FeatureInfoUnknown {
			info.FeatureCounts[featureInfo.String()]++
		}
	}

	err = reader.Err()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return info, nil
}

// LoadInfo scans the PBF file at path, logging progress as it goes.
func LoadInfo(logger *logpkg.Logger, fs gofs.Fs, path string) (*Info, errorsx.Error) {
	startTime := time.Now()

	file, err := fs.Open(path)
	if err != nil {
		return nil, errorsx.Wrap(err, "path", path)
	}

	reader, readerErr := NewDefaultPBFReader(file)
	if readerErr != nil {
		file.Close()
		return nil, errorsx.Wrap(readerErr, "path", path)
	}
	defer reader.Close()

	finishedChan := make(chan struct{})
	defer close(finishedChan)
	go runLogProgress(logger, reader, finishedChan)

	info, readErr := ReadInfo(NameFromPath(path), reader)
	if readErr != nil {
		return nil, errorsx.Wrap(readErr, "path", path)
	}

	logger.Info("scanned %d objects in %q in %s", info.ObjectCount, path, time.Since(startTime))
	return info, nil
}

func runLogProgress(logger *logpkg.Logger, reader *DefaultPBFReader, finishedChan chan struct{}) {
	ticker := time.NewTicker(progressLogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-finishedChan:
			return
		case <-ticker.C:
			fullyScannedBytes := reader.FullyScannedBytes()
			totalBytes := reader.TotalSize()
			if totalBytes == 0 {
				continue
			}
			logger.Info("scanned bytes so far: %d/%d (%0.02f%%)", fullyScannedBytes, totalBytes, float64(fullyScannedBytes)*100/float64(totalBytes))
		}
	}
}
