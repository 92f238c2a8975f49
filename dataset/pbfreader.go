package dataset

import (
	"context"
	"runtime"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

type PBFReader interface {
	Header() (*osmpbf.Header, error)
	Scan() bool
	Object() osm.Object
	Err() error
	FullyScannedBytes() int64
}

// DefaultPBFReader reads an OpenStreetMap PBF extract.
type DefaultPBFReader struct {
	file gofs.File
	*osmpbf.Scanner
	totalSize int64
}

func NewDefaultPBFReader(file gofs.File) (*DefaultPBFReader, errorsx.Error) {
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	scanner := osmpbf.New(context.Background(), file, runtime.NumCPU())

	return &DefaultPBFReader{file, scanner, fileInfo.Size()}, nil
}

func (r *DefaultPBFReader) TotalSize() int64 {
	return r.totalSize
}

// Close closes the scanner and the file.
func (r *DefaultPBFReader) Close() error {
	err := r.Scanner.Close()
	if err != nil {
		return errorsx.Wrap(err)
	}

	err = r.file.Close()
	if err != nil {
		return errorsx.Wrap(err)
	}

	return nil
}
