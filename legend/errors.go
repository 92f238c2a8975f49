package legend

import (
	"errors"
)

var (
	// ErrLayout is the cause of errors from a legend that can't be laid out at the requested size.
	ErrLayout = errors.New("legend layout error")
	// ErrStyle is the cause of errors from a style sheet that can't be parsed.
	ErrStyle = errors.New("legend style error")
)
