package navigation

import (
	"github.com/jamesrr39/goutil/errorsx"
)

func errUnknownValue(kind, value string) errorsx.Error {
	return errorsx.Errorf("unknown %s: %q", kind, value)
}
