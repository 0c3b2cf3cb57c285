// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Graph contract consumed by the decorator, guard states, options.

package realize

import (
	"fmt"
	"iter"
	"reflect"

	"go.uber.org/zap"

	"github.com/pickypg/gradle/model"
)

// Graph is the part of the declarative object graph the decorator needs.
// *model.Registry implements it.
type Graph interface {
	// AtStateOrLater advances the node at path to at least state.
	AtStateOrLater(path model.Path, state model.State) (model.Handle, error)

	// LinksOfType lazily enumerates direct children of container whose
	// declared type is assignable to t.
	LinksOfType(container model.Handle, t reflect.Type) iter.Seq[model.Handle]
}

var _ Graph = (*model.Registry)(nil)

// RealizationState is the one-shot guard of a Collection.
type RealizationState int32

const (
	Pending RealizationState = iota
	Realizing
	Done
)

// String implements fmt.Stringer.
func (s RealizationState) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Realizing:
		return "Realizing"
	case Done:
		return "Done"
	}

	return fmt.Sprintf("RealizationState(%d)", int32(s))
}

// Option configures a Collection.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for realization diagnostics. Nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
