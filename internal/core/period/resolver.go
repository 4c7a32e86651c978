package period

import (
	"time"

	perr "bizdash/internal/platform/errors"
)

// Resolver maps identifiers to windows in a fixed business location
// the zero value resolves in UTC
type Resolver struct {
	loc       *time.Location
	selfCheck bool
}

// Option configures a Resolver
type Option func(*Resolver)

// WithSelfCheck runs Validate on every pair before it is returned
func WithSelfCheck(on bool) Option {
	return func(r *Resolver) { r.selfCheck = on }
}

// NewResolver returns a Resolver bound to loc; nil loc means UTC
func NewResolver(loc *time.Location, opts ...Option) Resolver {
	r := Resolver{loc: loc}
	for _, o := range opts {
		o(&r)
	}
	return r
}

// Location returns the business location used for day boundaries
func (r Resolver) Location() *time.Location {
	if r.loc == nil {
		return time.UTC
	}
	return r.loc
}

// Resolve computes the current and comparison windows for id at now
// bounds must be non nil exactly when id is Custom
func (r Resolver) Resolve(id Identifier, now time.Time, bounds *DateRange) (Pair, error) {
	loc := r.Location()

	if id == Custom {
		if bounds == nil {
			return Pair{}, invalidConfig("custom period requires start and end bounds")
		}
		if bounds.Start.IsZero() || bounds.End.IsZero() {
			return Pair{}, invalidConfig("custom period requires start and end bounds")
		}
		if bounds.Start.After(bounds.End) {
			return Pair{}, invalidConfig("custom start %s is after end %s",
				bounds.Start.Format(time.DateOnly), bounds.End.Format(time.DateOnly))
		}
		return r.check(id, custom(*bounds, loc))
	}

	fn, ok := strategies[id]
	if !ok {
		return Pair{}, perr.Wrapf(ErrUnsupportedPeriodIdentifier, perr.ErrorCodeInvalidArgument, "unsupported period %q", string(id))
	}
	if bounds != nil {
		return Pair{}, invalidConfig("bounds are only accepted for %s, got %s", Custom, id)
	}
	return r.check(id, fn(newAnchor(now, loc)))
}

// ResolveOrDefault resolves id and on failure resolves fallback instead
// the returned identifier is the one actually used and err carries the original failure
func (r Resolver) ResolveOrDefault(id Identifier, now time.Time, bounds *DateRange, fallback Identifier) (Pair, Identifier, error) {
	p, err := r.Resolve(id, now, bounds)
	if err == nil {
		return p, id, nil
	}
	if fallback == "" {
		fallback = Default()
	}
	fp, ferr := r.Resolve(fallback, now, nil)
	if ferr != nil {
		return Pair{}, "", ferr
	}
	return fp, fallback, err
}

func (r Resolver) check(id Identifier, p Pair) (Pair, error) {
	if !r.selfCheck {
		return p, nil
	}
	if err := Validate(id, p); err != nil {
		return Pair{}, err
	}
	return p, nil
}

// Resolve resolves id in the location carried by now
func Resolve(id Identifier, now time.Time, bounds *DateRange) (Pair, error) {
	return NewResolver(now.Location()).Resolve(id, now, bounds)
}
