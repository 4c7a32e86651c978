package period

import perr "bizdash/internal/platform/errors"

var (
	// ErrInvalidPeriodConfiguration is returned when custom bounds are missing,
	// supplied for a non custom identifier, or inverted
	ErrInvalidPeriodConfiguration = perr.New(perr.ErrorCodeInvalidArgument, "invalid period configuration")

	// ErrUnsupportedPeriodIdentifier is returned for values outside the enumeration
	ErrUnsupportedPeriodIdentifier = perr.New(perr.ErrorCodeInvalidArgument, "unsupported period identifier")

	// ErrMisaligned is returned when a pair breaks its comparison rules
	ErrMisaligned = perr.New(perr.ErrorCodeUnknown, "misaligned period windows")
)

func invalidConfig(format string, a ...any) error {
	return perr.Wrapf(ErrInvalidPeriodConfiguration, perr.ErrorCodeInvalidArgument, format, a...)
}

func misaligned(id Identifier, format string, a ...any) error {
	return perr.WithOp(perr.Wrapf(ErrMisaligned, perr.ErrorCodeUnknown, format, a...), "period.Validate:"+string(id))
}
