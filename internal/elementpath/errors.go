package elementpath

import "go.trai.ch/zerr"

var (
	// ErrInvalidPathPrefix is returned when a path does not start with Scheme.
	ErrInvalidPathPrefix = zerr.New("invalid element path prefix")

	// ErrEmptyPath is returned when a path has no segments after the prefix.
	ErrEmptyPath = zerr.New("element path has no segments")

	// ErrMalformedSegment is returned when a segment cannot be parsed.
	ErrMalformedSegment = zerr.New("malformed path segment")
)

func prefixError(input string) error {
	return zerr.With(zerr.Wrap(ErrInvalidPathPrefix, "parse element path"), "path", input)
}

func emptyError(input string) error {
	return zerr.With(zerr.Wrap(ErrEmptyPath, "parse element path"), "path", input)
}

func segmentError(input string, segment int, reason string) error {
	err := zerr.With(zerr.Wrap(ErrMalformedSegment, reason), "path", input)
	return zerr.With(err, "segment", segment)
}
