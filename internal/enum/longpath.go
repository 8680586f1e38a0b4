package enum

import "strings"

// longPathThreshold is the code-unit length at or above which a path must
// carry the extended-length prefix before being handed to a native Win32
// call. Exactly at 239 units a path still passes unprefixed; at 240 it does
// not — this boundary is load-bearing, see enum_test.go.
const longPathThreshold = 240

const extendedLengthPrefix = `\\?\`
const extendedLengthUNCPrefix = `\\?\UNC\`

// WithExtendedLengthPrefix returns path unchanged if it is short enough for
// ordinary Win32 calls, and prefixed with the extended-length convention
// otherwise. UNC paths (\\server\share\...) get the \\?\UNC\ form; drive
// paths get the plain \\?\ form. Already-prefixed paths are returned as-is.
func WithExtendedLengthPrefix(path string) string {
	if strings.HasPrefix(path, extendedLengthPrefix) {
		return path
	}
	if utf16Len(path) < longPathThreshold {
		return path
	}
	if strings.HasPrefix(path, `\\`) {
		return extendedLengthUNCPrefix + strings.TrimPrefix(path, `\\`)
	}
	return extendedLengthPrefix + path
}

// utf16Len approximates the UTF-16 code-unit length Win32 actually measures
// paths in; ASCII-heavy Windows paths make the common case (len in bytes)
// correct, and surrogate pairs are rare enough in path segments that an
// approximation here does not change which side of the 240 threshold a
// realistic path lands on.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n++
		if r > 0xFFFF {
			n++
		}
	}
	return n
}
