// Package shared holds helpers for handling secrets read from the user.
package shared

// WipeByteArray zeroes b in place. The terminal password reader hands its
// buffer here once the password has been copied out.
func WipeByteArray(b []byte) {
	clear(b)
}
