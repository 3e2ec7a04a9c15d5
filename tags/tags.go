// Package tags defines the CBOR tag numbers used to mark the wire
// encoding of each envelope variant.
package tags

// CBOR tag numbers for envelope wire encoding. ENVELOPE wraps every
// top-level encoding; the remaining tags mark the untagged content of
// each variant when it appears nested inside that wrapper. LEAF reuses
// the IANA-registered "embedded CBOR data item" tag; the others are
// drawn from a private-use range.
const (
	ENVELOPE         = 200
	LEAF             = 24
	WRAPPED_ENVELOPE = 201
	KNOWN_VALUE      = 202
	ASSERTION        = 203
	ENCRYPTED        = 204
	COMPRESSED       = 205
	DIGEST           = 206
)
