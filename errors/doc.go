// Package errors provides structured error types for binary XML decoding.
//
// Errors carry a processing phase, a failure kind, and where available the
// byte offset and chunk type at which decoding failed, so malformed
// manifests can be diagnosed from the message alone. Use errors.Is with a
// prototype to match on phase and kind:
//
//	if errors.Is(err, &axmlerrors.Error{Phase: axmlerrors.PhaseDecode, Kind: axmlerrors.KindTruncated}) {
//	    // input buffer ended mid-chunk
//	}
package errors
