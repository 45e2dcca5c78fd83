// Package miotspec models MIoT instance documents and extracts
// human-readable descriptions from them.
//
// Instance documents are loosely-typed JSON trees published by the
// miot-spec.org catalog. Vendors deviate from the nominal schema in
// practice, so this package works on decoded generic values and applies
// ordered field-name fallback chains instead of strict struct decoding.
// Numeric identifiers are kept as json.Number during decoding so that
// zero-padding them stays lossless.
package miotspec
