// Package services defines the shared error taxonomy for the gifforge
// pipeline. Sentinel markers let the CLI and studio classify failures
// (read, decode, encode, validation) without string matching, and Wrap
// attaches component/operation context while preserving errors.Is checks.
package services
