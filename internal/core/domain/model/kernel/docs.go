// Package kernel holds the value objects shared by every aggregate of the
// donation logistics domain: identifiers (UUID), measurement units (Unit) and
// the caller identity passed into lifecycle operations (Principal).
package kernel
