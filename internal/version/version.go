// ABOUTME: Version constants for the decoding toolset
// ABOUTME: Shared by the command line tools for identification
package version

const (
	// Version is the current software version
	Version = "0.1.0"

	// Product is the product name
	Product = "Decode Toolset"

	// Manufacturer is the project name
	Manufacturer = "Resonate"
)
