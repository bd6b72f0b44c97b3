package olydash

var (
	// Version of olydash, set by ldflags during the build.
	Version = "v0.1.0"

	// Build timestamp, set by ldflags during the build.
	Build = "n/a"
)
