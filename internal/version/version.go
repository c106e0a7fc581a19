package version

// Version is the release identifier, overridden at build time with
// -ldflags "-X github.com/foodcheck/web/internal/version.Version=..."
var Version = "1.0.0"
