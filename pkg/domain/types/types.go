package types

// Version is the courier version, overridden at build time via -ldflags.
var Version = "dev"
