package utils

// Version is the version of the tool, it's set at build time with ldflags.
var Version = "0.1.0"
