package version

import (
	"fmt"
	"runtime/debug"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

func String() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

func PrintVersion() {
	fmt.Printf("envloader %s\n", String())
}
