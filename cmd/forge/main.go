package main

import (
	"github.com/DevSymphony/forge/internal/cmd"

	// Bootstrap: register text-generation providers
	_ "github.com/DevSymphony/forge/internal/bootstrap"
)

// Version is set by build -ldflags "-X main.Version=x.y.z"
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	cmd.Execute()
}
