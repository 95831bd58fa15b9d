// Package main is the entry point for the episodic application.
package main

import (
	"github.com/episodic-ext/episodic/cmd"
	"github.com/episodic-ext/episodic/config"
	"github.com/episodic-ext/episodic/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
