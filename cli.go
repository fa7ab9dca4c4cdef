//go:build cli
// +build cli

package main

import (
	_ "portal.GO/cron/jobs"
	_ "portal.GO/custom"

	"portal.GO/cmd"
	"portal.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
