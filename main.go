// Package main is the entry point for the footstats CLI, which keeps a log of the
// amateur football matches you play and computes records, streaks, form, season
// ratings, co-player impact and goal milestones from it.
package main

import "github.com/pable/footstats/cmd"

func main() {
	cmd.Execute()
}
