// Command dailybrief builds a static daily briefing page from public data sources.
package main

import "github.com/gaurav-prasanna/dailybrief/cmd"

func main() {
	cmd.Execute()
}
