// miot-lang fetches a MIoT device specification and generates a lang-file
// mapping of service/property/action/event descriptions.
package main

import (
	"fmt"
	"os"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/cmd/miot-lang/commands"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "-h", "--help":
			commands.PrintUsage(os.Stdout)
			os.Exit(0)
		case "version", "--version":
			fmt.Println("miot-lang version 0.1.0")
			os.Exit(0)
		}
	}

	os.Exit(commands.RunGenerate(os.Args[1:], os.Stdout, os.Stderr))
}
