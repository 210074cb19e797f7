package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "nbtedit",
		Usage: "inspects and edits NBT documents and Anvil region files",
		Commands: []*cli.Command{
			dumpCommand(),
			chunksCommand(),
			extractCommand(),
			putCommand(),
			verifyCommand(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
