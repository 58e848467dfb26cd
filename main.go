package main

import (
	"log"

	"github.com/tfournier/aides-scout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
