package main

import (
	"log"

	"github.com/inamhi-tic/helpdesk-service/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
