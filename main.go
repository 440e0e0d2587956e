package main

import (
	"log"

	"github.com/NathanHymers98/spacebar/cmd"
	"github.com/NathanHymers98/spacebar/config"
)

func main() {
	log.Printf("spacebar %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
