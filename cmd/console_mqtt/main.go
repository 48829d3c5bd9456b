package main

import (
	"log"

	"github.com/relabs-tech/pointer_computer/internal/app"
	"github.com/relabs-tech/pointer_computer/internal/config"
)

func main() {
	log.Println("starting pointer-computer console (MQTT subscriber)")

	if err := config.InitGlobal("pointer_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunConsoleMQTT(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
