// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"log"

	"github.com/relabs-tech/pointer_computer/internal/app"
	"github.com/relabs-tech/pointer_computer/internal/config"
)

func main() {
	log.Println("starting pointer-computer tracking service")

	if err := config.InitGlobal("pointer_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunTracker(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
