// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/pointer_computer/internal/config"
	"github.com/relabs-tech/pointer_computer/internal/sample"
)

// newSource builds the configured orientation source: mock for development,
// replay for recorded logs, serial for a live device.
func newSource(cfg *config.Config) (sample.Source, error) {
	switch cfg.SampleSource {
	case "replay":
		log.Printf("producer: replaying orientation log %s", cfg.ReplayFile)
		return sample.NewReplaySource(cfg.ReplayFile)
	case "serial":
		log.Printf("producer: reading orientation lines from %s", cfg.SerialPort)
		return sample.NewSerialSource(cfg.SerialPort, cfg.SerialBaudRate)
	case "mock":
		log.Println("producer: using mock orientation source")
		return sample.NewMockSource(), nil
	default:
		return nil, fmt.Errorf("unknown sample source %q", cfg.SampleSource)
	}
}

// RunProducer reads orientation samples from the configured source and
// publishes them as JSON to the quaternion topic.
func RunProducer() error {
	log.Println("starting pointer-computer orientation producer")

	cfg := config.Get()

	src, err := newSource(cfg)
	if err != nil {
		return err
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDProducer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)

	log.Printf("connected to MQTT broker at %s, starting publish loop", cfg.MQTTBroker)

	ticker := time.NewTicker(time.Duration(cfg.SampleInterval) * time.Millisecond)
	defer ticker.Stop()

	for t := range ticker.C {
		s, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Println("producer: orientation source exhausted, stopping")
				return nil
			}
			log.Printf("producer: source error: %v", err)
			continue
		}

		payload, err := json.Marshal(s)
		if err != nil {
			log.Printf("producer: json marshal error: %v", err)
			continue
		}

		if token := client.Publish(cfg.TopicQuat, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("producer: MQTT publish error: %v", token.Error())
			continue
		}

		log.Printf("%s published sample: w=%.3f x=%.3f y=%.3f z=%.3f",
			t.Format(time.RFC3339), s.W, s.X, s.Y, s.Z)
	}
	return nil
}
