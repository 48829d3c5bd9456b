// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/pointer_computer/internal/config"
	"github.com/relabs-tech/pointer_computer/internal/quat"
	"github.com/relabs-tech/pointer_computer/internal/sample"
	"github.com/relabs-tech/pointer_computer/internal/tracker"
)

// engine abstracts the two tracking modes so the subscribe loop does not
// care which one is active.
type engine interface {
	Update(q quat.Quaternion) tracker.Point
	LastEuler() quat.EulerAngles
}

// RunTracker subscribes to the quaternion topic, drives the tracking engine
// on every sample, and publishes pointer positions plus Euler diagnostics.
func RunTracker() error {
	log.Println("starting pointer-computer tracking service")

	cfg := config.Get()
	tcfg := cfg.Tracker()

	var eng engine
	if cfg.TrackingMode == "relative" {
		log.Printf("tracker: relative mode, sensitivity=%.0f window=%d",
			tcfg.Sensitivity, tcfg.SmoothingWindow)
		eng = tracker.NewDeltaTracker(tcfg)
	} else {
		strategy, err := tracker.ParseStrategy(cfg.Strategy)
		if err != nil {
			return err
		}
		log.Printf("tracker: absolute mode, strategy=%s", strategy)
		eng = tracker.NewProjector(tcfg, strategy)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDTracker)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("tracker: connected to MQTT broker at %s", cfg.MQTTBroker)

	// The MQTT client delivers messages for one subscription sequentially,
	// so the engine is only ever touched from this callback.
	token := client.Subscribe(cfg.TopicQuat, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s sample.Sample
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("tracker: sample unmarshal error: %v", err)
			return
		}

		pos := eng.Update(s.Quaternion())

		if payload, err := json.Marshal(pos); err != nil {
			log.Printf("tracker: position marshal error: %v", err)
		} else if tok := client.Publish(cfg.TopicPointer, 0, true, payload); tok.Wait() && tok.Error() != nil {
			log.Printf("tracker: MQTT publish error (position): %v", tok.Error())
		}

		if payload, err := json.Marshal(eng.LastEuler()); err != nil {
			log.Printf("tracker: euler marshal error: %v", err)
		} else if tok := client.Publish(cfg.TopicEuler, 0, true, payload); tok.Wait() && tok.Error() != nil {
			log.Printf("tracker: MQTT publish error (euler): %v", tok.Error())
		}
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("tracker: subscribed to %s", cfg.TopicQuat)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("tracker: shutting down")
	return nil
}
