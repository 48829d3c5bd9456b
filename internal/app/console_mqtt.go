package app

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/pointer_computer/internal/config"
	"github.com/relabs-tech/pointer_computer/internal/quat"
	"github.com/relabs-tech/pointer_computer/internal/sample"
	"github.com/relabs-tech/pointer_computer/internal/tracker"
)

// RunConsoleMQTT subscribes to the quaternion, pointer and Euler topics and
// prints everything it sees. Handy for eyeballing a live stream.
func RunConsoleMQTT() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Subscribe to raw quaternion samples
	quatToken := client.Subscribe(cfg.TopicQuat, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s sample.Sample
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("console: sample unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[QUAT] w=%7.3f x=%7.3f y=%7.3f z=%7.3f\n",
			s.W, s.X, s.Y, s.Z,
		)
	})
	quatToken.Wait()
	if quatToken.Error() != nil {
		return quatToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicQuat)

	// Subscribe to pointer positions
	posToken := client.Subscribe(cfg.TopicPointer, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var p tracker.Point
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			log.Printf("console: position unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[PTR ] X=%7.1f Y=%7.1f\n",
			p.X, p.Y,
		)
	})
	posToken.Wait()
	if posToken.Error() != nil {
		return posToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicPointer)

	// Subscribe to Euler diagnostics
	eulerToken := client.Subscribe(cfg.TopicEuler, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var e quat.EulerAngles
		if err := json.Unmarshal(msg.Payload(), &e); err != nil {
			log.Printf("console: euler unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[EUL ] ROLL=%7.2f  PITCH=%7.2f  YAW=%7.2f\n",
			e.Roll*180/math.Pi, e.Pitch*180/math.Pi, e.Yaw*180/math.Pi,
		)
	})
	eulerToken.Wait()
	if eulerToken.Error() != nil {
		return eulerToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicEuler)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
