package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/relabs-tech/pointer_computer/internal/config"
	"github.com/relabs-tech/pointer_computer/internal/tracker"
)

var upgrader = websocket.Upgrader{
	// The dashboard is served from the same process; accept any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// webState caches the latest pointer position and a bounded trail of recent
// ones, and fans new positions out to connected websocket clients.
type webState struct {
	mu        sync.RWMutex
	lastPoint tracker.Point
	havePoint bool
	trail     []tracker.Point
	trailMax  int

	clients map[*websocket.Conn]chan tracker.Point
}

func newWebState(trailMax int) *webState {
	return &webState{
		trailMax: trailMax,
		clients:  make(map[*websocket.Conn]chan tracker.Point),
	}
}

func (w *webState) update(p tracker.Point) {
	w.mu.Lock()
	w.lastPoint = p
	w.havePoint = true
	w.trail = append(w.trail, p)
	if len(w.trail) > w.trailMax {
		w.trail = w.trail[len(w.trail)-w.trailMax:]
	}
	for _, ch := range w.clients {
		// Drop updates for slow clients rather than blocking the MQTT
		// callback.
		select {
		case ch <- p:
		default:
		}
	}
	w.mu.Unlock()
}

func (w *webState) addClient(conn *websocket.Conn) chan tracker.Point {
	ch := make(chan tracker.Point, 16)
	w.mu.Lock()
	w.clients[conn] = ch
	w.mu.Unlock()
	return ch
}

func (w *webState) removeClient(conn *websocket.Conn) {
	w.mu.Lock()
	if ch, ok := w.clients[conn]; ok {
		delete(w.clients, conn)
		close(ch)
	}
	w.mu.Unlock()
}

// RunWeb serves the pointer dashboard: a JSON API for the latest position,
// a websocket stream of live positions, and a PNG snapshot of the recent
// trail.
func RunWeb() error {
	cfg := config.Get()
	state := newWebState(cfg.TrailLength)

	// 1) Connect to MQTT broker
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	// 2) Subscribe to pointer topic and update state on each message
	token := client.Subscribe(cfg.TopicPointer, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var p tracker.Point
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			log.Printf("web: MQTT payload unmarshal error: %v", err)
			return
		}
		state.update(p)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to MQTT topic %s", cfg.TopicPointer)

	// 3) JSON API endpoint: latest pointer position
	http.HandleFunc("/api/pointer", func(w http.ResponseWriter, r *http.Request) {
		state.mu.RLock()
		defer state.mu.RUnlock()

		if !state.havePoint {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(state.lastPoint); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 4) Websocket endpoint: push each new position as it arrives
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}
		defer conn.Close()

		ch := state.addClient(conn)
		defer state.removeClient(conn)
		log.Printf("web: websocket client connected from %s", r.RemoteAddr)

		for p := range ch {
			if err := conn.WriteJSON(p); err != nil {
				log.Printf("web: websocket write error: %v", err)
				return
			}
		}
	})

	// 5) PNG snapshot of the recent trail
	http.HandleFunc("/api/trail.png", func(w http.ResponseWriter, r *http.Request) {
		state.mu.RLock()
		trail := make([]tracker.Point, len(state.trail))
		copy(trail, state.trail)
		state.mu.RUnlock()

		img := renderTrail(trail, int(cfg.ScreenWidth), int(cfg.ScreenHeight))

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			http.Error(w, "png encode failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Printf("web: trail write error: %v", err)
		}
	})

	// 6) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}

// renderTrail draws the recent pointer positions onto a white canvas with a
// center crosshair, the way the live dashboard shows them.
func renderTrail(trail []tracker.Point, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	gray := color.RGBA{128, 128, 128, 255}
	blue := color.RGBA{0, 100, 255, 255}
	red := color.RGBA{255, 0, 0, 255}

	// Center crosshair
	cx, cy := width/2, height/2
	for d := -20; d <= 20; d++ {
		img.Set(cx+d, cy, gray)
		img.Set(cx, cy+d, gray)
	}

	// Trail dots, then the current position on top
	for _, p := range trail {
		img.Set(int(p.X), int(p.Y), blue)
	}
	if n := len(trail); n > 0 {
		last := trail[n-1]
		for dx := -3; dx <= 3; dx++ {
			for dy := -3; dy <= 3; dy++ {
				if dx*dx+dy*dy <= 9 {
					img.Set(int(last.X)+dx, int(last.Y)+dy, red)
				}
			}
		}

		label := fmt.Sprintf("(%.0f, %.0f)", last.X, last.Y)
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.Black),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(10, 20),
		}
		d.DrawString(label)
	}

	return img
}
