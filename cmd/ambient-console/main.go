// Command ambient-console is a terminal client for ambientd. It
// subscribes to the daemon's state stream and renders the world
// scalars and derived audio parameters as live bars, with single-key
// triggers posted back over HTTP.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
)

type snapshot struct {
	Density        float64 `json:"density"`
	Rhythm         float64 `json:"rhythm"`
	Tension        float64 `json:"tension"`
	Energy         float64 `json:"energy"`
	Warmth         float64 `json:"warmth"`
	SparkleImpulse float64 `json:"sparkle_impulse"`
}

type params struct {
	MasterGain     float64 `json:"master_gain"`
	BaseFreqHz     float64 `json:"base_freq_hz"`
	DetuneRatio    float64 `json:"detune_ratio"`
	Brightness     float64 `json:"brightness"`
	Motion         float64 `json:"motion"`
	Texture        float64 `json:"texture"`
	SparkleImpulse float64 `json:"sparkle_impulse"`
}

type update struct {
	World snapshot `json:"world"`
	Audio params   `json:"audio"`
}

type envelope struct {
	Version string          `json:"version"`
	Payload json.RawMessage `json:"payload"`
}

type hello struct {
	SessionID     string  `json:"session_id"`
	SchemaVersion string  `json:"schema_version"`
	TickRateHz    float64 `json:"tick_rate_hz"`
}

// streamEvent carries one parsed SSE frame from the reader goroutine.
type streamEvent struct {
	update  *update
	hello   *hello
	status  string
	stopped bool
}

func main() {
	addr := flag.String("addr", "http://localhost:3000", "ambientd base URL")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "console:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "console:", err)
		os.Exit(1)
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := make(chan streamEvent, 16)
	go readStream(ctx, *addr, stream)

	keys := make(chan *tcell.EventKey, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			switch ev := ev.(type) {
			case *tcell.EventKey:
				keys <- ev
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				return
			}
		}
	}()

	var (
		latest    update
		session   string
		status    = "connecting to " + *addr
		intensity = 0.5
	)

	client := &http.Client{Timeout: 2 * time.Second}
	post := func(kind string) {
		go func() {
			body, _ := json.Marshal(map[string]any{
				"type": "trigger", "kind": kind, "intensity": intensity,
			})
			resp, err := client.Post(*addr+"/event", "application/json", bytes.NewReader(body))
			if err != nil {
				return
			}
			resp.Body.Close()
		}()
	}

	for {
		draw(screen, latest, session, status, intensity)

		select {
		case ev := <-stream:
			switch {
			case ev.stopped:
				status = "disconnected, retrying"
			case ev.hello != nil:
				session = ev.hello.SessionID
				status = fmt.Sprintf("connected (%.0f Hz)", ev.hello.TickRateHz)
			case ev.update != nil:
				latest = *ev.update
			case ev.status != "":
				status = ev.status
			}

		case key := <-keys:
			switch key.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyRune:
				switch key.Rune() {
				case 'q':
					return
				case 'p':
					post("pulse")
				case 's':
					post("stir")
				case 'c':
					post("calm")
				case 'h':
					post("heat")
				case 't':
					post("tense")
				case '+', '=':
					if intensity < 1.0 {
						intensity += 0.1
					}
				case '-':
					if intensity > 0.0 {
						intensity -= 0.1
					}
				}
			}
		}
	}
}

// readStream consumes the daemon's SSE stream, reconnecting with a
// short backoff when the connection drops.
func readStream(ctx context.Context, addr string, out chan<- streamEvent) {
	for {
		if err := consumeOnce(ctx, addr, out); err != nil {
			out <- streamEvent{stopped: true}
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func consumeOnce(ctx context.Context, addr string, out chan<- streamEvent) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+"/stream", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream: %s", resp.Status)
	}

	var eventName string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			eventName = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			handleFrame(eventName, strings.TrimPrefix(line, "data: "), out)
		}
	}
	return scanner.Err()
}

func handleFrame(eventName, data string, out chan<- streamEvent) {
	var env envelope
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		return
	}
	switch eventName {
	case "hello":
		var h hello
		if err := json.Unmarshal(env.Payload, &h); err == nil {
			out <- streamEvent{hello: &h}
		}
	case "snapshot":
		var u update
		if err := json.Unmarshal(env.Payload, &u); err == nil {
			out <- streamEvent{update: &u}
		}
	}
}

const barWidth = 30

func draw(screen tcell.Screen, u update, session, status string, intensity float64) {
	screen.Clear()

	title := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	label := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	putString(screen, 0, 0, "ambientd console", title)
	putString(screen, 0, 1, status, dim)
	if session != "" {
		putString(screen, 0, 2, "session "+session, dim)
	}

	row := 4
	putString(screen, 0, row, "world", title)
	row++
	row = drawBar(screen, row, "density", u.World.Density, tcell.ColorGreen, label)
	row = drawBar(screen, row, "rhythm", u.World.Rhythm, tcell.ColorGreen, label)
	row = drawBar(screen, row, "tension", u.World.Tension, tcell.ColorRed, label)
	row = drawBar(screen, row, "energy", u.World.Energy, tcell.ColorOrange, label)
	row = drawBar(screen, row, "warmth", u.World.Warmth, tcell.ColorOrange, label)
	row = drawBar(screen, row, "sparkle", clampUnit(u.World.SparkleImpulse), tcell.ColorAqua, label)

	row++
	putString(screen, 0, row, "audio", title)
	row++
	row = drawBar(screen, row, "gain", u.Audio.MasterGain, tcell.ColorTeal, label)
	row = drawBar(screen, row, "bright", u.Audio.Brightness, tcell.ColorTeal, label)
	row = drawBar(screen, row, "motion", u.Audio.Motion, tcell.ColorTeal, label)
	row = drawBar(screen, row, "texture", u.Audio.Texture, tcell.ColorTeal, label)
	putString(screen, 0, row,
		fmt.Sprintf("  base %6.1f Hz   detune %.4f", u.Audio.BaseFreqHz, u.Audio.DetuneRatio), label)
	row += 2

	putString(screen, 0, row,
		fmt.Sprintf("intensity %.1f  [p]ulse [s]tir [c]alm [h]eat [t]ense  +/- adjust  [q]uit", intensity), dim)

	screen.Show()
}

func drawBar(screen tcell.Screen, row int, name string, value float64, color tcell.Color, label tcell.Style) int {
	putString(screen, 2, row, fmt.Sprintf("%-8s", name), label)
	filled := int(clampUnit(value)*barWidth + 0.5)
	barStyle := tcell.StyleDefault.Foreground(color)
	for i := 0; i < barWidth; i++ {
		ch := '·'
		if i < filled {
			ch = '█'
		}
		screen.SetContent(11+i, row, ch, nil, barStyle)
	}
	putString(screen, 12+barWidth, row, fmt.Sprintf("%.3f", value), label)
	return row + 1
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range s {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
