// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-shipsim/pkg/entity"
)

// HUDSystem shows the state of the first ship in the window title
type HUDSystem struct {
	title    string
	ships    func() []*entity.Ship
	interval float32
	elapsed  float32
	setTitle func(string)
	last     string
}

// NewHUDSystem creates a new HUD system refreshing four times a second
func NewHUDSystem(title string, ships func() []*entity.Ship) *HUDSystem {
	return &HUDSystem{
		title:    title,
		ships:    ships,
		interval: 0.25,
		setTitle: engo.SetTitle,
	}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the title once per interval
func (hud *HUDSystem) Update(dt float32) {
	hud.elapsed += dt
	if hud.elapsed < hud.interval {
		return
	}
	hud.elapsed = 0

	line := StatusLine(hud.title, hud.ships())
	if line != hud.last {
		hud.setTitle(line)
		hud.last = line
	}
}

// StatusLine formats the title, the ship count and the first ship's state
func StatusLine(title string, ships []*entity.Ship) string {
	var b strings.Builder
	b.WriteString(title)
	if len(ships) == 0 {
		return b.String()
	}

	s := ships[0]
	fmt.Fprintf(&b, " | ships %d | #%d pos (%.2f, %.2f) speed %.3f heading %.0f°",
		len(ships), s.ID, s.Body.Position.X(), s.Body.Position.Y(),
		s.Body.Speed(), mgl32.RadToDeg(s.Body.Heading))
	return b.String()
}
