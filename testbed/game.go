package testbed

import (
	"context"

	"github.com/spaghettifunk/heritage/engine"
	"github.com/spaghettifunk/heritage/engine/config"
	"github.com/spaghettifunk/heritage/engine/core"
	"github.com/spaghettifunk/heritage/engine/monument"
)

// TourGame cycles through the catalog, showing each monument for a fixed
// number of seconds.
type TourGame struct {
	*engine.Game
}

type tourState struct {
	engine   *engine.Engine
	entries  []monument.Entry
	index    int
	dwell    float64
	elapsed  float64
	width    uint32
	height   uint32
	visited  int
	maxVisit int
}

// NewTourGame builds a tour that spends dwell seconds on each entry. With
// loops > 0 the engine quits after that many passes over the catalog.
func NewTourGame(cfg *config.Config, headless bool, dwell float64, loops int) *TourGame {
	tg := &TourGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				Config:   cfg,
				Headless: headless,
			},
			State: &tourState{
				dwell:    dwell,
				maxVisit: loops,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TourGame) state() *tourState {
	return g.State.(*tourState)
}

func (g *TourGame) Initialize(e *engine.Engine) error {
	core.LogInfo("starting monument tour...")
	s := g.state()
	s.engine = e
	s.entries = e.Catalog().Monuments
	if s.maxVisit > 0 {
		s.maxVisit *= len(s.entries)
	}
	return g.show()
}

func (g *TourGame) Update(deltaTime float64) error {
	s := g.state()
	s.elapsed += deltaTime
	if s.elapsed < s.dwell {
		return nil
	}
	s.elapsed = 0
	s.index = (s.index + 1) % len(s.entries)
	if s.maxVisit > 0 && s.visited >= s.maxVisit {
		s.engine.Quit()
		return nil
	}
	return g.show()
}

func (g *TourGame) show() error {
	s := g.state()
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[s.index]
	s.visited++
	d := entry.Descriptor
	core.LogInfo("now showing %s (%s, %s, %s)", d.Name, d.Location, d.Era, d.Style)
	return s.engine.ShowMonument(context.Background(), entry.Slug)
}

func (g *TourGame) OnResize(width uint32, height uint32) error {
	s := g.state()
	s.width = width
	s.height = height
	return nil
}

func (g *TourGame) Shutdown() error {
	s := g.state()
	core.LogInfo("tour finished after %d stops", s.visited)
	return nil
}
