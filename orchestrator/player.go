package orchestrator

import "time"

// AudioPlayer is the state of the page's audio element.
type AudioPlayer struct {
	Visible   bool
	SourceURL string
	Playing   bool
	Position  time.Duration
	Loaded    bool
}

// load points the player at url and shows it. Nothing plays until play.
func (p *AudioPlayer) load(url string) {
	p.SourceURL = url
	p.Playing = false
	p.Position = 0
	p.Loaded = true
	p.Visible = true
}

func (p *AudioPlayer) play() {
	if p.Loaded {
		p.Playing = true
	}
}

// reset hides the player, pauses it, rewinds it and drops its source.
func (p *AudioPlayer) reset() {
	p.Visible = false
	p.Playing = false
	p.Position = 0
	p.SourceURL = ""
	p.Loaded = false
}
