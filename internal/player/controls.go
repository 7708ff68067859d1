package player

// Stop stops playback and releases the file. The clock returns to idle.
func (p *Player) Stop() {
	if p.state == Stopped {
		return
	}

	p.generation.Add(1)
	p.sink.Clear()

	if p.stream != nil {
		if p.stream.skipped > 0 {
			p.logger.Warn("skipped undecodable packets",
				"path", p.trackInfo.Path,
				"count", p.stream.skipped)
		}
		if err := p.stream.Err(); err != nil {
			p.logger.Warn("stream ended early", "path", p.trackInfo.Path, "error", err)
		}
		p.stream.Close()
		p.stream = nil
	}
	if p.format != nil {
		p.format.Close()
		p.format = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}

	p.ctrl = nil
	p.volume = nil
	p.trackInfo = nil
	p.duration = probeUnknown
	p.clock.Stop()
	p.setState(Stopped)
}

// Pause pauses playback and the clock.
func (p *Player) Pause() {
	if p.state != Playing || p.ctrl == nil {
		return
	}
	p.sink.Lock()
	p.ctrl.Paused = true
	p.sink.Unlock()
	p.clock.Pause()
	p.setState(Paused)
}

// Resume resumes paused playback and the clock.
func (p *Player) Resume() {
	if p.state != Paused || p.ctrl == nil {
		return
	}
	p.sink.Lock()
	p.ctrl.Paused = false
	p.sink.Unlock()
	p.clock.Resume()
	p.setState(Playing)
}

// Toggle toggles between playing and paused states.
func (p *Player) Toggle() {
	switch p.state {
	case Playing:
		p.Pause()
	case Paused:
		p.Resume()
	case Stopped:
		// Nothing to toggle when stopped
	}
}
