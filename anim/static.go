package anim

// One shot writes of the whole bar. They complete on the first Update,
// or repeat every Update when looping.

type allOnProgram struct{}

func (allOnProgram) step(e *Engine) bool {
	e.init = false
	for i := 0; i < e.segs; i++ {
		e.surf.SetPixel(i, true)
	}
	return true
}

type allOffProgram struct{}

func (allOffProgram) step(e *Engine) bool {
	e.init = false
	e.surf.Clear()
	return true
}

// SetAllOn lights the whole bar on the next Update.
func (e *Engine) SetAllOn() *Engine {
	e.begin()
	return e.start(allOnProgram{}, true, false, false)
}

// SetAllOff clears the whole bar on the next Update.
func (e *Engine) SetAllOff() *Engine {
	e.begin()
	return e.start(allOffProgram{}, true, false, false)
}

// SetAll lights or clears the whole bar on the next Update.
func (e *Engine) SetAll(on bool) *Engine {
	if on {
		return e.SetAllOn()
	}
	return e.SetAllOff()
}
