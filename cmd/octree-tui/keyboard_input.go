package main

import (
	"sync"

	"github.com/eiannone/keyboard"
)

// SilentInputManager reads keyboard input in a background goroutine without
// interfering with the terminal's normal output, so a stats display can keep
// redrawing in the foreground.
type SilentInputManager struct {
	keys     map[rune]bool
	mutex    sync.RWMutex
	running  bool
	stopChan chan bool
}

// InputState is a snapshot of which demo commands were pressed since the last
// ClearKeys call.
type InputState struct {
	AddPoint  bool
	AddBox    bool
	RemoveOne bool
	Reset     bool
	Quit      bool
}

// NewSilentInputManager creates a new silent input manager.
func NewSilentInputManager() *SilentInputManager {
	return &SilentInputManager{
		keys:     make(map[rune]bool),
		stopChan: make(chan bool),
	}
}

// Start begins reading keyboard input in a separate goroutine.
func (sim *SilentInputManager) Start() error {
	if sim.running {
		return nil
	}
	if err := keyboard.Open(); err != nil {
		return err
	}
	sim.running = true

	go func() {
		for {
			select {
			case <-sim.stopChan:
				return
			default:
				char, key, err := keyboard.GetKey()
				if err != nil {
					continue
				}

				sim.mutex.Lock()
				if char != 0 {
					sim.keys[char] = true
				}
				if key == keyboard.KeyEsc {
					sim.keys['x'] = true
				}
				sim.mutex.Unlock()
			}
		}
	}()
	return nil
}

// Stop stops reading keyboard input.
func (sim *SilentInputManager) Stop() {
	if !sim.running {
		return
	}
	sim.running = false
	sim.stopChan <- true
	keyboard.Close()
}

// GetInputState returns the commands pressed since the last ClearKeys.
func (sim *SilentInputManager) GetInputState() InputState {
	sim.mutex.RLock()
	defer sim.mutex.RUnlock()

	return InputState{
		AddPoint:  sim.keys['p'] || sim.keys['P'],
		AddBox:    sim.keys['b'] || sim.keys['B'],
		RemoveOne: sim.keys['r'] || sim.keys['R'],
		Reset:     sim.keys['c'] || sim.keys['C'],
		Quit:      sim.keys['x'] || sim.keys['X'] || sim.keys['q'] || sim.keys['Q'],
	}
}

// ClearKeys clears all latched key states.
func (sim *SilentInputManager) ClearKeys() {
	sim.mutex.Lock()
	defer sim.mutex.Unlock()
	sim.keys = make(map[rune]bool)
}
