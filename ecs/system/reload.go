package system

import (
	"github.com/milk9111/tandem/ecs"
	"github.com/milk9111/tandem/prefabs"
)

// ReloadSystem drains the prefab watcher once per frame and hands changed
// paths to the callbacks on the game goroutine.
type ReloadSystem struct {
	watcher  *prefabs.Watcher
	onSpec   func(path string)
	onScript func(path string)
}

func NewReloadSystem(watcher *prefabs.Watcher, onSpec, onScript func(path string)) *ReloadSystem {
	return &ReloadSystem{watcher: watcher, onSpec: onSpec, onScript: onScript}
}

func (r *ReloadSystem) Update(w *ecs.World) {
	if r == nil || r.watcher == nil {
		return
	}
	for _, path := range r.watcher.Poll() {
		switch {
		case prefabs.IsScriptFile(path):
			if r.onScript != nil {
				r.onScript(path)
			}
		case prefabs.IsSpecFile(path):
			if r.onSpec != nil {
				r.onSpec(path)
			}
		}
	}
}
