package kinetic

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// SceneWatcher reloads a scene file whenever it changes on disk. Reload
// errors go to Errors; the previous scene stays live until a load succeeds.
type SceneWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// WatchScene watches path and invokes onChange with each freshly loaded
// scene. The callback runs on the watcher goroutine.
func WatchScene(path string, onChange func(*Scene)) (*SceneWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch scene: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch scene: %w", err)
	}

	sw := &SceneWatcher{
		watcher: w,
		path:    filepath.Clean(path),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go sw.run(onChange)
	return sw, nil
}

func (sw *SceneWatcher) Close() error {
	var err error
	sw.once.Do(func() {
		close(sw.closeCh)
		err = sw.watcher.Close()
	})
	return err
}

func (sw *SceneWatcher) run(onChange func(*Scene)) {
	var last time.Time
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != sw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			now := time.Now()
			if now.Sub(last) < watchDebounce {
				continue
			}
			last = now

			scene, err := LoadSceneFile(sw.path)
			if err != nil {
				select {
				case sw.Errors <- err:
				default:
				}
				continue
			}
			onChange(scene)
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case sw.Errors <- err:
			default:
			}
		case <-sw.closeCh:
			return
		}
	}
}
