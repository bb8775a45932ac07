package assets

import (
	"context"
	"image"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/semaphore"

	"desk-room/scene"
)

// Loader reads textures and models in the background. Results are applied
// to the scene only through the Queue, so scene state is never touched off
// the main thread.
type Loader struct {
	// Dir is prepended to relative asset paths.
	Dir string

	// DecodeImage and LoadModel do the blocking work; they default to the
	// scene package readers.
	DecodeImage func(path string) (*image.RGBA, error)
	LoadModel   func(path string) (*scene.Node, error)

	queue *Queue
	sem   *semaphore.Weighted
	wg    sync.WaitGroup

	mu       sync.RWMutex
	textures map[string]*scene.Texture
}

// NewLoader returns a loader resolving paths against dir that runs at most
// workers decodes at once.
func NewLoader(dir string, workers int, queue *Queue) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{
		Dir:         dir,
		DecodeImage: scene.DecodeImageFile,
		LoadModel:   scene.LoadModel,
		queue:       queue,
		sem:         semaphore.NewWeighted(int64(workers)),
		textures:    make(map[string]*scene.Texture),
	}
}

func (l *Loader) Queue() *Queue {
	return l.queue
}

func (l *Loader) resolve(path string) string {
	if l.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.Dir, path)
}

// Texture returns the handle for path, starting a decode the first time a
// path is seen. The handle has no pixels until the decode result is
// drained; on failure it stays empty and the error is logged.
func (l *Loader) Texture(path string) *scene.Texture {
	l.mu.RLock()
	if tex, ok := l.textures[path]; ok {
		l.mu.RUnlock()
		return tex
	}
	l.mu.RUnlock()

	l.mu.Lock()
	if tex, ok := l.textures[path]; ok {
		l.mu.Unlock()
		return tex
	}
	tex := scene.NewTexture(path)
	l.textures[path] = tex
	l.mu.Unlock()

	l.spawn(func() {
		img, err := l.DecodeImage(l.resolve(path))
		if err != nil {
			slog.Warn("texture load failed", "path", path, "err", err)
			return
		}
		l.queue.Push(func() {
			tex.SetImage(img)
			slog.Debug("texture loaded", "path", path, "width", tex.Width, "height", tex.Height)
		})
	})
	return tex
}

// Model loads a glTF or OBJ model and calls onLoad with its root on the main
// thread. onLoad is never called if loading fails.
func (l *Loader) Model(path string, onLoad func(*scene.Node)) {
	l.spawn(func() {
		root, err := l.LoadModel(l.resolve(path))
		if err != nil {
			slog.Warn("model load failed", "path", path, "err", err)
			return
		}
		l.queue.Push(func() {
			onLoad(root)
			slog.Debug("model loaded", "path", path)
		})
	})
}

func (l *Loader) spawn(work func()) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := l.sem.Acquire(context.Background(), 1); err != nil {
			return
		}
		defer l.sem.Release(1)
		work()
	}()
}

// Wait blocks until every started load has finished and queued its result.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Textures returns the number of distinct texture paths requested.
func (l *Loader) Textures() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.textures)
}
