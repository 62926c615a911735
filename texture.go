package grove

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// TextureCallbacks observe an asynchronous texture load. Every callback is
// optional and runs on the loader's goroutine; post a Command to the Stage to
// touch scene state from one.
type TextureCallbacks struct {
	OnStart    func(name string)
	OnProgress func(name string, loaded, total int64)
	OnError    func(name string, err error)
	OnComplete func(name string, img image.Image)
}

// TextureLoader decodes PNG, JPEG, GIF, BMP and WebP images from a file
// system in the background.
type TextureLoader struct {
	FS fs.FS

	wg sync.WaitGroup
}

// NewTextureLoader creates a loader reading from fsys.
func NewTextureLoader(fsys fs.FS) *TextureLoader {
	return &TextureLoader{FS: fsys}
}

// Load starts decoding name and returns immediately.
func (l *TextureLoader) Load(name string, cb TextureCallbacks) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := l.decode(name, cb)
		if err != nil {
			if cb.OnError != nil {
				cb.OnError(name, err)
			}
			return
		}
		if cb.OnComplete != nil {
			cb.OnComplete(name, img)
		}
	}()
}

// Wait blocks until every started load has finished.
func (l *TextureLoader) Wait() {
	l.wg.Wait()
}

func (l *TextureLoader) decode(name string, cb TextureCallbacks) (image.Image, error) {
	if cb.OnStart != nil {
		cb.OnStart(name)
	}
	if l.FS == nil {
		return nil, fmt.Errorf("load texture %s: no file system", name)
	}
	f, err := l.FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	defer f.Close()

	var total int64 = -1
	if st, err := f.Stat(); err == nil {
		total = st.Size()
	}
	var r io.Reader = f
	if cb.OnProgress != nil {
		r = &progressReader{r: f, name: name, total: total, fn: cb.OnProgress}
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", name, err)
	}
	return img, nil
}

// progressReader reports cumulative bytes read.
type progressReader struct {
	r      io.Reader
	name   string
	loaded int64
	total  int64
	fn     func(name string, loaded, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		p.fn(p.name, p.loaded, p.total)
	}
	return n, err
}

// LoggingCallbacks returns callbacks that only log through Logger.
func LoggingCallbacks() TextureCallbacks {
	return TextureCallbacks{
		OnStart: func(name string) {
			Logger().Info("texture loading", "name", name)
		},
		OnProgress: func(name string, loaded, total int64) {
			Logger().Debug("texture progress", "name", name, "loaded", loaded, "total", total)
		},
		OnError: func(name string, err error) {
			Logger().Warn("texture failed", "name", name, "err", err)
		},
		OnComplete: func(name string, img image.Image) {
			b := img.Bounds()
			Logger().Info("texture loaded", "name", name, "width", b.Dx(), "height", b.Dy())
		},
	}
}
