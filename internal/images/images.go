// Package images acquires product photos from the camera or the gallery and
// stores them in the local media directory.
package images

import (
	"context"
	"errors"
	"io"
	"sync"

	applog "storekeeper/internal/log"
)

type Kind int

const (
	Camera Kind = iota
	Gallery
)

func (k Kind) String() string {
	if k == Camera {
		return "camera"
	}
	return "gallery"
}

// KindFromString maps "camera" and "gallery" to a Kind.
func KindFromString(s string) (Kind, bool) {
	switch s {
	case "camera":
		return Camera, true
	case "gallery":
		return Gallery, true
	}
	return 0, false
}

type PermissionStatus int

const (
	Undetermined PermissionStatus = iota
	Granted
	Denied
)

// Permissions reports and requests access to a picker.
type Permissions interface {
	Status(ctx context.Context, k Kind) PermissionStatus
	// Request prompts the user. It is only called while the status is
	// Undetermined.
	Request(ctx context.Context, k Kind) PermissionStatus
}

// Asset is a picked image before import.
type Asset struct {
	Name string
	Body io.ReadCloser
}

// ErrCanceled is returned by a Source when the user dismissed the picker.
var ErrCanceled = errors.New("images: picker canceled")

type Source interface {
	Acquire(ctx context.Context, k Kind) (Asset, error)
}

// Helper is the photo surface used by the product screens.
type Helper struct {
	perms    Permissions
	source   Source
	importer *Importer
}

func NewHelper(perms Permissions, source Source, importer *Importer) *Helper {
	return &Helper{perms: perms, source: source, importer: importer}
}

// TakePhoto returns a local reference to a new photo, or ok == false when
// permission is denied, the user cancels, or the photo cannot be stored.
func (h *Helper) TakePhoto(ctx context.Context) (uri string, ok bool) {
	return h.acquire(ctx, Camera)
}

// PickFromGallery behaves like TakePhoto for the photo library.
func (h *Helper) PickFromGallery(ctx context.Context) (uri string, ok bool) {
	return h.acquire(ctx, Gallery)
}

// Acquire dispatches on k.
func (h *Helper) Acquire(ctx context.Context, k Kind) (string, bool) {
	return h.acquire(ctx, k)
}

func (h *Helper) acquire(ctx context.Context, k Kind) (string, bool) {
	if !h.permitted(ctx, k) {
		applog.Info(nil, "image.permission.denied", map[string]any{"source": k.String()})
		return "", false
	}
	asset, err := h.source.Acquire(ctx, k)
	if errors.Is(err, ErrCanceled) {
		return "", false
	}
	if err != nil {
		applog.Error(nil, "image.acquire.fail", err, map[string]any{"source": k.String()})
		return "", false
	}
	defer asset.Body.Close()

	uri, err := h.importer.Import(asset)
	if err != nil {
		applog.Error(nil, "image.import.fail", err, map[string]any{"source": k.String(), "name": asset.Name})
		return "", false
	}
	return uri, true
}

func (h *Helper) permitted(ctx context.Context, k Kind) bool {
	switch h.perms.Status(ctx, k) {
	case Granted:
		return true
	case Undetermined:
		return h.perms.Request(ctx, k) == Granted
	}
	return false
}

// StaticPermissions holds a fixed status per kind. An undetermined kind is
// resolved to Answer on its first Request and keeps that status afterwards.
type StaticPermissions struct {
	mu       sync.Mutex
	statuses map[Kind]PermissionStatus
	Answer   PermissionStatus
	prompts  int
}

func NewStaticPermissions(camera, gallery, answer PermissionStatus) *StaticPermissions {
	return &StaticPermissions{
		statuses: map[Kind]PermissionStatus{Camera: camera, Gallery: gallery},
		Answer:   answer,
	}
}

func (p *StaticPermissions) Status(_ context.Context, k Kind) PermissionStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statuses[k]
}

func (p *StaticPermissions) Request(_ context.Context, k Kind) PermissionStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts++
	if p.statuses[k] == Undetermined {
		p.statuses[k] = p.Answer
	}
	return p.statuses[k]
}

// Prompts counts Request calls.
func (p *StaticPermissions) Prompts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prompts
}

// UploadSource yields one uploaded file. A nil Asset body means the user
// submitted without choosing a file.
type UploadSource struct {
	Asset Asset
}

func (s UploadSource) Acquire(_ context.Context, _ Kind) (Asset, error) {
	if s.Asset.Body == nil {
		return Asset{}, ErrCanceled
	}
	return s.Asset, nil
}
