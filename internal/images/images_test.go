package images_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storekeeper/internal/images"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func asset(b []byte) images.Asset {
	return images.Asset{Name: "pick.png", Body: io.NopCloser(bytes.NewReader(b))}
}

type stubSource struct {
	asset images.Asset
	err   error
	calls int
}

func (s *stubSource) Acquire(context.Context, images.Kind) (images.Asset, error) {
	s.calls++
	return s.asset, s.err
}

func TestImporter_CropsToSquareJPEG(t *testing.T) {
	dir := t.TempDir()
	im := images.NewImporter(dir, 1<<20)

	uri, err := im.Import(asset(pngBytes(t, 40, 20)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, images.PhotoDir+"/"))
	assert.True(t, strings.HasSuffix(uri, ".jpg"))

	f, err := os.Open(filepath.Join(dir, filepath.FromSlash(uri)))
	require.NoError(t, err)
	defer f.Close()
	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestImporter_RejectsNonImages(t *testing.T) {
	im := images.NewImporter(t.TempDir(), 1<<20)
	_, err := im.Import(asset([]byte("%PDF-1.4 not an image")))
	assert.Error(t, err)
}

func TestImporter_RejectsOversized(t *testing.T) {
	im := images.NewImporter(t.TempDir(), 16)
	_, err := im.Import(asset(pngBytes(t, 8, 8)))
	assert.Error(t, err)
}

func TestHelper_GrantedReturnsReference(t *testing.T) {
	perms := images.NewStaticPermissions(images.Granted, images.Granted, images.Denied)
	src := &stubSource{asset: asset(pngBytes(t, 10, 10))}
	h := images.NewHelper(perms, src, images.NewImporter(t.TempDir(), 1<<20))

	uri, ok := h.PickFromGallery(context.Background())
	assert.True(t, ok)
	assert.NotEmpty(t, uri)
	assert.Zero(t, perms.Prompts())
}

func TestHelper_PromptsWhenUndetermined(t *testing.T) {
	perms := images.NewStaticPermissions(images.Undetermined, images.Undetermined, images.Granted)
	src := &stubSource{asset: asset(pngBytes(t, 10, 10))}
	h := images.NewHelper(perms, src, images.NewImporter(t.TempDir(), 1<<20))

	_, ok := h.TakePhoto(context.Background())
	assert.True(t, ok)
	assert.Equal(t, 1, perms.Prompts())
	assert.Equal(t, images.Granted, perms.Status(context.Background(), images.Camera))
	assert.Equal(t, images.Undetermined, perms.Status(context.Background(), images.Gallery))
}

func TestHelper_DeniedIsAbsent(t *testing.T) {
	perms := images.NewStaticPermissions(images.Undetermined, images.Denied, images.Denied)
	src := &stubSource{asset: asset(pngBytes(t, 10, 10))}
	h := images.NewHelper(perms, src, images.NewImporter(t.TempDir(), 1<<20))

	uri, ok := h.TakePhoto(context.Background())
	assert.False(t, ok)
	assert.Empty(t, uri)
	_, ok = h.PickFromGallery(context.Background())
	assert.False(t, ok)
	assert.Zero(t, src.calls, "picker must not open without permission")
}

func TestHelper_CancelAndFailureAreAbsent(t *testing.T) {
	perms := images.NewStaticPermissions(images.Granted, images.Granted, images.Granted)
	imp := images.NewImporter(t.TempDir(), 1<<20)

	_, ok := images.NewHelper(perms, &stubSource{err: images.ErrCanceled}, imp).TakePhoto(context.Background())
	assert.False(t, ok)

	_, ok = images.NewHelper(perms, &stubSource{err: errors.New("camera busy")}, imp).TakePhoto(context.Background())
	assert.False(t, ok)

	_, ok = images.NewHelper(perms, &stubSource{asset: asset([]byte("garbage"))}, imp).PickFromGallery(context.Background())
	assert.False(t, ok)
}

func TestUploadSource_EmptyIsCanceled(t *testing.T) {
	_, err := images.UploadSource{}.Acquire(context.Background(), images.Gallery)
	assert.ErrorIs(t, err, images.ErrCanceled)
}

func TestKindFromString(t *testing.T) {
	k, ok := images.KindFromString("camera")
	assert.True(t, ok)
	assert.Equal(t, images.Camera, k)
	assert.Equal(t, "gallery", images.Gallery.String())
	_, ok = images.KindFromString("scanner")
	assert.False(t, ok)
}
