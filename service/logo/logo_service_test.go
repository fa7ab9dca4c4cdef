package logo

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	entity "portal.GO/model/entity"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestPath(t *testing.T) {
	got := Path("/data/logos", "42")
	want := filepath.Join("/data/logos", "42.png")
	if got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestIsWebP(t *testing.T) {
	webpHeader := []byte("RIFF\x00\x00\x00\x00WEBPVP8 ")
	if !isWebP(webpHeader) {
		t.Error("RIFF/WEBP header not recognized")
	}
	if isWebP(pngBytes(t, 4, 4)) {
		t.Error("png misdetected as webp")
	}
	if isWebP([]byte("RIFF")) {
		t.Error("truncated header misdetected")
	}
}

func TestSync_DownloadsAndNormalizes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngBytes(t, 240, 120))
	}))
	defer ts.Close()

	dir := t.TempDir()
	svc := NewLogoService(dir)
	merchants := []entity.Merchant{
		{MerchantID: "1", Name: "Apple", LogoURL: ts.URL + "/1.png"},
		{MerchantID: "2", Name: "NoLogo"},
	}

	res, err := svc.Sync(context.Background(), merchants)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if res.Downloaded != 1 || res.Skipped != 1 || res.Failed != 0 {
		t.Errorf("result = %+v, want 1 downloaded, 1 skipped", res)
	}

	img, err := imaging.Open(Path(dir, "1"))
	if err != nil {
		t.Fatalf("open saved logo: %v", err)
	}
	b := img.Bounds()
	if b.Dx() > 120 || b.Dy() > 60 {
		t.Errorf("logo not fitted: %dx%d", b.Dx(), b.Dy())
	}
}

func TestSync_ExistingLogoIsSkipped(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write(pngBytes(t, 120, 60))
	}))
	defer ts.Close()

	dir := t.TempDir()
	if err := os.WriteFile(Path(dir, "1"), pngBytes(t, 120, 60), 0644); err != nil {
		t.Fatalf("seed logo: %v", err)
	}

	svc := NewLogoService(dir)
	res, err := svc.Sync(context.Background(), []entity.Merchant{
		{MerchantID: "1", Name: "Apple", LogoURL: ts.URL + "/1.png"},
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if res.Skipped != 1 || hits != 0 {
		t.Errorf("existing logo re-downloaded: %+v, hits %d", res, hits)
	}
}

func TestSync_FailuresAreCountedNotFatal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(pngBytes(t, 120, 60))
	}))
	defer ts.Close()

	dir := t.TempDir()
	svc := NewLogoService(dir)
	res, err := svc.Sync(context.Background(), []entity.Merchant{
		{MerchantID: "1", Name: "Broken", LogoURL: ts.URL + "/broken.png"},
		{MerchantID: "2", Name: "Fine", LogoURL: ts.URL + "/fine.png"},
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if res.Failed != 1 || res.Downloaded != 1 {
		t.Errorf("result = %+v, want 1 failed and 1 downloaded", res)
	}
	if _, err := os.Stat(Path(dir, "1")); err == nil {
		t.Error("failed download left a file behind")
	}
}
