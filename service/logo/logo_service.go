package logo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	entity "portal.GO/model/entity"
)

// Thumbnail box matching the portal's _120x60 logo variant.
const (
	thumbWidth  = 120
	thumbHeight = 60
)

// SyncResult holds counters from a logo sync run.
type SyncResult struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// LogoService downloads merchant logos into the data dir as <id>.png,
// normalized to the thumbnail box. Logos already on disk are left alone.
type LogoService struct {
	client *http.Client
	dir    string
}

func NewLogoService(dir string) *LogoService {
	return &LogoService{
		client: &http.Client{Timeout: 20 * time.Second},
		dir:    dir,
	}
}

// Path returns where a merchant's logo lives on disk.
func Path(dir, merchantID string) string {
	return filepath.Join(dir, merchantID+".png")
}

// Sync downloads every missing logo for the snapshot. Individual failures
// are counted and logged, never fatal.
func (s *LogoService) Sync(ctx context.Context, merchants []entity.Merchant) (*SyncResult, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, err
	}
	res := &SyncResult{}
	for i := range merchants {
		m := &merchants[i]
		if m.LogoURL == "" {
			res.Skipped++
			continue
		}
		path := Path(s.dir, m.MerchantID)
		if _, err := os.Stat(path); err == nil {
			res.Skipped++
			continue
		}
		if err := s.fetchOne(ctx, m.LogoURL, path); err != nil {
			log.Printf("logo %s (%s): %v", m.Name, m.MerchantID, err)
			res.Failed++
			continue
		}
		res.Downloaded++
	}
	return res, nil
}

func (s *LogoService) fetchOne(ctx context.Context, logoURL, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, logoURL, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	img, err := decode(data)
	if err != nil {
		return err
	}
	thumb := imaging.Fit(img, thumbWidth, thumbHeight, imaging.Lanczos)
	return imaging.Save(thumb, path)
}

// decode handles the formats the portals serve: webp first (imaging does
// not know it), then whatever image/* registers.
func decode(data []byte) (image.Image, error) {
	if isWebP(data) {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data))
}

func isWebP(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}
