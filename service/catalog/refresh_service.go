package catalog

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"time"

	"gorm.io/gorm"

	"portal.GO/config"
	catalogRepo "portal.GO/model/repository/catalog"
	lockRepo "portal.GO/model/repository/lock"
	stateRepo "portal.GO/model/repository/state"
)

// Status is the freshness state of a brand's snapshot.
type Status int

const (
	// Fresh: snapshot age is within the TTL.
	Fresh Status = iota
	// StaleServingCache: snapshot is past TTL (or absent) but still served.
	StaleServingCache
	// Refreshing: a refresh job holds the brand's lock right now.
	Refreshing
)

// Launcher starts a background refresh for a brand. The CLI re-execs itself
// as a detached process; the server runs a goroutine.
type Launcher func(brandKey string)

// RefreshService decides when a brand's catalog is stale and runs the
// refresh. The interactive query path only ever calls EnsureFresh, which
// never blocks: staleness schedules work, it does not gate results.
type RefreshService struct {
	catalog *catalogRepo.CatalogRepository
	state   *stateRepo.StateRepository
	locks   *lockRepo.LockRepository
	fetcher *FetchService
	ttl     time.Duration
	launch  Launcher
}

func NewRefreshService(db *gorm.DB) *RefreshService {
	config.LoadAppConfig()
	s := &RefreshService{
		catalog: catalogRepo.NewCatalogRepository(db),
		state:   stateRepo.NewStateRepository(db),
		locks:   lockRepo.NewLockRepository(db),
		fetcher: NewFetchService(),
		ttl:     config.AppConfig.RefreshTTL,
	}
	s.launch = func(brandKey string) {
		go func() {
			if err := s.Refresh(context.Background(), brandKey); err != nil {
				log.Printf("background refresh %s: %v", brandKey, err)
			}
		}()
	}
	return s
}

// SetLauncher overrides how background refreshes are started.
func (s *RefreshService) SetLauncher(l Launcher) {
	s.launch = l
}

// SetFetcher overrides the fetch backend (tests).
func (s *RefreshService) SetFetcher(f *FetchService) {
	s.fetcher = f
}

// SetTTL overrides the staleness threshold (tests).
func (s *RefreshService) SetTTL(ttl time.Duration) {
	s.ttl = ttl
}

// Status reports the brand's freshness state without side effects.
func (s *RefreshService) Status(brandKey string) Status {
	if s.locks.IsHeld(brandKey) {
		return Refreshing
	}
	last, ok := s.state.LastUpdate(brandKey)
	if !ok || time.Since(last) > s.ttl {
		return StaleServingCache
	}
	return Fresh
}

// EnsureFresh schedules a background refresh when the snapshot is stale and
// returns immediately in every case. A refresh already in flight is left
// alone; the lock inside Refresh guarantees at most one job per brand even
// when many staleness checks race.
func (s *RefreshService) EnsureFresh(brandKey string) Status {
	st := s.Status(brandKey)
	if st == StaleServingCache {
		s.launch(brandKey)
	}
	return st
}

// Refresh fetches and commits a new snapshot for the brand, regardless of
// TTL. When another refresh holds the lock this is a no-op, not an error.
// On fetch failure the previous snapshot and timestamp stay untouched.
func (s *RefreshService) Refresh(ctx context.Context, brandKey string) error {
	brand, err := config.GetBrand(brandKey)
	if err != nil {
		return err
	}

	ok, err := s.locks.TryAcquire(brandKey)
	if err != nil {
		return fmt.Errorf("refresh lock: %w", err)
	}
	if !ok {
		log.Printf("refresh %s: already running, skipping", brandKey)
		return nil
	}
	defer func() {
		if err := s.locks.Release(brandKey); err != nil {
			log.Printf("refresh %s: release lock: %v", brandKey, err)
		}
	}()

	snap, err := s.fetcher.Fetch(ctx, brand)
	if err != nil {
		// previous snapshot keeps serving; failure is diagnostics only
		log.Printf("refresh %s: %v", brandKey, err)
		return err
	}
	if err := s.catalog.ReplaceSnapshot(brandKey, snap.Merchants, snap.RefreshedAt); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	log.Printf("refresh %s: %d merchants", brandKey, len(snap.Merchants))
	return nil
}

// DetachedLauncher re-execs the current binary as an independent refresh
// process, the cross-invocation background job for short-lived CLI calls.
func DetachedLauncher() Launcher {
	return func(brandKey string) {
		exe, err := os.Executable()
		if err != nil {
			log.Printf("background refresh: resolve executable: %v", err)
			return
		}
		cmd := exec.Command(exe, "stores:update", "--brand", brandKey)
		cmd.Stdout = nil
		cmd.Stderr = nil
		if err := cmd.Start(); err != nil {
			log.Printf("background refresh: start: %v", err)
			return
		}
		// the child outlives this invocation
		_ = cmd.Process.Release()
	}
}
