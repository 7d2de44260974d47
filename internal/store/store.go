// Package store owns the canonical portfolio collection. It is the only
// stateful component: every mutation replaces whole records (copy-on-write)
// and persists the full state snapshot through an injected persistence port.
package store

import (
	"encoding/json"
	"sync"
	"time"

	"folio/internal/logger"
	"folio/internal/models"
)

// StorageKey is the fixed key the serialized state snapshot lives under.
const StorageKey = "portfolio-storage"

// SnapshotStore is the persistence port. Failures to persist are logged and
// swallowed; the in-memory state stays authoritative for the session.
type SnapshotStore interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, data []byte) error
}

// snapshot is the persisted state shape.
type snapshot struct {
	Portfolios        []models.Portfolio `json:"portfolios"`
	SelectedPortfolio *models.Portfolio  `json:"selectedPortfolio"`
}

// PortfolioUpdate carries the fields a partial portfolio update may replace.
type PortfolioUpdate struct {
	Name *string `json:"name"`
}

// Store is the process-wide portfolio state container. Each operation is
// atomic with respect to its own invocation. The selected portfolio is kept
// as an id and re-resolved by lookup after every mutation, never held as a
// cached reference.
type Store struct {
	mu         sync.Mutex
	portfolios []models.Portfolio
	selectedID string
	snapshots  SnapshotStore
}

// New creates a store hydrated from the snapshot persisted under StorageKey,
// if one exists. A corrupt snapshot is logged and discarded, starting empty.
func New(snapshots SnapshotStore) *Store {
	s := &Store{snapshots: snapshots}
	s.hydrate()
	return s
}

func (s *Store) hydrate() {
	data, ok, err := s.snapshots.Load(StorageKey)
	if err != nil {
		logger.Get().Warnw("failed to load state snapshot", "error", err)
		return
	}
	if !ok {
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.Get().Warnw("discarding corrupt state snapshot", "error", err)
		return
	}

	s.portfolios = snap.Portfolios
	if snap.SelectedPortfolio != nil {
		// Restore selection only if it still resolves against the collection.
		if _, ok := s.findLocked(snap.SelectedPortfolio.ID); ok {
			s.selectedID = snap.SelectedPortfolio.ID
		}
	}
}

// persist writes the full state snapshot. Called with the lock held.
func (s *Store) persist() {
	snap := snapshot{Portfolios: s.portfolios}
	if p, ok := s.findLocked(s.selectedID); ok {
		sel := p.Clone()
		snap.SelectedPortfolio = &sel
	}

	data, err := json.Marshal(snap)
	if err != nil {
		logger.Get().Errorw("failed to serialize state snapshot", "error", err)
		return
	}
	if err := s.snapshots.Save(StorageKey, data); err != nil {
		logger.Get().Errorw("failed to persist state snapshot", "error", err)
	}
}

// findLocked resolves a portfolio by id. Called with the lock held.
func (s *Store) findLocked(id string) (models.Portfolio, bool) {
	if id == "" {
		return models.Portfolio{}, false
	}
	for _, p := range s.portfolios {
		if p.ID == id {
			return p, true
		}
	}
	return models.Portfolio{}, false
}

// Portfolios returns a deep copy of the full collection in insertion order.
func (s *Store) Portfolios() []models.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Portfolio, len(s.portfolios))
	for i, p := range s.portfolios {
		out[i] = p.Clone()
	}
	return out
}

// Portfolio returns a deep copy of the portfolio matching id.
func (s *Store) Portfolio(id string) (models.Portfolio, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findLocked(id)
	if !ok {
		return models.Portfolio{}, false
	}
	return p.Clone(), true
}

// Selected returns a deep copy of the currently selected portfolio.
func (s *Store) Selected() (models.Portfolio, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findLocked(s.selectedID)
	if !ok {
		return models.Portfolio{}, false
	}
	return p.Clone(), true
}

// AddPortfolio appends the portfolio to the collection and selects it.
func (s *Store) AddPortfolio(p models.Portfolio) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.portfolios = append(s.portfolios, p.Clone())
	s.selectedID = p.ID
	s.persist()
}

// UpdatePortfolio replaces the fields present in upd on the portfolio
// matching id and refreshes UpdatedAt. Unknown ids resolve to unchanged
// state. Returns the updated record.
func (s *Store) UpdatePortfolio(id string, upd PortfolioUpdate) (models.Portfolio, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.portfolios {
		if p.ID != id {
			continue
		}
		next := p.Clone()
		if upd.Name != nil {
			next.Name = *upd.Name
		}
		next.UpdatedAt = time.Now().UTC()
		s.portfolios[i] = next
		// Selection re-resolves to the updated record.
		s.selectedID = id
		s.persist()
		return next.Clone(), true
	}
	return models.Portfolio{}, false
}

// DeletePortfolio removes the portfolio matching id. The current selection
// is cleared unconditionally, even when a different portfolio was selected;
// this mirrors the long-standing behavior the UI depends on.
func (s *Store) DeletePortfolio(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.portfolios {
		if p.ID != id {
			continue
		}
		s.portfolios = append(s.portfolios[:i], s.portfolios[i+1:]...)
		s.selectedID = ""
		s.persist()
		return true
	}
	return false
}

// SelectPortfolio sets the selection to the portfolio matching id, or to
// none when id is empty or unknown.
func (s *Store) SelectPortfolio(id string) (models.Portfolio, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findLocked(id)
	if ok {
		s.selectedID = id
	} else {
		s.selectedID = ""
	}
	s.persist()
	if !ok {
		return models.Portfolio{}, false
	}
	return p.Clone(), true
}

// AddAsset appends the asset to the named portfolio's asset list.
func (s *Store) AddAsset(portfolioID string, a models.Asset) (models.Portfolio, bool) {
	return s.mutateAssets(portfolioID, func(assets []models.Asset) []models.Asset {
		return append(assets, a)
	})
}

// RemoveAsset removes the asset matching assetID from the named portfolio.
func (s *Store) RemoveAsset(portfolioID, assetID string) (models.Portfolio, bool) {
	return s.mutateAssets(portfolioID, func(assets []models.Asset) []models.Asset {
		out := assets[:0]
		for _, a := range assets {
			if a.ID != assetID {
				out = append(out, a)
			}
		}
		return out
	})
}

// UpdateAsset replaces the asset matching a.ID in the named portfolio.
func (s *Store) UpdateAsset(portfolioID string, a models.Asset) (models.Portfolio, bool) {
	return s.mutateAssets(portfolioID, func(assets []models.Asset) []models.Asset {
		for i := range assets {
			if assets[i].ID == a.ID {
				assets[i] = a
			}
		}
		return assets
	})
}

// mutateAssets applies fn to a copy of the named portfolio's asset list,
// refreshes UpdatedAt, and re-resolves the selection. Unknown portfolio
// ids resolve to unchanged state.
func (s *Store) mutateAssets(portfolioID string, fn func([]models.Asset) []models.Asset) (models.Portfolio, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.portfolios {
		if p.ID != portfolioID {
			continue
		}
		next := p.Clone()
		next.Assets = fn(next.Assets)
		next.UpdatedAt = time.Now().UTC()
		s.portfolios[i] = next
		s.selectedID = portfolioID
		s.persist()
		return next.Clone(), true
	}
	return models.Portfolio{}, false
}

// ImportPortfolios appends the given portfolios to the collection verbatim,
// without de-duplication against existing ids. The current selection is
// left untouched.
func (s *Store) ImportPortfolios(portfolios []models.Portfolio) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range portfolios {
		s.portfolios = append(s.portfolios, p.Clone())
	}
	s.persist()
}
