package services

import (
	"log"
	"sync"
	"time"

	"cargolink/internal/db"
	"cargolink/internal/models"
)

// ReconcileService repairs the fan-out inconsistency window: a crash or a
// failed write between proposal creation (or acceptance) and its
// notification insert leaves a proposal with no notification. The worker
// regenerates those rows from proposal state; fanOut's dedupe key makes
// every retry idempotent.
type ReconcileService struct {
	queue   chan uint // Proposal IDs awaiting a fan-out retry
	pending map[uint]bool
	mu      sync.Mutex
}

var (
	reconcileService *ReconcileService
	reconcileOnce    sync.Once
)

// GetReconcileService returns the singleton reconciler and starts its
// worker on first use.
func GetReconcileService() *ReconcileService {
	reconcileOnce.Do(func() {
		reconcileService = &ReconcileService{
			queue:   make(chan uint, 1000),
			pending: make(map[uint]bool),
		}
		go reconcileService.worker()
	})
	return reconcileService
}

// Schedule queues a proposal for a fan-out retry. Duplicate IDs already in
// the queue are skipped.
func (s *ReconcileService) Schedule(proposalID uint) {
	s.mu.Lock()
	if s.pending[proposalID] {
		s.mu.Unlock()
		return
	}
	s.pending[proposalID] = true
	s.mu.Unlock()

	select {
	case s.queue <- proposalID:
	default:
		// Queue full; the periodic sweep will pick it up
		s.mu.Lock()
		delete(s.pending, proposalID)
		s.mu.Unlock()
		log.Printf("Reconcile queue full, deferring proposal %d to the sweep", proposalID)
	}
}

func (s *ReconcileService) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case proposalID := <-s.queue:
			batch = append(batch, proposalID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *ReconcileService) processBatch(proposalIDs []uint) {
	for _, proposalID := range proposalIDs {
		s.reconcileProposal(proposalID)

		s.mu.Lock()
		delete(s.pending, proposalID)
		s.mu.Unlock()
	}
}

// reconcileProposal re-runs the fan-out a proposal's current state calls
// for. Existing notifications are left untouched.
func (s *ReconcileService) reconcileProposal(proposalID uint) {
	var proposal models.Proposal
	if err := db.DB.First(&proposal, proposalID).Error; err != nil {
		log.Printf("Reconcile skipped, proposal %d not found", proposalID)
		return
	}

	if err := NotifyProposalCreated(&proposal); err != nil {
		log.Printf("Reconcile of proposal %d (created) failed: %v", proposalID, err)
	}
	if proposal.Status == models.StatusAccepted {
		if err := NotifyProposalAccepted(&proposal); err != nil {
			log.Printf("Reconcile of proposal %d (accepted) failed: %v", proposalID, err)
		}
	}
}

// StartPeriodicSweep scans for proposals whose expected notifications are
// missing and queues them, once per interval. Catches crashes where the
// in-process retry was lost too.
func (s *ReconcileService) StartPeriodicSweep(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			n, err := s.SweepOnce()
			if err != nil {
				log.Printf("Reconcile sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Reconcile sweep queued %d proposals", n)
			}
		}
	}()
}

// SweepOnce finds proposals missing a notification their state requires
// and schedules each. Returns how many were queued.
func (s *ReconcileService) SweepOnce() (int, error) {
	ids, err := findMissingFanOuts()
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		s.Schedule(id)
	}
	return len(ids), nil
}

// findMissingFanOuts returns the IDs of proposals whose expected
// notifications are absent, deduplicated.
func findMissingFanOuts() ([]uint, error) {
	var missing []models.Proposal

	// Missing creation fan-out
	err := db.DB.
		Where("NOT EXISTS (SELECT 1 FROM notifications n WHERE n.proposal_id = proposals.id AND n.event = ?)",
			models.EventProposalCreated).
		Find(&missing).Error
	if err != nil {
		return nil, err
	}

	// Accepted without the acceptance fan-out
	var missingAccepted []models.Proposal
	err = db.DB.
		Where("status = ?", models.StatusAccepted).
		Where("NOT EXISTS (SELECT 1 FROM notifications n WHERE n.proposal_id = proposals.id AND n.event = ?)",
			models.EventProposalAccepted).
		Find(&missingAccepted).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(missing)+len(missingAccepted))
	ids := make([]uint, 0, len(missing)+len(missingAccepted))
	for _, p := range append(missing, missingAccepted...) {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		ids = append(ids, p.ID)
	}
	return ids, nil
}
