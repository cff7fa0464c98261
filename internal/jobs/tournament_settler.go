package jobs

import (
	"context"
	"log"
	"time"

	"lifemate-backend/internal/services"
)

// TournamentSettler automatically settles tournaments past their end time.
type TournamentSettler struct {
	tournamentService *services.TournamentService
	interval          time.Duration
	stopChan          chan struct{}
}

// NewTournamentSettler creates a new tournament settler job
func NewTournamentSettler(tournamentService *services.TournamentService, interval time.Duration) *TournamentSettler {
	return &TournamentSettler{
		tournamentService: tournamentService,
		interval:          interval,
		stopChan:          make(chan struct{}),
	}
}

// Start begins the settlement loop
func (ts *TournamentSettler) Start() {
	log.Printf("[TournamentSettler] Starting settlement job (interval: %v)", ts.interval)

	ticker := time.NewTicker(ts.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ts.settleEnded()
		case <-ts.stopChan:
			log.Println("[TournamentSettler] Stopping settlement job")
			return
		}
	}
}

// Stop stops the settlement loop
func (ts *TournamentSettler) Stop() {
	close(ts.stopChan)
}

func (ts *TournamentSettler) settleEnded() {
	ctx := context.Background()

	settled, err := ts.tournamentService.SettleEnded(ctx, time.Now())
	if err != nil {
		log.Printf("[TournamentSettler] Error settling tournaments: %v", err)
		return
	}
	if settled > 0 {
		log.Printf("[TournamentSettler] Settled %d tournaments", settled)
	}
}
