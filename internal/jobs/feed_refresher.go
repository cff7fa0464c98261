package jobs

import (
	"context"
	"log"
	"time"

	"lifemate-backend/internal/services"
)

// FeedRefresher periodically pulls fresh postings from the job feed.
type FeedRefresher struct {
	jobBoard *services.JobBoardService
}

func NewFeedRefresher(jobBoard *services.JobBoardService) *FeedRefresher {
	return &FeedRefresher{jobBoard: jobBoard}
}

// Start begins the periodic refresh loop
func (fr *FeedRefresher) Start(interval time.Duration) {
	go func() {
		// Run immediately on start
		ctx := context.Background()
		if stored, err := fr.jobBoard.RefreshFromFeed(ctx); err != nil {
			log.Printf("[FeedRefresher] Initial refresh error: %v", err)
		} else {
			log.Printf("[FeedRefresher] Stored %d postings", stored)
		}

		// Then run periodically
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if stored, err := fr.jobBoard.RefreshFromFeed(ctx); err != nil {
				log.Printf("[FeedRefresher] Refresh error: %v", err)
			} else {
				log.Printf("[FeedRefresher] Stored %d postings", stored)
			}
		}
	}()
}
