package history

import (
	"context"
	"log"
	"time"
)

// Pruner trims old delivery attempts once a day.
type Pruner struct {
	store  *Store
	days   int
	stopCh chan struct{}
}

func NewPruner(store *Store, days int) *Pruner {
	if days <= 0 {
		days = 30
	}
	return &Pruner{
		store:  store,
		days:   days,
		stopCh: make(chan struct{}),
	}
}

func (p *Pruner) Start() {
	go p.runDailyPrune()
}

func (p *Pruner) Stop() {
	close(p.stopCh)
}

func (p *Pruner) runDailyPrune() {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			removed, err := p.store.PruneOlderThan(context.Background(), p.days)
			if err != nil {
				log.Printf("[history] prune failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("[history] pruned %d delivery attempts older than %d days", removed, p.days)
			}
		}
	}
}
