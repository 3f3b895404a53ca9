package service

import (
	"log"
	"time"

	"github.com/nazdrin/inventory-sub001/internal/model"
	"github.com/nazdrin/inventory-sub001/internal/repository"
)

// Scheduler polls enterprise settings and dispatches due tenants to the
// pipeline, one kind per scheduler instance, sequentially within a tick.
// A failed enterprise is logged and the loop moves on; only an unreachable
// database abandons the whole tick.
type Scheduler struct {
	kind        model.RecordKind
	interval    time.Duration
	enterprises repository.EnterpriseRepository
	pipeline    *Pipeline
	ping        func() error
	now         func() time.Time
}

func NewScheduler(kind model.RecordKind, enterprises repository.EnterpriseRepository, pipeline *Pipeline, ping func() error) *Scheduler {
	return &Scheduler{
		kind:        kind,
		interval:    time.Minute,
		enterprises: enterprises,
		pipeline:    pipeline,
		ping:        ping,
		now:         time.Now,
	}
}

// Run loops forever. Start it in its own goroutine.
func (s *Scheduler) Run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick()
	for range ticker.C {
		s.Tick()
	}
}

// Tick performs one selection-and-dispatch pass.
func (s *Scheduler) Tick() {
	if s.ping != nil {
		if err := s.ping(); err != nil {
			log.Printf("scheduler[%s]: database unreachable, skipping pass: %v", s.kind, err)
			return
		}
	}

	enterprises, err := s.enterprises.FindAll()
	if err != nil {
		log.Printf("scheduler[%s]: cannot list enterprises, skipping pass: %v", s.kind, err)
		return
	}

	for i := range enterprises {
		e := &enterprises[i]
		if !Due(e, s.kind, s.now()) {
			continue
		}
		if !s.pipeline.Supports(e.DataFormat) {
			log.Printf("scheduler[%s]: enterprise %s: unsupported data format %q, skipping", s.kind, e.Code, e.DataFormat)
			continue
		}
		if err := s.pipeline.Run(e.Code, s.kind); err != nil {
			// containment boundary: the pipeline already logged and
			// published the failure, siblings still run
			continue
		}
	}
}

// Due reports whether an enterprise's feed is due for the given kind: the
// cadence is positive and the last upload is either absent or old enough.
func Due(e *model.EnterpriseSettings, kind model.RecordKind, now time.Time) bool {
	frequency := e.UploadFrequency(kind)
	if frequency <= 0 {
		return false
	}
	last := e.LastUpload(kind)
	if last == nil {
		return true
	}
	return !now.Before(last.Add(time.Duration(frequency) * time.Minute))
}
