package washly

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/washly/washly-go/cache"
	"github.com/washly/washly-go/domain"
	"github.com/washly/washly-go/pkg/logger"
	"github.com/washly/washly-go/store"
)

// BusinessService wraps the business endpoints plus the client-side
// registration draft that lets an interrupted sign-up wizard resume.
type BusinessService struct {
	c                *Client
	autosaveInterval time.Duration
}

// Mine returns the signed-in provider's business. A provider who has not
// registered one yet gets ErrBusinessRequired.
func (s *BusinessService) Mine(ctx context.Context) (*domain.Business, error) {
	var business domain.Business
	if ok, err := s.c.cache.GetJSON(ctx, keyMyBusiness, &business); err == nil && ok {
		return &business, nil
	}

	if err := s.c.get(ctx, "/businesses/my-business", &business); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return nil, ErrBusinessRequired
		}
		return nil, err
	}

	if err := s.c.cache.SetJSON(ctx, keyMyBusiness, &business, s.c.staleness.BusinessTTL); err != nil {
		logger.WarnContext(ctx, "Failed to cache business", "error", err)
	}
	return &business, nil
}

// Create registers the provider's business. One business per provider; the
// server rejects duplicates. The local registration draft is cleared on
// success.
func (s *BusinessService) Create(ctx context.Context, req domain.BusinessCreateRequest) (*domain.Business, error) {
	var business domain.Business
	if err := s.c.post(ctx, "/businesses", req, &business); err != nil {
		return nil, err
	}

	s.c.invalidate(ctx, keyMyBusiness)
	if err := s.ClearDraft(); err != nil {
		logger.WarnContext(ctx, "Failed to clear registration draft", "error", err)
	}
	return &business, nil
}

// Update applies a partial update to the business.
func (s *BusinessService) Update(ctx context.Context, id string, patch domain.BusinessPatch) (*domain.Business, error) {
	var business domain.Business
	if err := s.c.patch(ctx, "/businesses/"+id, patch, &business); err != nil {
		return nil, err
	}

	s.c.invalidate(ctx, keyMyBusiness)
	return &business, nil
}

// Services lists a business's catalog. Failures yield an empty list.
func (s *BusinessService) Services(ctx context.Context, businessID string) []domain.Service {
	key := cache.Key(keyBusinessServices, businessID)
	path := "/businesses/" + businessID + "/services"
	return cachedList[domain.Service](ctx, s.c, key, path, s.c.staleness.ServicesTTL)
}

// SaveDraft persists the registration wizard state locally.
func (s *BusinessService) SaveDraft(draft *domain.RegistrationDraft) error {
	draft.SavedAt = time.Now()
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	return s.c.store.Set(store.KeyBizDraft, string(data))
}

// LoadDraft returns the saved wizard state, or nil when none exists. A
// corrupt draft is dropped rather than surfaced.
func (s *BusinessService) LoadDraft() *domain.RegistrationDraft {
	data, ok := s.c.store.Get(store.KeyBizDraft)
	if !ok || data == "" {
		return nil
	}

	var draft domain.RegistrationDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		logger.Warn("Stored registration draft is malformed, discarding", "error", err)
		if err := s.c.store.Delete(store.KeyBizDraft); err != nil {
			logger.Warn("Failed to delete malformed draft", "error", err)
		}
		return nil
	}
	return &draft
}

func (s *BusinessService) ClearDraft() error {
	return s.c.store.Delete(store.KeyBizDraft)
}

// Autosaver periodically snapshots the registration wizard through a
// caller-supplied source function, mirroring the wizard's timed auto-save.
type Autosaver struct {
	svc      *BusinessService
	interval time.Duration
	source   func() *domain.RegistrationDraft

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewAutosaver starts saving drafts from source every interval until Stop.
// A nil draft from source skips that tick.
func (s *BusinessService) NewAutosaver(source func() *domain.RegistrationDraft) *Autosaver {
	interval := s.autosaveInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	a := &Autosaver{
		svc:      s,
		interval: interval,
		source:   source,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Autosaver) run() {
	defer close(a.done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return
		case <-ticker.C:
			draft := a.source()
			if draft == nil {
				continue
			}
			if err := a.svc.SaveDraft(draft); err != nil {
				logger.Warn("Draft autosave failed", "error", err)
			}
		}
	}
}

// Stop halts the autosaver and waits for the save loop to exit.
func (a *Autosaver) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
	<-a.done
}
