package service

import (
	"sync"

	"linkpulse-go/internal/model"
	"linkpulse-go/internal/repository"

	"gorm.io/gorm"
)

// 内存版仓储实现，测试用

type fakeLinkRepo struct {
	mu      sync.Mutex
	byID    map[uint]*model.Link
	byCode  map[string]*model.Link
	nextID  uint
	findErr error // 模拟存储层故障
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{
		byID:   make(map[uint]*model.Link),
		byCode: make(map[string]*model.Link),
		nextID: 1,
	}
}

func (r *fakeLinkRepo) add(link *model.Link) *model.Link {
	r.mu.Lock()
	defer r.mu.Unlock()
	if link.ID == 0 {
		link.ID = r.nextID
		r.nextID++
	}
	r.byID[link.ID] = link
	r.byCode[link.ShortCode] = link
	return link
}

func (r *fakeLinkRepo) Create(link *model.Link) error {
	r.add(link)
	return nil
}

func (r *fakeLinkRepo) FindByID(id uint) (*model.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	link, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *link
	return &copied, nil
}

func (r *fakeLinkRepo) FindByShortCode(shortCode string) (*model.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	link, ok := r.byCode[shortCode]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *link
	return &copied, nil
}

func (r *fakeLinkRepo) FindActiveByShortCode(shortCode string) (*model.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	link, ok := r.byCode[shortCode]
	if !ok || !link.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *link
	return &copied, nil
}

func (r *fakeLinkRepo) List(page, size int, shortCode string) ([]model.Link, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var links []model.Link
	for _, link := range r.byID {
		links = append(links, *link)
	}
	return links, int64(len(links)), nil
}

func (r *fakeLinkRepo) Update(link *model.Link) error {
	r.add(link)
	return nil
}

func (r *fakeLinkRepo) IncrementClickCount(linkID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.byID[linkID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	link.ClickCount++
	return nil
}

func (r *fakeLinkRepo) Deactivate(linkID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.byID[linkID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	link.IsActive = false
	return nil
}

func (r *fakeLinkRepo) All() ([]model.Link, error) {
	return nil, nil
}

func (r *fakeLinkRepo) clickCount(linkID uint) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[linkID].ClickCount
}

type fakeLinkCache struct {
	mu       sync.Mutex
	positive map[string]*model.Link
	negative map[string]bool
	getCalls int
	deleted  []string
}

func newFakeLinkCache() *fakeLinkCache {
	return &fakeLinkCache{
		positive: make(map[string]*model.Link),
		negative: make(map[string]bool),
	}
}

func (c *fakeLinkCache) Get(shortCode string) (*model.Link, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getCalls++
	if c.negative[shortCode] {
		return nil, true, nil
	}
	if link, ok := c.positive[shortCode]; ok {
		copied := *link
		return &copied, false, nil
	}
	return nil, false, nil
}

func (c *fakeLinkCache) Set(link *model.Link) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *link
	c.positive[link.ShortCode] = &copied
	return nil
}

func (c *fakeLinkCache) SetNotFound(shortCode string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.negative[shortCode] = true
	return nil
}

func (c *fakeLinkCache) Delete(shortCode string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.positive, shortCode)
	delete(c.negative, shortCode)
	c.deleted = append(c.deleted, shortCode)
	return nil
}

type fakeAnalyticsRepo struct {
	mu        sync.Mutex
	events    []model.AnalyticsEvent
	appendErr error
	appended  chan struct{} // Dispatch 测试用的完成信号
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{appended: make(chan struct{}, 16)}
}

func (r *fakeAnalyticsRepo) Append(event *model.AnalyticsEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.events = append(r.events, *event)
	select {
	case r.appended <- struct{}{}:
	default:
	}
	return nil
}

func (r *fakeAnalyticsRepo) all() []model.AnalyticsEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.AnalyticsEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *fakeAnalyticsRepo) CountByLinkID(linkID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, e := range r.events {
		if e.LinkID == linkID {
			count++
		}
	}
	return count, nil
}

func (r *fakeAnalyticsRepo) CountUniqueIPs(linkID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ips := make(map[string]bool)
	for _, e := range r.events {
		if e.LinkID == linkID {
			ips[e.IPAddress] = true
		}
	}
	return int64(len(ips)), nil
}

func (r *fakeAnalyticsRepo) DeviceBreakdown(linkID uint) ([]repository.BreakdownItem, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) BrowserBreakdown(linkID uint) ([]repository.BreakdownItem, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) ReferrerBreakdown(linkID uint) ([]repository.BreakdownItem, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) DailyBreakdown(linkID uint) ([]repository.DailyCount, error) {
	return nil, nil
}

type fakeCounterStore struct {
	mu     sync.Mutex
	visits []string // shortCode
}

func (s *fakeCounterStore) RecordVisit(shortCode, ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits = append(s.visits, shortCode)
}

func (s *fakeCounterStore) DailyPV(shortCode, date string) (int64, error) { return 0, nil }
func (s *fakeCounterStore) DailyUV(shortCode, date string) (int64, error) { return 0, nil }
func (s *fakeCounterStore) TotalPV(shortCode string) (int64, error)       { return 0, nil }
func (s *fakeCounterStore) TotalUV(shortCode string) (int64, error)       { return 0, nil }

type fakeGeo struct {
	country string
}

func (g *fakeGeo) Country(ip string) string {
	if g.country == "" {
		return "Unknown"
	}
	return g.country
}
