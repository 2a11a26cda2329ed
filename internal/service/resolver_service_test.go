package service

import (
	"context"
	"errors"
	"testing"

	"linkpulse-go/internal/apperrors"
	"linkpulse-go/internal/model"

	"go.uber.org/zap"
)

func newResolverForTest(repo *fakeLinkRepo, cache *fakeLinkCache) *ResolverService {
	return NewResolverService(repo, cache, zap.NewNop())
}

func TestResolveUnknownCodeReturnsNotFound(t *testing.T) {
	repo := newFakeLinkRepo()
	cache := newFakeLinkCache()
	resolver := newResolverForTest(repo, cache)

	_, err := resolver.Resolve(context.Background(), "nope1")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// 未命中要写空值缓存
	if !cache.negative["nope1"] {
		t.Error("expected negative cache entry after miss")
	}
}

func TestResolveInactiveLinkReturnsNotFound(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.add(&model.Link{
		ShortCode:   "dead1",
		OriginalURL: "https://example.com",
		IsActive:    false,
	})
	resolver := newResolverForTest(repo, newFakeLinkCache())

	if _, err := resolver.Resolve(context.Background(), "dead1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("inactive link must not resolve, got %v", err)
	}
}

func TestResolveMalformedCodeSkipsLookup(t *testing.T) {
	repo := newFakeLinkRepo()
	cache := newFakeLinkCache()
	resolver := newResolverForTest(repo, cache)

	for _, code := range []string{"", "has space", "bad/slash", "中文"} {
		if _, err := resolver.Resolve(context.Background(), code); !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("code %q: expected ErrNotFound, got %v", code, err)
		}
	}
	if cache.getCalls != 0 {
		t.Errorf("malformed codes must not hit the cache, got %d lookups", cache.getCalls)
	}
}

func TestResolveActiveLinkReturnsStoredURL(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.add(&model.Link{
		ShortCode:   "abc12",
		OriginalURL: "https://example.com/page",
		IsActive:    true,
	})
	resolver := newResolverForTest(repo, newFakeLinkCache())

	link, err := resolver.Resolve(context.Background(), "abc12")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	// URL 原样返回，不做任何归一化
	if link.OriginalURL != "https://example.com/page" {
		t.Errorf("original_url mismatch: %q", link.OriginalURL)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.add(&model.Link{
		ShortCode:   "same1",
		OriginalURL: "https://example.com/a",
		IsActive:    true,
	})
	resolver := newResolverForTest(repo, newFakeLinkCache())

	first, err := resolver.Resolve(context.Background(), "same1")
	if err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	second, err := resolver.Resolve(context.Background(), "same1")
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
	if first.OriginalURL != second.OriginalURL {
		t.Errorf("idempotence violated: %q vs %q", first.OriginalURL, second.OriginalURL)
	}
}

func TestResolveServesFromCache(t *testing.T) {
	repo := newFakeLinkRepo()
	link := repo.add(&model.Link{
		ShortCode:   "hot01",
		OriginalURL: "https://example.com/hot",
		IsActive:    true,
	})
	cache := newFakeLinkCache()
	resolver := newResolverForTest(repo, cache)

	if _, err := resolver.Resolve(context.Background(), "hot01"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, ok := cache.positive["hot01"]; !ok {
		t.Fatal("expected positive cache entry after first resolve")
	}

	// 数据库坏掉也要能从缓存返回
	repo.findErr = errors.New("db down")
	got, err := resolver.Resolve(context.Background(), "hot01")
	if err != nil {
		t.Fatalf("cached Resolve failed: %v", err)
	}
	if got.OriginalURL != link.OriginalURL {
		t.Errorf("cached original_url mismatch: %q", got.OriginalURL)
	}
}

func TestResolveNegativeCacheShortCircuits(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.add(&model.Link{
		ShortCode:   "ghost",
		OriginalURL: "https://example.com",
		IsActive:    true,
	})
	cache := newFakeLinkCache()
	cache.negative["ghost"] = true
	resolver := newResolverForTest(repo, cache)

	if _, err := resolver.Resolve(context.Background(), "ghost"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("negative cache entry must resolve to NotFound, got %v", err)
	}
}

func TestResolveStoreErrorSurfacesAsNotFound(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.findErr = errors.New("connection refused")
	resolver := newResolverForTest(repo, newFakeLinkCache())

	if _, err := resolver.Resolve(context.Background(), "abc12"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("store error must collapse to NotFound for the caller, got %v", err)
	}
}
