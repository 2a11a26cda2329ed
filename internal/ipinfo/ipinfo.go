package ipinfo

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const UnknownCountry = "Unknown"

// Cache IP → 国家 的缓存接口，显式注入，避免全局可变状态
type Cache interface {
	Get(ip string) (string, bool)
	Set(ip, country string)
}

// MemoryCache 进程内 TTL 缓存
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	country   string
	expiresAt time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(ip string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[ip]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.country, true
}

func (c *MemoryCache) Set(ip, country string) {
	c.mu.Lock()
	c.entries[ip] = memoryEntry{
		country:   country,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Client 调用 ip-api.com 做国家归属查询，查询失败降级为 Unknown
type Client struct {
	baseURL string
	http    *http.Client
	cache   Cache
	log     *zap.Logger
}

func NewClient(baseURL string, cache Cache, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://ip-api.com/json"
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 3 * time.Second},
		cache:   cache,
		log:     log,
	}
}

// Country 查询 IP 归属国家。尽力而为：外部服务不可用时返回 Unknown
func (c *Client) Country(ip string) string {
	if ip == "" {
		return UnknownCountry
	}

	if country, ok := c.cache.Get(ip); ok {
		return country
	}

	resp, err := c.http.Get(c.baseURL + "/" + ip)
	if err != nil {
		c.log.Warn("IP lookup failed",
			zap.String("ip", ip),
			zap.Error(err))
		return UnknownCountry
	}
	defer resp.Body.Close()

	var data struct {
		Country string `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.log.Warn("IP lookup decode failed",
			zap.String("ip", ip),
			zap.Error(err))
		return UnknownCountry
	}
	if data.Country == "" {
		return UnknownCountry
	}

	c.cache.Set(ip, data.Country)
	return data.Country
}

// FallbackIP 请求没带客户端地址时生成伪随机地址占位。
// 不是真实 IP，只用于 UV 去重的近似，不能当安全控制用
func FallbackIP() string {
	return fmt.Sprintf("10.%d.%d.%d", rand.Intn(256), rand.Intn(256), rand.Intn(256))
}
