package repository

import (
	"encoding/json"

	"linkpulse-go/constant"
	"linkpulse-go/internal/model"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

// LinkCache 短链缓存接口。空值（negative）命中表示此前查过且不存在
type LinkCache interface {
	Get(shortCode string) (link *model.Link, negative bool, err error)
	Set(link *model.Link) error
	// SetNotFound 写入空值缓存，防止缓存穿透
	SetNotFound(shortCode string) error
	Delete(shortCode string) error
}

// RedisLinkCache 基于 Redis 的实现，JSON 序列化整条记录
type RedisLinkCache struct {
	pool *redis.Pool
	log  *zap.Logger
}

func NewRedisLinkCache(pool *redis.Pool, log *zap.Logger) *RedisLinkCache {
	return &RedisLinkCache{pool: pool, log: log}
}

func (c *RedisLinkCache) Get(shortCode string) (*model.Link, bool, error) {
	conn := c.pool.Get()
	defer c.closeConn(conn)

	cacheKey := constant.GetLinkCacheKey(shortCode)
	cachedValue, err := redis.Bytes(conn.Do("GET", cacheKey))
	if err != nil {
		if err == redis.ErrNil {
			return nil, false, nil
		}
		return nil, false, err
	}

	// 空字符串是空值缓存
	if len(cachedValue) == 0 {
		return nil, true, nil
	}

	var link model.Link
	if err := json.Unmarshal(cachedValue, &link); err != nil {
		c.log.Warn("Failed to unmarshal cached link",
			zap.String("cache_key", cacheKey),
			zap.Error(err))
		return nil, false, nil
	}
	return &link, false, nil
}

func (c *RedisLinkCache) Set(link *model.Link) error {
	conn := c.pool.Get()
	defer c.closeConn(conn)

	cachedValue, err := json.Marshal(link)
	if err != nil {
		return err
	}

	cacheKey := constant.GetLinkCacheKey(link.ShortCode)
	_, err = conn.Do("SET", cacheKey, cachedValue, "EX", constant.LinkCacheTTL)
	return err
}

func (c *RedisLinkCache) SetNotFound(shortCode string) error {
	conn := c.pool.Get()
	defer c.closeConn(conn)

	cacheKey := constant.GetLinkCacheKey(shortCode)
	_, err := conn.Do("SET", cacheKey, "", "EX", constant.LinkNegativeTTL)
	return err
}

func (c *RedisLinkCache) Delete(shortCode string) error {
	conn := c.pool.Get()
	defer c.closeConn(conn)

	_, err := conn.Do("DEL", constant.GetLinkCacheKey(shortCode))
	return err
}

func (c *RedisLinkCache) closeConn(conn redis.Conn) {
	if err := conn.Close(); err != nil {
		c.log.Error("Failed to close Redis connection",
			zap.Error(err),
			zap.String("operation", "close"),
			zap.String("connection_type", "redis"),
		)
	}
}
