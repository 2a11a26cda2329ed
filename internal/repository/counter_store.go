package repository

import (
	"linkpulse-go/constant"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

// CounterStore PV/UV 计数接口。记录操作尽力而为，失败只记日志
type CounterStore interface {
	RecordVisit(shortCode, ip string)
	DailyPV(shortCode, date string) (int64, error)
	DailyUV(shortCode, date string) (int64, error)
	TotalPV(shortCode string) (int64, error)
	TotalUV(shortCode string) (int64, error)
}

// RedisCounterStore PV 用 HINCRBY/INCR，UV 用 HyperLogLog
type RedisCounterStore struct {
	pool *redis.Pool
	log  *zap.Logger
}

func NewRedisCounterStore(pool *redis.Pool, log *zap.Logger) *RedisCounterStore {
	return &RedisCounterStore{pool: pool, log: log}
}

// RecordVisit 记录一次访问的全部计数（每日 PV/UV + 总 PV/UV）
func (s *RedisCounterStore) RecordVisit(shortCode, ip string) {
	conn := s.pool.Get()
	defer s.closeConn(conn)

	date := constant.GetDateKey()

	dailyPvKey := constant.GetDailyPVKey(date)
	if _, err := conn.Do("HINCRBY", dailyPvKey, shortCode, 1); err != nil {
		s.log.Error("Failed to record daily PV",
			zap.String("key", dailyPvKey),
			zap.String("short_code", shortCode),
			zap.Error(err))
	}
	if _, err := conn.Do("EXPIRE", dailyPvKey, constant.DailyCounterTTL); err != nil {
		s.log.Error("Failed to record daily PV Expire",
			zap.String("key", dailyPvKey),
			zap.String("short_code", shortCode),
			zap.Error(err))
	}

	dailyUvKey := constant.GetDailyUVKey(shortCode, date)
	if _, err := conn.Do("PFADD", dailyUvKey, ip); err != nil {
		s.log.Error("Failed to record daily UV",
			zap.String("key", dailyUvKey),
			zap.String("ip", ip),
			zap.Error(err))
	}
	if _, err := conn.Do("EXPIRE", dailyUvKey, constant.DailyCounterTTL); err != nil {
		s.log.Error("Failed to record daily UV Expire",
			zap.String("key", dailyUvKey),
			zap.String("short_code", shortCode),
			zap.Error(err))
	}

	totalPvKey := constant.GetTotalPVKey(shortCode)
	if _, err := conn.Do("INCR", totalPvKey); err != nil {
		s.log.Error("Failed to record total PV",
			zap.String("key", totalPvKey),
			zap.String("short_code", shortCode),
			zap.Error(err))
	}

	totalUvKey := constant.GetTotalUVKey(shortCode)
	if _, err := conn.Do("PFADD", totalUvKey, ip); err != nil {
		s.log.Error("Failed to record total UV",
			zap.String("key", totalUvKey),
			zap.String("ip", ip),
			zap.Error(err))
	}
}

// DailyPV 获取某日期的短链访问量（PV）
func (s *RedisCounterStore) DailyPV(shortCode, date string) (int64, error) {
	conn := s.pool.Get()
	defer s.closeConn(conn)

	key := constant.GetDailyPVKey(date)
	reply, err := conn.Do("HGET", key, shortCode)
	return s.toInt64(reply, err, key, shortCode)
}

// DailyUV 获取某日期的短链独立访客数（UV）
func (s *RedisCounterStore) DailyUV(shortCode, date string) (int64, error) {
	conn := s.pool.Get()
	defer s.closeConn(conn)

	key := constant.GetDailyUVKey(shortCode, date)
	reply, err := conn.Do("PFCOUNT", key)
	return s.toInt64(reply, err, key, shortCode)
}

// TotalPV 获取短链的总访问量
func (s *RedisCounterStore) TotalPV(shortCode string) (int64, error) {
	conn := s.pool.Get()
	defer s.closeConn(conn)

	key := constant.GetTotalPVKey(shortCode)
	reply, err := conn.Do("GET", key)
	return s.toInt64(reply, err, key, shortCode)
}

// TotalUV 获取短链的总独立访客数
func (s *RedisCounterStore) TotalUV(shortCode string) (int64, error) {
	conn := s.pool.Get()
	defer s.closeConn(conn)

	key := constant.GetTotalUVKey(shortCode)
	reply, err := conn.Do("PFCOUNT", key)
	return s.toInt64(reply, err, key, shortCode)
}

func (s *RedisCounterStore) closeConn(conn redis.Conn) {
	if err := conn.Close(); err != nil {
		s.log.Error("Failed to close Redis connection",
			zap.Error(err),
			zap.String("operation", "close"),
			zap.String("connection_type", "redis"),
		)
	}
}

func (s *RedisCounterStore) toInt64(reply interface{}, err error, key, shortCode string) (int64, error) {
	if err != nil {
		s.log.Error("Failed to read counter",
			zap.String("key", key),
			zap.String("short_code", shortCode),
			zap.Error(err))
		return 0, err
	}

	result, err := redis.Int64(reply, err)
	if err != nil {
		if err == redis.ErrNil {
			return 0, nil
		}
		s.log.Error("Failed to parse counter",
			zap.String("key", key),
			zap.String("short_code", shortCode),
			zap.Error(err))
		return 0, err
	}
	return result, nil
}
