package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"user-service/internal/cache"
	"user-service/internal/metrics"
	"user-service/internal/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// deletedMarker 刪除後留在 key 上，讀取直接回 not found
	deletedMarker = "deleted"
	// staleMarker 更新後留在 key 上，期間讀取一律回源且不回填
	staleMarker = "stale"
	// defaultMarkerTTL ttl 未設定（不過期）時 staleMarker 的存活時間
	defaultMarkerTTL = time.Minute
)

// CachedUsers 在 UserStore 前加上 Redis read-through 快取
// 只快取單筆查詢，回填使用 SETNX；更新與刪除成功後以標記覆寫該 key，
// 與寫入並行的讀取因此無法把舊資料寫回快取
// 快取錯誤只記錄 log，不影響請求結果
type CachedUsers struct {
	UserStore
	cache cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedUsers(next UserStore, c cache.Cache, ttl time.Duration, log *zap.Logger) *CachedUsers {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedUsers{UserStore: next, cache: c, ttl: ttl, log: log}
}

func userKey(id int) string {
	return "user:" + strconv.Itoa(id)
}

func (s *CachedUsers) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	key := userKey(id)

	b, err := s.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		switch string(b) {
		case deletedMarker:
			metrics.IncUserCache("hit")
			return nil, notFound("GetUserByID", "No User found.")
		case staleMarker:
			metrics.IncUserCache("bypass")
			return s.UserStore.GetUserByID(ctx, id)
		}
		var u model.User
		if jerr := json.Unmarshal(b, &u); jerr == nil {
			metrics.IncUserCache("hit")
			return &u, nil
		}
		s.log.Warn("discard corrupt cache entry", zap.String("key", key))
		metrics.IncUserCache("error")
		s.evict(ctx, key)
	case errors.Is(err, redis.Nil):
		metrics.IncUserCache("miss")
	default:
		s.log.Warn("user cache get failed", zap.String("key", key), zap.Error(err))
		metrics.IncUserCache("error")
	}

	u, err := s.UserStore.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// model.User 的 password 欄位不序列化，快取內容即為公開欄位
	if payload, err := json.Marshal(u); err == nil {
		if err := s.cache.SetNX(ctx, key, payload, s.ttl).Err(); err != nil {
			s.log.Warn("user cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return u, nil
}

func (s *CachedUsers) UpdateUser(ctx context.Context, id int, patch model.UserPatch) (*model.User, error) {
	u, err := s.UserStore.UpdateUser(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	ttl := s.ttl
	if ttl <= 0 {
		ttl = defaultMarkerTTL
	}
	s.mark(ctx, id, staleMarker, ttl)
	return u, nil
}

func (s *CachedUsers) DeleteUser(ctx context.Context, id int) error {
	if err := s.UserStore.DeleteUser(ctx, id); err != nil {
		return err
	}
	// id 不會重複使用，標記不過期也無妨
	s.mark(ctx, id, deletedMarker, s.ttl)
	return nil
}

func (s *CachedUsers) mark(ctx context.Context, id int, marker string, ttl time.Duration) {
	key := userKey(id)
	if err := s.cache.Set(ctx, key, marker, ttl).Err(); err != nil {
		s.log.Warn("user cache mark failed", zap.String("key", key), zap.String("marker", marker), zap.Error(err))
		s.evict(ctx, key)
	}
}

func (s *CachedUsers) evict(ctx context.Context, key string) {
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.log.Warn("user cache evict failed", zap.String("key", key), zap.Error(err))
	}
}
