package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/payment-dashboard/internal/config"
)

// Redis хранит ключи под префиксом "<namespace>:". Подходит, когда сессию
// нужно разделять между несколькими машинами оператора.
type Redis struct {
	Db        *redis.Client
	namespace string
}

// NewRedis подключается к redis и проверяет соединение.
func NewRedis(ctx context.Context, cfg config.RedisConnection, namespace string) (*Redis, error) {
	const op = "storage.NewRedis"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Redis{Db: db, namespace: namespace}, nil
}

func (r *Redis) key(k string) string {
	return r.namespace + ":" + k
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "storage.Redis.Get"
	val, err := r.Db.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

func (r *Redis) SetMany(ctx context.Context, values map[string]string) error {
	const op = "storage.Redis.SetMany"
	_, err := r.Db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, r.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	const op = "storage.Redis.Clear"
	var keys []string
	iter := r.Db.Scan(ctx, 0, escapeGlob(r.namespace)+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.Db.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// escapeGlob экранирует спецсимволы шаблона SCAN MATCH, чтобы пространство
// имён сопоставлялось только буквально.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Close закрывает соединение с redis.
func (r *Redis) Close() error {
	return r.Db.Close()
}
