// internal/cache/redis.go
package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implementa Cache sobre um servidor Redis. Falhas de cache são
// registradas e engolidas: o chamador recomputa no miss.
type Redis struct {
	Client *redis.Client
}

func NewRedis(addr, senha string) *Redis {
	return &Redis{Client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: senha,
	})}
}

func (r *Redis) Get(ctx context.Context, chave string) (string, bool) {
	v, err := r.Client.Get(ctx, chave).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("cache redis: GET %s: %v", chave, err)
		}
		return "", false
	}
	return v, true
}

func (r *Redis) Set(ctx context.Context, chave, valor string, ttl time.Duration) {
	if err := r.Client.Set(ctx, chave, valor, ttl).Err(); err != nil {
		log.Printf("cache redis: SET %s: %v", chave, err)
	}
}

func (r *Redis) Delete(ctx context.Context, chave string) {
	if err := r.Client.Del(ctx, chave).Err(); err != nil {
		log.Printf("cache redis: DEL %s: %v", chave, err)
	}
}

func (r *Redis) DeleteByPrefix(ctx context.Context, prefixo string) {
	iter := r.Client.Scan(ctx, 0, prefixo+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.Client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("cache redis: DEL %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("cache redis: SCAN %s*: %v", prefixo, err)
	}
}
