package db

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	models "github.com/budleaf/marketing/engine/internal/models"
	redis "github.com/redis/go-redis/v9"
)

// Кэш балансов в Redis, ключ - id участника
type CacheService struct {
	client *redis.Client
}

func NewCacheService() (serv *CacheService, err error) {

	// config
	addr := os.Getenv("MARKETING_CACHE_URL")
	if addr == "" {
		return nil, fmt.Errorf("env MARKETING_CACHE_URL is not set")
	}
	user := os.Getenv("MARKETING_CACHE_USER")
	if user == "" {
		return nil, fmt.Errorf("env MARKETING_CACHE_USER is not set")
	}
	pwd := os.Getenv("MARKETING_CACHE_PWD")
	if pwd == "" {
		return nil, fmt.Errorf("env MARKETING_CACHE_PWD is not set")
	}
	// redis
	db := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    pwd,
		Username:    user,
		DB:          0,
		MaxRetries:  5,
		DialTimeout: 10 * time.Second,
	})
	err = db.Ping(context.Background()).Err()
	if err != nil {
		return nil, err
	}

	return &CacheService{db}, nil
}

func (c *CacheService) GetBalance(ctx context.Context, member string) (points int64, err error) {
	val, err := c.client.Get(ctx, balanceKey(member)).Result()
	if err == redis.Nil {
		return 0, fmt.Errorf("balance %s: %w", member, models.ErrNotFound)
	} else if err != nil {
		return 0, err
	}

	points, err = strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, err
	}
	return points, nil
}

func (c *CacheService) SetBalance(ctx context.Context, member string, points int64) (err error) {
	err = c.client.Set(ctx, balanceKey(member), points, 5*time.Minute).Err()
	if err != nil {
		return err
	}
	return nil
}

func (c *CacheService) InvalidateBalance(ctx context.Context, member string) error {
	err := c.client.Del(ctx, balanceKey(member)).Err()
	if err != nil {
		return err
	}
	return nil
}

func balanceKey(member string) string {
	return "balance:" + member
}
