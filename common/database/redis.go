package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"joy/common/config"
	"joy/common/log"

	"github.com/redis/go-redis/v9"
)

type RedisManager struct {
	Cli        *redis.Client
	ClusterCli *redis.ClusterClient
	scriptSHAs map[string]string
	mu         sync.RWMutex
}

func NewRedis(redisConf config.RedisConf) (*RedisManager, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var clusterCli *redis.ClusterClient
	var cli *redis.Client

	// 构建Redis地址
	var addr string
	if redisConf.Addr != "" {
		addr = redisConf.Addr
	} else if redisConf.Host != "" && redisConf.Port > 0 {
		addr = fmt.Sprintf("%s:%d", redisConf.Host, redisConf.Port)
	} else if len(redisConf.ClusterAddrs) == 0 {
		return nil, errors.New("redis 配置出错: 缺少地址")
	}

	if len(redisConf.ClusterAddrs) == 0 {
		cli = redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     redisConf.Password,
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
		if err := cli.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis 连接错误: %w", err)
		}
	} else {
		clusterCli = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        redisConf.ClusterAddrs,
			Password:     redisConf.Password,
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
		if err := clusterCli.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redisCluster 连接错误: %w", err)
		}
	}

	return &RedisManager{
		Cli:        cli,
		ClusterCli: clusterCli,
		scriptSHAs: make(map[string]string),
	}, nil
}

func (r *RedisManager) GetClient() (redis.Cmdable, error) {
	if r.Cli != nil {
		return r.Cli, nil
	}
	if r.ClusterCli != nil {
		return r.ClusterCli, nil
	}
	return nil, fmt.Errorf("redis 客户端未初始化")
}

func (r *RedisManager) Del(ctx context.Context, keys ...string) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	return cli.Del(ctx, keys...).Err()
}

// SetNX 仅在 key 不存在时写入，返回是否写入成功
func (r *RedisManager) SetNX(ctx context.Context, key, value string, expiration time.Duration) (bool, error) {
	cli, err := r.GetClient()
	if err != nil {
		return false, err
	}
	return cli.SetNX(ctx, key, value, expiration).Result()
}

func (r *RedisManager) Get(ctx context.Context, key string) (string, error) {
	cli, err := r.GetClient()
	if err != nil {
		return "", err
	}
	return cli.Get(ctx, key).Result()
}

func (r *RedisManager) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	cli, err := r.GetClient()
	if err != nil {
		return nil, err
	}
	return cli.LRange(ctx, key, start, stop).Result()
}

func (r *RedisManager) EvalScript(ctx context.Context, scriptName, script string, keys []string, args ...any) (any, error) {
	cli, err := r.GetClient()
	if err != nil {
		return nil, err
	}

	if r.Cli != nil && scriptName != "" {
		r.mu.RLock()
		sha, exists := r.scriptSHAs[scriptName]
		r.mu.RUnlock()
		if exists {
			result, err := r.Cli.EvalSha(ctx, sha, keys, args...).Result()
			if err != nil {
				// SHA 失效，重新加载
				if strings.HasPrefix(err.Error(), "NOSCRIPT") {
					newSHA, loadErr := r.Cli.ScriptLoad(ctx, script).Result()
					if loadErr != nil {
						return nil, fmt.Errorf("重新加载脚本失败: %w", loadErr)
					}
					r.mu.Lock()
					r.scriptSHAs[scriptName] = newSHA
					r.mu.Unlock()
					return r.Cli.EvalSha(ctx, newSHA, keys, args...).Result()
				}
				return nil, err
			}
			return result, nil
		}
		sha, err := r.Cli.ScriptLoad(ctx, script).Result()
		if err != nil {
			return nil, fmt.Errorf("加载脚本失败: %w", err)
		}
		r.mu.Lock()
		r.scriptSHAs[scriptName] = sha
		r.mu.Unlock()
		return r.Cli.EvalSha(ctx, sha, keys, args...).Result()
	}

	return cli.Eval(ctx, script, keys, args...).Result()
}

func (r *RedisManager) Close() error {
	if r == nil || (r.Cli == nil && r.ClusterCli == nil) {
		return nil
	}
	if r.Cli != nil {
		if err := r.Cli.Close(); err != nil {
			log.Error("redis 关闭出错: %v", err)
			return err
		}
	}
	if r.ClusterCli != nil {
		if err := r.ClusterCli.Close(); err != nil {
			log.Error("redisCluster 关闭出错: %v", err)
			return err
		}
	}
	return nil
}
