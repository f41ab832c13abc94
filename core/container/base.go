package container

import (
	"errors"

	"joy/common/config"
	"joy/common/database"
	"joy/common/log"
)

// BaseContainer 按需建立的数据库连接，未用到的后端不连接
type BaseContainer struct {
	mongo *database.MongoManager
	redis *database.RedisManager
}

// NewBase needMongo/needRedis 由各仓储选择的后端决定
func NewBase(conf config.DatabaseConf, needMongo, needRedis bool) (*BaseContainer, error) {
	c := &BaseContainer{}
	if needMongo {
		mongo, err := database.NewMongo(conf.MongoConf)
		if err != nil {
			return nil, err
		}
		c.mongo = mongo
		log.Info("mongodb 数据库服务启动成功")
	}
	if needRedis {
		redis, err := database.NewRedis(conf.RedisConf)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.redis = redis
		log.Info("redis 数据库服务启动成功")
	}
	return c, nil
}

func (c *BaseContainer) GetMongo() *database.MongoManager {
	return c.mongo
}

func (c *BaseContainer) GetRedis() *database.RedisManager {
	return c.redis
}

// Close 关闭所有资源
func (c *BaseContainer) Close() error {
	var errs []error
	if c.mongo != nil {
		if err := c.mongo.Close(); err != nil {
			log.Error("mongo 关闭失败: %v", err)
			errs = append(errs, err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
