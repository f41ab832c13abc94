package container

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"joy/common/cache"
	"joy/common/config"
	"joy/common/log"
	"joy/core/domain/repository"
	"joy/core/infrastructure/advisor"
	roomcache "joy/core/infrastructure/cache"
	"joy/core/infrastructure/memory"
	"joy/core/infrastructure/persistence"
	"joy/core/infrastructure/realtime"
	"joy/framework/node"
	"joy/runtime/dice"
	"joy/runtime/game"
	"joy/runtime/game/engines/gomoku"
	"joy/runtime/game/engines/mahjong"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"

	AdvisorNone   = "none"
	AdvisorGemini = "gemini"
	AdvisorNats   = "nats"

	monitorInterval = 10 * time.Second
)

type GateContainer struct {
	*BaseContainer
	nats      *node.NatsClient
	caches    []*cache.GeneralCache
	roomCache *roomcache.RoomCodeCache

	Sessions *game.SessionManager
	Rooms    *game.RoomManager
	Dice     *dice.Roller
	Monitor  *game.Monitor
}

// NewGateContainer 按配置选择仓储后端与建议者
func NewGateContainer(ctx context.Context, conf config.GateConfiguration) (*GateContainer, error) {
	needMongo := conf.Dice.Backend == BackendMongo
	needRedis := conf.Dice.Backend == BackendRedis || conf.Room.Backend == BackendRedis
	base, err := NewBase(conf.DatabaseConf, needMongo, needRedis)
	if err != nil {
		return nil, fmt.Errorf("基础容器初始化失败: %w", err)
	}
	c := &GateContainer{BaseContainer: base}

	history, err := c.diceHistory(conf.Dice)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	rooms, err := c.roomCodes(conf.Room)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	moveAdvisor, discardAdvisor, err := c.advisors(ctx, conf)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	searcher, err := c.searcher()
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Dice = dice.NewRoller(rand.New(rand.NewSource(time.Now().UnixNano())), history)
	c.Rooms = game.NewRoomManager(rooms, rand.New(rand.NewSource(time.Now().UnixNano())), time.Duration(conf.Room.TTLSeconds)*time.Second)
	c.Sessions = game.NewSessionManager(conf.Game, moveAdvisor, discardAdvisor, searcher)
	c.Monitor = game.NewMonitor(c.Sessions, monitorInterval)
	return c, nil
}

func (c *GateContainer) diceHistory(conf config.DiceConf) (repository.DiceHistoryRepository, error) {
	capacity := conf.HistoryCap
	if capacity <= 0 {
		capacity = dice.HistoryCap
	}
	switch conf.Backend {
	case BackendMemory, "":
		return memory.NewDiceHistoryRepository(capacity), nil
	case BackendRedis:
		return realtime.NewRedisDiceHistoryRepository(c.GetRedis(), capacity), nil
	case BackendMongo:
		return persistence.NewDiceHistoryRepository(c.GetMongo(), capacity), nil
	default:
		return nil, fmt.Errorf("未知的掷骰记录后端: %s", conf.Backend)
	}
}

func (c *GateContainer) roomCodes(conf config.RoomConf) (repository.RoomCodeRepository, error) {
	switch conf.Backend {
	case BackendMemory, "":
		return memory.NewRoomCodeRepository(), nil
	case BackendRedis:
		// 加入房间是读多写少，本地缓存的有效期不超过房间本身
		ttl := time.Minute
		if roomTTL := time.Duration(conf.TTLSeconds) * time.Second; roomTTL > 0 && roomTTL < ttl {
			ttl = roomTTL
		}
		cached, err := roomcache.NewRoomCodeCache(realtime.NewRedisRoomCodeRepository(c.GetRedis()), ttl)
		if err != nil {
			return nil, err
		}
		c.roomCache = cached
		return cached, nil
	default:
		return nil, fmt.Errorf("未知的房间码后端: %s", conf.Backend)
	}
}

func (c *GateContainer) advisors(ctx context.Context, conf config.GateConfiguration) (gomoku.MoveAdvisor, mahjong.DiscardAdvisor, error) {
	switch conf.Advisor.Mode {
	case AdvisorNone, "":
		log.Info("未配置外部建议者，电脑只使用本地评估")
		return nil, nil, nil
	case AdvisorGemini:
		g, err := advisor.NewGeminiAdvisor(ctx, conf.Advisor.APIKey, conf.Advisor.Model)
		if err != nil {
			return nil, nil, err
		}
		return g, g, nil
	case AdvisorNats:
		c.nats = node.NewNatsClient(conf.ID)
		if err := c.nats.Run(conf.NatsConfig.URL); err != nil {
			return nil, nil, err
		}
		conn, err := c.nats.Conn()
		if err != nil {
			return nil, nil, err
		}
		a := advisor.NewNatsAdvisor(conn, conf.Advisor.MoveSubject, conf.Advisor.DiscardSubject)
		return a, a, nil
	default:
		return nil, nil, fmt.Errorf("未知的建议者模式: %s", conf.Advisor.Mode)
	}
}

// searcher 和牌判定与听牌计算的本地缓存
func (c *GateContainer) searcher() (*mahjong.Searcher, error) {
	agari, err := cache.NewGeneralCache(1<<16, 0)
	if err != nil {
		return nil, err
	}
	waits, err := cache.NewGeneralCache(1<<14, 0)
	if err != nil {
		agari.Close()
		return nil, err
	}
	c.caches = append(c.caches, agari, waits)
	return mahjong.NewSearcher(agari, waits), nil
}

// Close 关闭容器资源
func (c *GateContainer) Close() error {
	if c.Monitor != nil {
		c.Monitor.Stop()
	}
	if c.Sessions != nil {
		c.Sessions.Close()
	}
	if c.nats != nil {
		_ = c.nats.Close()
	}
	if c.roomCache != nil {
		c.roomCache.Close()
	}
	for _, gc := range c.caches {
		gc.Close()
	}
	return c.BaseContainer.Close()
}
