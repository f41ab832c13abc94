package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var GateNodeConfig GateConfiguration
var AdvisorNodeConfig AdvisorConfiguration

type BaseConfig struct {
	ID         string `mapstructure:"id"`
	ServerType string `mapstructure:"serverType"`
	MetricPort int    `mapstructure:"metricPort"`
}

type GateConfiguration struct {
	BaseConfig   `mapstructure:",squash"`
	DatabaseConf `mapstructure:"database"`
	LogConf      `mapstructure:"log"`
	NatsConfig   `mapstructure:"nats"`
	Game         GameConf    `mapstructure:"game"`
	Advisor      AdvisorConf `mapstructure:"advisor"`
	Dice         DiceConf    `mapstructure:"dice"`
	Room         RoomConf    `mapstructure:"room"`
	HttpPort     int         `mapstructure:"httpPort"`
}

type AdvisorConfiguration struct {
	BaseConfig `mapstructure:",squash"`
	LogConf    `mapstructure:"log"`
	NatsConfig `mapstructure:"nats"`
	Advisor    AdvisorConf `mapstructure:"advisor"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
}

type NatsConfig struct {
	URL string `json:"url" mapstructure:"url"`
}

// GameConf 引擎调参，支持热更新
type GameConf struct {
	BoardSize        int    `mapstructure:"boardSize"`        // 五子棋棋盘边长
	MinThinkMs       int    `mapstructure:"minThinkMs"`       // 电脑落子最短用时
	AdvisorTimeoutMs int    `mapstructure:"advisorTimeoutMs"` // 等待外部建议的上限
	Difficulty       string `mapstructure:"difficulty"`       // easy | normal | hard
	AISeatDelayMs    int    `mapstructure:"aiSeatDelayMs"`    // 麻将电脑座位出牌延迟
	AISeatJitterMs   int    `mapstructure:"aiSeatJitterMs"`   // 出牌延迟的随机附加上限
	ClaimWindowMs    int    `mapstructure:"claimWindowMs"`    // 鸣牌窗口超时，0 表示一直等待
	HumanSeats       []int  `mapstructure:"humanSeats"`       // 真人座位
	Strict           bool   `mapstructure:"strict"`           // 契约违例直接 panic
	Seed             int64  `mapstructure:"seed"`             // 0 表示按时间取种子
	IdleMinutes      int    `mapstructure:"idleMinutes"`      // 无人访问多久后回收对局，0 表示不回收
}

func (g GameConf) MinThink() time.Duration {
	return time.Duration(g.MinThinkMs) * time.Millisecond
}

func (g GameConf) AdvisorTimeout() time.Duration {
	return time.Duration(g.AdvisorTimeoutMs) * time.Millisecond
}

func (g GameConf) AISeatDelay() time.Duration {
	return time.Duration(g.AISeatDelayMs) * time.Millisecond
}

func (g GameConf) AISeatJitter() time.Duration {
	return time.Duration(g.AISeatJitterMs) * time.Millisecond
}

func (g GameConf) ClaimWindow() time.Duration {
	return time.Duration(g.ClaimWindowMs) * time.Millisecond
}

func (g GameConf) IdleTimeout() time.Duration {
	return time.Duration(g.IdleMinutes) * time.Minute
}

type AdvisorConf struct {
	Mode           string `mapstructure:"mode"` // none | gemini | nats
	Model          string `mapstructure:"model"`
	APIKey         string `mapstructure:"apiKey"`
	MoveSubject    string `mapstructure:"moveSubject"`
	DiscardSubject string `mapstructure:"discardSubject"`
	QueueGroup     string `mapstructure:"queueGroup"`
}

type DiceConf struct {
	Backend    string `mapstructure:"backend"` // memory | redis | mongo
	HistoryCap int    `mapstructure:"historyCap"`
}

type RoomConf struct {
	Backend    string `mapstructure:"backend"` // memory | redis
	TTLSeconds int    `mapstructure:"ttlSeconds"`
}

var (
	gameMu       sync.RWMutex
	gameWatchers []func(GameConf)
)

// OnGameConfChange 注册 game 段变更回调
func OnGameConfChange(fn func(GameConf)) {
	gameMu.Lock()
	defer gameMu.Unlock()
	gameWatchers = append(gameWatchers, fn)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("httpPort", 8080)
	v.SetDefault("metricPort", 5854)
	v.SetDefault("nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("game.boardSize", 13)
	v.SetDefault("game.minThinkMs", 400)
	v.SetDefault("game.advisorTimeoutMs", 1000)
	v.SetDefault("game.difficulty", "hard")
	v.SetDefault("game.aiSeatDelayMs", 1500)
	v.SetDefault("game.aiSeatJitterMs", 500)
	v.SetDefault("game.claimWindowMs", 0)
	v.SetDefault("game.humanSeats", []int{0})
	v.SetDefault("game.idleMinutes", 30)
	v.SetDefault("advisor.mode", "none")
	v.SetDefault("advisor.model", "gemini-3-flash-preview")
	v.SetDefault("advisor.moveSubject", "advisor.move")
	v.SetDefault("advisor.discardSubject", "advisor.discard")
	v.SetDefault("advisor.queueGroup", "advisor")
	v.SetDefault("dice.backend", "memory")
	v.SetDefault("dice.historyCap", 500)
	v.SetDefault("room.backend", "memory")
	v.SetDefault("room.ttlSeconds", 3600)
}

func Load(configFile string) error {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	var base BaseConfig
	if err := v.Unmarshal(&base); err != nil {
		return err
	}
	if nodeID := os.Getenv("NODE_ID"); nodeID != "" {
		base.ID = nodeID
	}
	if base.ID == "" {
		return fmt.Errorf("节点 ID 缺失，请配置 id 或设置 NODE_ID 环境变量")
	}

	switch base.ServerType {
	case "gate":
		var cfg GateConfiguration
		if err := v.Unmarshal(&cfg); err != nil {
			return err
		}
		cfg.ID = base.ID
		gameMu.Lock()
		GateNodeConfig = cfg
		gameMu.Unlock()
		watchGameConf(v)
	case "advisor":
		var cfg AdvisorConfiguration
		if err := v.Unmarshal(&cfg); err != nil {
			return err
		}
		cfg.ID = base.ID
		AdvisorNodeConfig = cfg
	default:
		return fmt.Errorf("unknown server type: %s", base.ServerType)
	}

	return nil
}

// watchGameConf 只热更新 game 段，其余配置需要重启
func watchGameConf(v *viper.Viper) {
	v.OnConfigChange(func(in fsnotify.Event) {
		var game GameConf
		if err := v.UnmarshalKey("game", &game); err != nil {
			return
		}
		gameMu.Lock()
		GateNodeConfig.Game = game
		watchers := append([]func(GameConf){}, gameWatchers...)
		gameMu.Unlock()
		for _, fn := range watchers {
			fn(game)
		}
	})
	v.WatchConfig()
}
