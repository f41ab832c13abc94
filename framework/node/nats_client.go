package node

import (
	"errors"
	"time"

	"joy/common/log"

	"github.com/nats-io/nats.go"
)

var ErrNotConnected = errors.New("nats not connected")

// NatsClient gate 与 advisor 之间的 nats 连接
type NatsClient struct {
	name string
	conn *nats.Conn
}

func NewNatsClient(name string) *NatsClient {
	return &NatsClient{name: name}
}

func (nc *NatsClient) Run(url string) error {
	log.Info("nats 服务正在启动, url:%s", url)
	conn, err := nats.Connect(url,
		nats.Name(nc.name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats 连接断开: %v", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats 重新连接成功, url:%s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		log.Error("nats 连接错误,err:%v", err)
		return err
	}
	nc.conn = conn
	log.Info("nats 服务启动成功, url:%s", url)
	return nil
}

func (nc *NatsClient) Conn() (*nats.Conn, error) {
	if !nc.IsConnected() {
		return nil, ErrNotConnected
	}
	return nc.conn, nil
}

func (nc *NatsClient) IsConnected() bool {
	return nc.conn != nil && nc.conn.IsConnected()
}

func (nc *NatsClient) Close() error {
	if nc.conn == nil {
		return nil
	}
	if err := nc.conn.Drain(); err != nil {
		nc.conn.Close()
	}
	log.Info("NATS 连接已关闭")
	return nil
}
