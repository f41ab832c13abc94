package container

import (
	"context"
	"fmt"

	"joy/common/config"
	"joy/core/infrastructure/advisor"
	"joy/framework/node"
)

// AdvisorContainer advisor 节点：nats 订阅 + gemini
type AdvisorContainer struct {
	nats   *node.NatsClient
	Worker *advisor.Worker
}

func NewAdvisorContainer(ctx context.Context, conf config.AdvisorConfiguration) (*AdvisorContainer, error) {
	if conf.Advisor.Mode != AdvisorGemini {
		return nil, fmt.Errorf("advisor 节点只支持 gemini 模式, 当前: %s", conf.Advisor.Mode)
	}
	backend, err := advisor.NewGeminiAdvisor(ctx, conf.Advisor.APIKey, conf.Advisor.Model)
	if err != nil {
		return nil, err
	}
	nc := node.NewNatsClient(conf.ID)
	if err := nc.Run(conf.NatsConfig.URL); err != nil {
		return nil, err
	}
	conn, err := nc.Conn()
	if err != nil {
		_ = nc.Close()
		return nil, err
	}
	worker := advisor.NewWorker(backend, 0)
	if err := worker.Run(conn, conf.Advisor.MoveSubject, conf.Advisor.DiscardSubject, conf.Advisor.QueueGroup); err != nil {
		_ = nc.Close()
		return nil, err
	}
	return &AdvisorContainer{nats: nc, Worker: worker}, nil
}

func (c *AdvisorContainer) Close() error {
	c.Worker.Close()
	return c.nats.Close()
}
