package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"joy/common/config"
	"joy/common/log"
	"joy/core/container"
)

// Run 启动 advisor 节点，阻塞到收到退出信号
func Run(ctx context.Context, conf config.AdvisorConfiguration) error {
	c, err := container.NewAdvisorContainer(ctx, conf)
	if err != nil {
		return err
	}
	log.Info("advisor 节点 %s 已就绪, 模型: %s", conf.ID, conf.Advisor.Model)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	select {
	case <-ctx.Done():
	case s := <-sig:
		log.Info("收到信号 %v，服务停止", s)
	}
	if err := c.Close(); err != nil {
		log.Error("advisor 节点关闭出错: %v", err)
	}
	return nil
}
