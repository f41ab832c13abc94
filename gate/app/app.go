package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"joy/common/config"
	"joy/common/http"
	"joy/common/log"
	"joy/core/container"
	"joy/gate/api"
	"joy/runtime/game/engines"

	"github.com/gin-gonic/gin"
)

func Run(ctx context.Context, conf config.GateConfiguration) error {
	engines.StrictContracts.Store(conf.Game.Strict)

	c, err := container.NewGateContainer(ctx, conf)
	if err != nil {
		return err
	}
	monitorCtx, cancelMonitor := context.WithCancel(ctx)
	go c.Monitor.Start(monitorCtx)

	// game 段热更新：新参数作用于在局对局
	config.OnGameConfChange(func(game config.GameConf) {
		engines.StrictContracts.Store(game.Strict)
		c.Sessions.ApplyGameConf(game)
		log.Info("game 配置已热更新: %+v", game)
	})

	server := http.NewHttpServer(
		http.WithPort(conf.HttpPort),
		http.WithMode(ginMode(conf.LogConf.Level)),
	)
	server.Use(
		http.CorsMiddleware(),
		http.LoggerMiddleware(),
	)
	api.RegisterRoutes(server, api.NewHandler(c.Sessions, c.Rooms, c.Dice, c.Monitor))

	go func() {
		log.Info("启动 HTTP 服务器，端口: %d", conf.HttpPort)
		if err := server.Start(); err != nil {
			log.Fatal("HTTP 服务器启动失败: %v", err)
		}
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP 服务器关闭失败: %v", err)
		} else {
			log.Info("HTTP 服务器已优雅关闭")
		}
		cancelMonitor()
		if err := c.Close(); err != nil {
			log.Error("容器关闭出错: %v", err)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	select {
	case <-ctx.Done():
		stop()
	case s := <-sig:
		stop()
		log.Info("收到信号 %v，服务停止", s)
	}
	return nil
}

// ginMode 只有 debug 日志级别打开 gin 调试输出
func ginMode(level string) string {
	if level == "debug" {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}
