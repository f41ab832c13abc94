package main

import (
	"context"
	"fmt"
	"os"

	"joy/common/config"
	"joy/common/log"
	"joy/common/metrics"
	"joy/gate/app"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "gate",
	Short: "gate 网关",
	Long:  `gate 网关：五子棋、麻将、骰子与房间号的 HTTP/WebSocket 入口`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Load(configFile); err != nil {
			log.Fatal("文件配置发生错误：%v", err)
		}
		conf := config.GateNodeConfig
		log.InitLog(conf.ID, conf.LogConf.Level)
		log.Info("配置文件: %+v", conf.BaseConfig)

		go func() {
			log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
			if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
				log.Error("监控服务退出: %v", err)
			}
		}()

		if err := app.Run(context.Background(), conf); err != nil {
			log.Error("发生异常: %v", err)
			os.Exit(-1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "configFile", "", "resource file")
	_ = rootCmd.MarkFlagRequired("configFile")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %#v", err)
		os.Exit(1)
	}
}
