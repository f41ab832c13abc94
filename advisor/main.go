package main

import (
	"context"
	"fmt"
	"os"

	"joy/advisor/app"
	"joy/common/config"
	"joy/common/log"
	"joy/common/metrics"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "advisor 建议节点",
	Long:  `advisor 建议节点：订阅 nats 上的落子/出牌请求，调用大模型作答`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Load(configFile); err != nil {
			log.Fatal("文件配置发生错误：%v", err)
		}
		conf := config.AdvisorNodeConfig
		log.InitLog(conf.ID, conf.LogConf.Level)

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
