package http

import (
	"time"

	"joy/common/log"
)

// CorsMiddleware 跨域中间件，前端页面与网关不同源
func CorsMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		if c.GetHeader("Origin") != "" {
			c.SetHeader("Access-Control-Allow-Origin", "*")
			c.SetHeader("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
			c.SetHeader("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept")
		}

		// 处理预检请求
		if c.Method() == "OPTIONS" {
			c.AbortWithStatus(204)
		}
		return nil
	}
}

// LoggerMiddleware 记录请求来源，debug 级别
func LoggerMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		log.Debug("HTTP Request: %s %s from %s at %s", c.Method(), c.Path(), c.ClientIP(), time.Now().Format(time.TimeOnly))
		return nil
	}
}
