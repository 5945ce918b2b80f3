package netsvr

import (
	"net/http"

	"github.com/zintix-labs/bodylab/server/app"
)

// NetSvr 是可被 app.App 管理的 HTTP server：路由註冊加上啟停。
// 只有最外層組裝者持有它，api 層只看得到 NetRouter。
type NetSvr interface {
	NetRouter
	app.Component
	http.Handler
}

// NetRouter 只暴露路由註冊，不含 Run/Shutdown。
type NetRouter interface {
	Use(middleware func(http.Handler) http.Handler)

	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)

	// Group 以 path 為前綴建立子路由
	Group(path string, fn func(NetRouter))
}
