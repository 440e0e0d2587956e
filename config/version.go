package config

// 编译时通过 -ldflags 注入
var (
	Version    = "dev"
	CommitHash = "n/a"
)
