package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"trendboard/board"
	qhttp "trendboard/http"
	"trendboard/logger"
	"trendboard/view"
)

type Config struct {
	Snapshot struct {
		Source  string `yaml:"source"`  // 快照地址：http(s) URL 或本地文件路径
		MaxAge  string `yaml:"max_age"` // 保鲜期，超过后按请求触发重载
		Timeout string `yaml:"timeout"`
		Watch   bool   `yaml:"watch"` // 本地文件模式下监听文件变化
	} `yaml:"snapshot"`
	Http struct {
		Port           int      `yaml:"port"`
		Timeout        string   `yaml:"timeout"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"http"`
	Log logger.Config `yaml:"log"`
}

func main() {
	// 1. 加载配置
	config, err := loadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. 初始化日志
	if err := logger.Init(config.Log); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zap.L().Sync()

	// 3. 组装Board与推送Hub
	maxAge := parseDuration(config.Snapshot.MaxAge, time.Hour)
	loadTimeout := parseDuration(config.Snapshot.Timeout, 10*time.Second)

	loader := board.NewLoader(config.Snapshot.Source, loadTimeout)
	b := board.New(loader, maxAge)

	hub := qhttp.NewHub()
	go hub.Run()
	b.OnUpdate(func(snap *board.Snapshot) {
		hub.BroadcastSnapshot(snap.UpdateTime)
	})

	// 初始加载；失败只置错误态，页面显示错误提示
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), loadTimeout)
	_ = b.Load(loadCtx)
	cancelLoad()

	// 本地文件模式下监听批处理任务的写入
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	if config.Snapshot.Watch && !board.IsHTTPSource(config.Snapshot.Source) {
		watcher, err := board.NewWatcher(b, config.Snapshot.Source)
		if err != nil {
			zap.L().Warn("创建文件监听失败", zap.Error(err))
		} else {
			go watcher.Run(watchCtx)
		}
	}

	// 4. 启动HTTP服务
	renderer, err := view.NewRenderer()
	if err != nil {
		zap.L().Fatal("初始化渲染器失败", zap.Error(err))
	}

	serverCfg := qhttp.DefaultServerConfig()
	if config.Http.Port > 0 {
		serverCfg.Port = config.Http.Port
	}
	serverCfg.Timeout = parseDuration(config.Http.Timeout, serverCfg.Timeout)
	if len(config.Http.AllowedOrigins) > 0 {
		serverCfg.AllowedOrigins = config.Http.AllowedOrigins
	}

	server := qhttp.NewServer(serverCfg, qhttp.NewHandlers(b, renderer, hub))
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP服务异常退出", zap.Error(err))
		}
	}()

	// 5. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("收到停止信号，正在关闭...")

	if err := server.Stop(); err != nil {
		zap.L().Warn("服务强制关闭", zap.Error(err))
	}
	hub.Stop()
	cancelWatch()

	zap.L().Info("已退出")
}

func loadConfig(path string) (*Config, error) {
	var config Config
	// 默认值：批处理任务产出物就在本地 docs/data 目录
	config.Snapshot.Source = "docs/data/latest.json"
	config.Snapshot.Watch = true

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &config, nil
		}
		return nil, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
