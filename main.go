package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/reusedev/media-hub/config"
	"github.com/reusedev/media-hub/internal/components/mysql"
	"github.com/reusedev/media-hub/internal/modules/compress"
	"github.com/reusedev/media-hub/internal/modules/ingest"
	"github.com/reusedev/media-hub/internal/modules/logs"
	"github.com/reusedev/media-hub/internal/modules/model"
	"github.com/reusedev/media-hub/internal/modules/queue"
	"github.com/reusedev/media-hub/internal/modules/ratio"
	"github.com/reusedev/media-hub/internal/modules/storage"
	"github.com/reusedev/media-hub/internal/modules/storage/ali"
	"github.com/reusedev/media-hub/internal/modules/storage/local"
	"github.com/reusedev/media-hub/internal/modules/validate"
	"github.com/reusedev/media-hub/internal/service/http"
	"github.com/reusedev/media-hub/internal/service/http/handler"
)

var (
	httpPort   string
	configPath string
)

func init() {
	flag.StringVar(&httpPort, "http-port", ":80", "listen http port")
	flag.StringVar(&configPath, "config", "config.yml", "config file path")
}

func main() {
	flag.Parse()
	config.Init(configPath)
	logs.InitLogger()
	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	queue.InitBatchTaskQueue(ctx, wg)
	mysql.InitMySQL(config.GConfig.MySQL)
	mysql.DB.AutoMigrate(&model.ImageVariant{})

	var store storage.Store
	var sign storage.URLProvider
	var canonicalDir, mirrorDir string
	switch config.GConfig.StorageSupplier {
	case "ali_oss":
		ali.InitOSS(config.GConfig.AliOss)
		store = ali.OssClient
		sign = ali.OssClient
		canonicalDir = config.GConfig.AliOss.Directory
		mirrorDir = config.GConfig.AliOss.PublicDirectory
	case "local":
		localStore := local.New(config.GConfig.Local.Directory)
		store = localStore
		sign = localStore
		canonicalDir = "store"
		mirrorDir = config.GConfig.Local.PublicDirectory
	}

	pipeline := ingest.New(
		validate.New(config.GConfig.Pipeline.MaxUploadBytes),
		compress.NewCompressor(compress.DefaultPolicy()),
		ratio.DefaultPolicy(config.GConfig.Pipeline.RatioTolerance),
		storage.NewDualWriter(store, canonicalDir, mirrorDir),
		config.GConfig.StorageSupplier,
		config.GConfig.Pipeline.TargetBytes,
	)
	handler.Init(pipeline, sign)

	osSignal := make(chan os.Signal, 1)
	signal.Notify(osSignal, syscall.SIGINT, syscall.SIGTERM)
	go func(ch chan os.Signal) {
		<-ch
		cancel()
		wg.Wait()
		os.Exit(0)
	}(osSignal)
	http.Serve(httpPort)
}
