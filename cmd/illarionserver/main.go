package main

import (
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/pkg/errors"
	"github.com/xiaonanln/goTimer"

	"github.com/r-lodahl/Illarion-Server/engine/binutil"
	"github.com/r-lodahl/Illarion-Server/engine/config"
	"github.com/r-lodahl/Illarion-Server/engine/consts"
	"github.com/r-lodahl/Illarion-Server/engine/gwlog"
	"github.com/r-lodahl/Illarion-Server/engine/gwutils"
	"github.com/r-lodahl/Illarion-Server/engine/tilemap"
	"github.com/r-lodahl/Illarion-Server/engine/world"
)

var args struct {
	configFile      string
	logLevel        string
	runInDaemonMode bool
	exportDir       string
}

func parseArgs() {
	flag.StringVar(&args.configFile, "configfile", "", "set config file path")
	flag.StringVar(&args.logLevel, "log", "", "override log level")
	flag.BoolVar(&args.runInDaemonMode, "d", false, "run in daemon mode")
	flag.StringVar(&args.exportDir, "export", "", "export all maps to directory and exit")
	flag.Parse()
}

func main() {
	parseArgs()

	if args.runInDaemonMode {
		daemoncontext := binutil.Daemonize()
		defer daemoncontext.Release()
	}

	if args.configFile != "" {
		config.SetConfigFile(args.configFile)
	}

	serverConfig := config.GetServer()
	worldConfig := config.GetWorld()

	if serverConfig.GoMaxProcs > 0 {
		gwlog.Infof("SET GOMAXPROCS = %d", serverConfig.GoMaxProcs)
		runtime.GOMAXPROCS(serverConfig.GoMaxProcs)
	}

	logLevel := args.logLevel
	if logLevel == "" {
		logLevel = serverConfig.LogLevel
	}
	binutil.SetupGWLog("illarionserver", logLevel, serverConfig.LogFile, serverConfig.LogStderr)
	binutil.SetupHTTPServer(serverConfig.HTTPIp, serverConfig.HTTPPort)

	wm := world.NewWorldMap()
	if err := loadWorld(wm, worldConfig.SavePrefix); err != nil {
		gwlog.Fatalf("load world from %s failed: %v", worldConfig.SavePrefix, err)
	}
	gwlog.Infof("world loaded: %d maps", wm.NumMaps())

	if args.exportDir != "" {
		exportDir := args.exportDir
		if exportDir[len(exportDir)-1] != '/' {
			exportDir += "/"
		}
		if err := os.MkdirAll(exportDir, 0755); err != nil {
			gwlog.Fatalf("create export directory %s failed: %v", exportDir, err)
		}
		if err := wm.ExportTo(exportDir); err != nil {
			gwlog.Fatalf("export failed: %v", err)
		}
		gwlog.Infof("exported %d maps to %s", wm.NumMaps(), exportDir)
		return
	}

	runServerLoop(wm, serverConfig, worldConfig)
}

// loadWorld fills wm from the save files; a missing catalog is a fresh world,
// not an error
func loadWorld(wm *world.WorldMap, savePrefix string) error {
	if err := os.MkdirAll(filepath.Dir(savePrefix), 0755); err != nil {
		return err
	}

	err := tilemap.LoadWorld(savePrefix, wm)
	if err != nil && os.IsNotExist(errors.Cause(err)) {
		gwlog.Infof("no world save at %s, starting empty", savePrefix)
		return nil
	}
	return err
}

func runServerLoop(wm *world.WorldMap, serverConfig *config.ServerConfig, worldConfig *config.WorldConfig) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	saveTimer := gwutils.NewGapTimer(serverConfig.SaveInterval)
	saveTimer.Next() // don't save right after loading

	timer.AddTimer(consts.SERVER_TICK_INTERVAL, func() {
		wm.AllMapsAged()

		if saveTimer.Next() {
			if err := wm.SaveToDisk(worldConfig.SavePrefix); err != nil {
				gwlog.Errorf("periodic save failed: %v", err)
			}
		}
	})

	gwlog.Infof("server loop running, tick interval %s", consts.SERVER_TICK_INTERVAL)
	for {
		select {
		case sig := <-signalChan:
			gwlog.Infof("signal %s received, saving world before exit", sig)
			if err := wm.SaveToDisk(worldConfig.SavePrefix); err != nil {
				gwlog.Errorf("final save failed: %v", err)
				os.Exit(1)
			}
			return
		default:
		}

		gwutils.RunPanicless(timer.Tick)
		time.Sleep(consts.SERVER_TICK_INTERVAL)
	}
}
