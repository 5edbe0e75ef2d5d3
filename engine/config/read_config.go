package config

import (
	"encoding/json"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/go-ini/ini"
	"github.com/pkg/errors"
	"github.com/r-lodahl/Illarion-Server/engine/gwlog"
)

const (
	_DEFAULT_CONFIG_FILE   = "illarion.ini"
	_DEFAULT_HTTP_IP       = "127.0.0.1"
	_DEFAULT_LOG_LEVEL     = "debug"
	_DEFAULT_SAVE_INTERVAL = time.Minute * 5
)

var (
	configFilePath = _DEFAULT_CONFIG_FILE
	illarionConfig *IllarionConfig
	configLock     sync.Mutex
)

// ServerConfig defines fields of the server process config
type ServerConfig struct {
	LogFile      string
	LogStderr    bool
	LogLevel     string
	HTTPIp       string
	HTTPPort     int
	GoMaxProcs   int
	SaveInterval time.Duration
}

// WorldConfig defines fields of the world persistence config
type WorldConfig struct {
	SavePrefix string // path prefix of the binary world save (catalog + map files)
	ExportDir  string // directory for the text export, with trailing separator
}

// IllarionConfig defines the total config file structure
type IllarionConfig struct {
	Server ServerConfig
	World  WorldConfig
}

// SetConfigFile sets the config file path (illarion.ini by default)
func SetConfigFile(f string) {
	configFilePath = f
}

// GetConfigDir returns the directory of illarion.ini
func GetConfigDir() string {
	dir, _ := path.Split(configFilePath)
	return dir
}

// GetConfigFilePath returns the config file path
func GetConfigFilePath() string {
	return configFilePath
}

// Get returns the total Illarion config
func Get() *IllarionConfig {
	configLock.Lock()
	defer configLock.Unlock()
	if illarionConfig == nil {
		illarionConfig = readIllarionConfig()
	}
	return illarionConfig
}

// Reload forces the server to reload the whole config
func Reload() *IllarionConfig {
	configLock.Lock()
	illarionConfig = nil
	configLock.Unlock()

	return Get()
}

// GetServer returns the server process config
func GetServer() *ServerConfig {
	return &Get().Server
}

// GetWorld returns the world persistence config
func GetWorld() *WorldConfig {
	return &Get().World
}

// DumpPretty format config to string in pretty format
func DumpPretty(cfg interface{}) string {
	s, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err.Error()
	}
	return string(s)
}

func readIllarionConfig() *IllarionConfig {
	config := IllarionConfig{}
	gwlog.Infof("Using config file: %s", configFilePath)
	iniFile, err := ini.Load(configFilePath)
	checkConfigError(err, "")

	readServerConfig(iniFile.Section("server"), &config.Server)

	for _, sec := range iniFile.Sections() {
		secName := strings.ToLower(sec.Name())
		if secName == "default" {
			continue
		}

		if secName == "server" {
			// already read
		} else if secName == "world" {
			readWorldConfig(sec, &config.World)
		} else {
			gwlog.Errorf("unknown section: %s", secName)
		}
	}

	validateConfig(&config)
	return &config
}

func readServerConfig(sec *ini.Section, sc *ServerConfig) {
	sc.LogFile = "illarionserver.log"
	sc.LogStderr = true
	sc.LogLevel = _DEFAULT_LOG_LEVEL
	sc.HTTPIp = _DEFAULT_HTTP_IP
	sc.HTTPPort = 0 // pprof not enabled by default
	sc.GoMaxProcs = 0
	sc.SaveInterval = _DEFAULT_SAVE_INTERVAL

	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "log_file" {
			sc.LogFile = key.MustString(sc.LogFile)
		} else if name == "log_stderr" {
			sc.LogStderr = key.MustBool(sc.LogStderr)
		} else if name == "log_level" {
			sc.LogLevel = key.MustString(sc.LogLevel)
		} else if name == "http_ip" {
			sc.HTTPIp = key.MustString(sc.HTTPIp)
		} else if name == "http_port" {
			sc.HTTPPort = key.MustInt(sc.HTTPPort)
		} else if name == "gomaxprocs" {
			sc.GoMaxProcs = key.MustInt(sc.GoMaxProcs)
		} else if name == "save_interval" {
			sc.SaveInterval = time.Second * time.Duration(key.MustInt(int(_DEFAULT_SAVE_INTERVAL/time.Second)))
		} else {
			gwlog.Panicf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}
}

func readWorldConfig(sec *ini.Section, wc *WorldConfig) {
	wc.SavePrefix = "save/world"
	wc.ExportDir = "export/"

	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "save_prefix" {
			wc.SavePrefix = key.MustString(wc.SavePrefix)
		} else if name == "export_dir" {
			wc.ExportDir = key.MustString(wc.ExportDir)
		} else {
			gwlog.Panicf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}
}

func validateConfig(config *IllarionConfig) {
	if config.World.SavePrefix == "" {
		gwlog.Panicf("save_prefix must not be empty")
	}
	// export filenames are built by plain concatenation, so the directory
	// needs its trailing separator
	if config.World.ExportDir != "" && !strings.HasSuffix(config.World.ExportDir, "/") {
		config.World.ExportDir += "/"
	}
}

func checkConfigError(err error, msg string) {
	if err != nil {
		if msg == "" {
			msg = err.Error()
		}
		gwlog.Panicf("read config error: %s", errors.Wrap(err, msg))
	}
}
