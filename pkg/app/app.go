// Package app loads tool configuration and sets up logging and metrics the
// same way for every launchpad command.
package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/letscook/cook-client/pkg/launchpad/network"
	metrics_util "github.com/letscook/cook-client/pkg/metrics"
	"github.com/letscook/cook-client/pkg/solana"
)

// LoadConfig reads the config file at path, if it exists, and overlays the
// environment.
func LoadConfig(path string) (*BaseConfig, error) {
	v := newViper()

	// viper.ReadInConfig only returns ConfigFileNotFoundError if it has to search
	// for a default config file because one hasn't been explicitly set. That is,
	// if we explicitly set a config file, and it does not exist, viper will not
	// return a ConfigFileNotFoundError, so we check ourselves.
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "failed to check if config exists")
		}
	}

	err := v.ReadInConfig()
	_, isConfigNotFound := err.(viper.ConfigFileNotFoundError)
	if err != nil && !isConfigNotFound {
		return nil, errors.Wrap(err, "failed to load config")
	}

	config := defaultConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if len(config.AppName) == 0 {
		return nil, errors.New("must specify an application name")
	}
	return &config, nil
}

// Environment is what a command needs to talk to the chain.
type Environment struct {
	Config   *BaseConfig
	Settings *network.Settings
	Client   solana.Client
	Reader   *network.RPCReader

	metricsProvider *newrelic.Application
	logFile         io.Closer
}

// Setup configures logging and metrics, and connects to the configured RPC
// endpoint. The returned context carries the metrics provider, if any.
func Setup(ctx context.Context, config *BaseConfig) (context.Context, *Environment, error) {
	env := &Environment{Config: config}

	if len(config.NewRelicLicenseKey) > 0 {
		nr, err := newrelic.NewApplication(
			newrelic.ConfigFromEnvironment(),
			newrelic.ConfigAppName(config.AppName),
			newrelic.ConfigLicense(config.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			return nil, nil, errors.Wrap(err, "error connecting to new relic")
		}

		env.metricsProvider = nr
		ctx = metrics_util.WithApplication(ctx, nr)
	}

	env.logFile = configureLogger(config, env.metricsProvider)

	cluster, err := network.ParseCluster(config.Cluster)
	if err != nil {
		env.Close()
		return nil, nil, err
	}

	var cookFees = solana.MustPublicKeyFromString("11111111111111111111111111111111")
	if config.CookFees != "" {
		cookFees, err = solana.PublicKeyFromString(config.CookFees)
		if err != nil {
			env.Close()
			return nil, nil, errors.Wrap(err, "invalid cook fees account")
		}
	}

	env.Settings, err = network.LoadSettings(ctx, network.WithStaticConfigs(cluster, cookFees))
	if err != nil {
		env.Close()
		return nil, nil, err
	}

	endpoint := config.RPCEndpoint
	if endpoint == "" {
		endpoint = defaultEndpoint(cluster)
	}
	wsEndpoint := config.WebsocketEndpoint
	if wsEndpoint == "" {
		wsEndpoint = solana.WebsocketEndpoint(endpoint)
	}

	env.Client = solana.New(endpoint)
	env.Reader = network.NewRPCReader(env.Client, wsEndpoint)
	return ctx, env, nil
}

func defaultEndpoint(cluster network.Cluster) string {
	switch cluster {
	case network.ClusterDevnet:
		return string(solana.EnvironmentDev)
	case network.ClusterEclipse:
		return string(solana.EnvironmentEclipse)
	}
	return string(solana.EnvironmentProd)
}

// Close releases the websocket, flushes metrics and closes the log file.
func (e *Environment) Close() {
	if e.Reader != nil {
		e.Reader.Close()
	}
	if e.metricsProvider != nil {
		e.metricsProvider.Shutdown(e.Config.ShutdownGracePeriod)
	}
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}

// RunUntilSignal runs task until it returns or the process is interrupted.
// On interrupt the task's context is cancelled and it is given the shutdown
// grace period to return.
func RunUntilSignal(ctx context.Context, config *BaseConfig, task func(ctx context.Context) error) error {
	logger := logrus.StandardLogger().WithField("type", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- task(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		logger.Info("interrupt received, shutting down")
	}

	cancel()

	select {
	case err := <-errCh:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case <-time.After(config.ShutdownGracePeriod):
		return errors.Errorf("failed to stop within %v", config.ShutdownGracePeriod)
	}
}

func configureLogger(config *BaseConfig, metricsProvider *newrelic.Application) io.Closer {
	var formatter logrus.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if strings.ToLower(config.LogFormat) == "json" {
		formatter = &logrus.JSONFormatter{}
	}

	if metricsProvider != nil {
		logrus.SetFormatter(metrics_util.NewCustomNewRelicLogFormatter(metricsProvider, formatter))
	} else {
		logrus.SetFormatter(formatter)
	}

	level, err := logrus.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		logrus.StandardLogger().WithField("log_level", config.LogLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}

	if config.LogFile == "" {
		logrus.SetOutput(os.Stderr)
		return nil
	}

	file := &lumberjack.Logger{
		Filename:   config.LogFile,
		MaxSize:    config.LogFileMaxSizeMB,
		MaxBackups: config.LogFileMaxBackups,
	}
	logrus.SetOutput(file)
	return file
}
