package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DashboardConfig tunes listing and report behavior without redeploying.
type DashboardConfig struct {
	PageSize          int `mapstructure:"pageSize"`
	LowStockThreshold int `mapstructure:"lowStockThreshold"`
	PriceListSize     int `mapstructure:"priceListSize"`
	LatestInvoices    int `mapstructure:"latestInvoices"`
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		PageSize:          10,
		LowStockThreshold: 2,
		PriceListSize:     5,
		LatestInvoices:    5,
	}
}

// DashboardConfigHolder exposes the current dashboard config and hot-reloads
// it when the backing file changes.
type DashboardConfigHolder struct {
	current atomic.Value // holds DashboardConfig
}

func NewDashboardConfigHolder() (*DashboardConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("dashboard")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/backoffice")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDashboardConfig()
	v.SetDefault("dashboard.pageSize", defaults.PageSize)
	v.SetDefault("dashboard.lowStockThreshold", defaults.LowStockThreshold)
	v.SetDefault("dashboard.priceListSize", defaults.PriceListSize)
	v.SetDefault("dashboard.latestInvoices", defaults.LatestInvoices)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	var cfg DashboardConfig
	if err := v.UnmarshalKey("dashboard", &cfg); err != nil {
		return nil, err
	}
	if err := validateDashboardConfig(cfg); err != nil {
		return nil, err
	}

	holder := &DashboardConfigHolder{}
	holder.current.Store(cfg)

	if fileFound {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			var updated DashboardConfig
			if err := v.UnmarshalKey("dashboard", &updated); err != nil {
				log.Printf("[dashboard-config] reload failed: %v", err)
				return
			}
			if err := validateDashboardConfig(updated); err != nil {
				log.Printf("[dashboard-config] invalid config ignored: %v", err)
				return
			}
			holder.current.Store(updated)
			log.Printf("[dashboard-config] reloaded from %s", e.Name)
		})
	}

	return holder, nil
}

func (h *DashboardConfigHolder) Get() DashboardConfig {
	return h.current.Load().(DashboardConfig)
}

// NewStaticDashboardConfigHolder returns a holder pinned to cfg; test helper.
func NewStaticDashboardConfigHolder(cfg DashboardConfig) *DashboardConfigHolder {
	holder := &DashboardConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateDashboardConfig(cfg DashboardConfig) error {
	if cfg.PageSize < 1 {
		return errors.New("dashboard.pageSize must be at least 1")
	}
	if cfg.LowStockThreshold < 0 {
		return errors.New("dashboard.lowStockThreshold cannot be negative")
	}
	if cfg.PriceListSize < 1 {
		return errors.New("dashboard.priceListSize must be at least 1")
	}
	if cfg.LatestInvoices < 1 {
		return errors.New("dashboard.latestInvoices must be at least 1")
	}
	return nil
}
