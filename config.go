package main

import (
	"errors"
	"net/url"

	"github.com/spf13/viper"
)

type config struct {
	Server      *configServer      `mapstructure:"server"`
	Db          *configDb          `mapstructure:"database"`
	Cache       *configCache       `mapstructure:"cache"`
	Marketplace *configMarketplace `mapstructure:"marketplace"`
	Blocks      *configBlocks      `mapstructure:"blocks"`
	Templates   *configTemplates   `mapstructure:"templates"`
	Plugins     []*configPlugin    `mapstructure:"plugins"`
	Debug       bool               `mapstructure:"debug"`
	initialized bool
}

type configServer struct {
	Logging        bool   `mapstructure:"logging"`
	LogFile        string `mapstructure:"logFile"`
	Port           int    `mapstructure:"port"`
	PublicAddress  string `mapstructure:"publicAddress"`
	publicHostname string
}

type configDb struct {
	File  string `mapstructure:"file"`
	Debug bool   `mapstructure:"debug"`
}

type configCache struct {
	Enable     bool  `mapstructure:"enable"`
	Expiration int64 `mapstructure:"expiration"`
}

// configMarketplace configures the storefront paths and listing defaults.
type configMarketplace struct {
	// Path of the vendor listing page, e.g. "/stores"
	ListingPath string `mapstructure:"listingPath"`
	// Path prefix for single store pages, e.g. "/store"
	StorePathPrefix string `mapstructure:"storePathPrefix"`
	// Path prefix for single product pages, e.g. "/product"
	ProductPathPrefix string `mapstructure:"productPathPrefix"`
	// Default number of sellers per listing page
	PerPage int `mapstructure:"perPage"`
	// Where the become-a-vendor call to action links to
	VendorRegistrationURL string `mapstructure:"vendorRegistrationUrl"`
}

type configBlocks struct {
	// Directory containing one subdirectory per block with a block.json descriptor
	Dir string `mapstructure:"dir"`
}

type configTemplates struct {
	// Directory containing the page template content files
	Dir string `mapstructure:"dir"`
}

type configPlugin struct {
	Path   string         `mapstructure:"path"`
	Import string         `mapstructure:"import"`
	Type   string         `mapstructure:"type"`
	Config map[string]any `mapstructure:"config"`
}

func (a *storeBlocks) loadConfigFile(file string) error {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config/")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && file == "" {
			// No config file, defaults only
			a.cfg = createDefaultConfig()
			return nil
		}
		return err
	}
	a.cfg = createDefaultConfig()
	return v.Unmarshal(a.cfg)
}

func (a *storeBlocks) initConfig() error {
	if a.cfg == nil {
		a.cfg = createDefaultConfig()
	}
	if a.cfg.initialized {
		return nil
	}
	if a.cfg.Server.PublicAddress == "" {
		return errors.New("no public address configured")
	}
	publicURL, err := url.Parse(a.cfg.Server.PublicAddress)
	if err != nil {
		return errors.New("invalid public address: " + err.Error())
	}
	a.cfg.Server.publicHostname = publicURL.Hostname()
	if a.cfg.Marketplace.PerPage < 1 {
		a.cfg.Marketplace.PerPage = defaultSellersPerPage
	}
	a.cfg.initialized = true
	return nil
}

func createDefaultConfig() *config {
	return &config{
		Server: &configServer{
			Port:          8080,
			PublicAddress: "http://localhost:8080",
		},
		Db: &configDb{
			File: "data/storeblocks.db",
		},
		Cache: &configCache{
			Enable:     true,
			Expiration: 600,
		},
		Marketplace: &configMarketplace{
			ListingPath:           "/stores",
			StorePathPrefix:       "/store",
			ProductPathPrefix:     "/product",
			PerPage:               defaultSellersPerPage,
			VendorRegistrationURL: "/become-a-vendor",
		},
		Blocks: &configBlocks{
			Dir: "blocks",
		},
		Templates: &configTemplates{
			Dir: "templates",
		},
	}
}
