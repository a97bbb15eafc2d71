package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "SPENDERMAN_"

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMongo    = "mongo"
)

type Application struct {
	Server   Server   `koanf:"server"`
	Storage  Storage  `koanf:"storage"`
	Database Database `koanf:"db"`
	SQLite   SQLite   `koanf:"sqlite"`
	Mongo    Mongo    `koanf:"mongo"`
	Budget   Budget   `koanf:"budget"`
	Seed     Seed     `koanf:"seed"`
	Summary  Summary  `koanf:"summary"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Storage struct {
	Backend string `koanf:"backend"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type SQLite struct {
	Path string `koanf:"path"`
}

type Mongo struct {
	URI        string `koanf:"uri"`
	Database   string `koanf:"database"`
	Collection string `koanf:"collection"`
}

type Budget struct {
	// CategoryScopeIgnoresDates keeps category budgets counting expenses outside their own date range.
	CategoryScopeIgnoresDates bool `koanf:"categoryscopeignoresdates"`
}

type Seed struct {
	Enabled bool `koanf:"enabled"`
}

type Summary struct {
	RecentLimit int `koanf:"recentlimit"`
}

func Defaults() Application {
	return Application{
		Server:  Server{Addr: ":8181"},
		Storage: Storage{Backend: BackendMemory},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "spenderman",
			Pass:   "",
			Name:   "spenderman",
			Schema: "spenderman",
		},
		SQLite: SQLite{Path: "spenderman.db"},
		Mongo: Mongo{
			URI:        "mongodb://localhost:27017",
			Database:   "spenderman",
			Collection: "kv_store",
		},
		Budget:  Budget{CategoryScopeIgnoresDates: true},
		Summary: Summary{RecentLimit: 5},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	// Variables already present in the environment win over the .env file.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("failed to read .env file: %v", err)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
