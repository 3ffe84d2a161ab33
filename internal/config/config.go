package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "SPENDWISE_"

type StorageType string

const (
	StoragePostgres StorageType = "postgres"
	StorageMemory   StorageType = "memory"
)

type Application struct {
	Server   Server      `koanf:"server"`
	Storage  StorageType `koanf:"storage"`
	Database Database    `koanf:"db"`
	Broker   Broker      `koanf:"broker"`
}

type Server struct {
	Port int `koanf:"port"`
}

type Database struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Pass     string `koanf:"pass"`
	Name     string `koanf:"name"`
	Schema   string `koanf:"schema"`
	MaxConns int32  `koanf:"maxconns"`
	MinConns int32  `koanf:"minconns"`
}

// Broker configures forwarding of ledger events to AMQP. Forwarding is off when URL is empty.
type Broker struct {
	URL      string `koanf:"url"`
	Exchange string `koanf:"exchange"`
}

func (b Broker) Enabled() bool {
	return b.URL != ""
}

func defaults() Application {
	return Application{
		Server:  Server{Port: 8181},
		Storage: StoragePostgres,
		Database: Database{
			Host:     "localhost",
			Port:     5432,
			User:     "spendwise",
			Pass:     "",
			Name:     "spendwise",
			Schema:   "spendwise",
			MaxConns: 25,
			MinConns: 5,
		},
		Broker: Broker{Exchange: "spendwise.ledger"},
	}
}

// Load reads defaults, then the optional YAML file at path, then SPENDWISE_* environment variables.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err := k.Load(env.Provider(".", env.Opt{
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
