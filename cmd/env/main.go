// Command env печатает конфиг, который получит сервис: .env (godotenv) + окружение (envconfig, префикс CALCULATOR).
// Пароли маскируются, в том числе внутри Mongo URI.
package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/kelseyhightower/envconfig"

	"deskCalc/internal/app"
)

const mask = "***"

func main() {
	cfg, err := app.LoadCfg()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		fmt.Fprintln(os.Stderr)
		// Usage печатает все переменные с типами и значениями по умолчанию.
		_ = envconfig.Usage(app.AppName, &app.Config{})
		os.Exit(1)
	}

	maskSecrets(&cfg)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
}

func maskSecrets(cfg *app.Config) {
	if cfg.DB.Password != "" {
		cfg.DB.Password = mask
	}
	if cfg.Redis.Password != "" {
		cfg.Redis.Password = mask
	}
	if cfg.ClickHouse.Password != "" {
		cfg.ClickHouse.Password = mask
	}
	cfg.Mongo.URI = maskURI(cfg.Mongo.URI)
}

// maskURI прячет пароль из userinfo. URI, который не разбирается, целиком заменяется маской.
func maskURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return mask
	}
	return u.Redacted()
}
