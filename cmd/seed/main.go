// seed crea el usuario admin (admin/admin123) y los productos de ejemplo con su saldo inicial.
// Es idempotente: no duplica el admin ni productos con el mismo nombre.
//
// Uso: go run ./cmd/seed   (usa la misma configuración que la API: STORE_DRIVER, DATABASE_URL, ...)
package main

import (
	"context"
	"os"
	"time"

	"github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/storage"
	"github.com/Kaua1102bit/avaliacao-saep/pkg/config"
	"github.com/Kaua1102bit/avaliacao-saep/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("persistencia")
	}

	err = newSeeder(st, log).run(ctx)
	st.Close()
	if err != nil {
		log.Error().Err(err).Msg("seed falló")
		os.Exit(1)
	}
	log.Info().Msg("seed completado")
}
