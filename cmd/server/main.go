package main

import (
	"log"

	"user-console/internal/config"
	"user-console/internal/server"
	"user-console/pkg/logger"
)

func main() {
	log.Println("User Console Server Starting...")

	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	log.Printf("Конфигурация загружена успешно")
	log.Printf("Сервер будет запущен на %s", cfg.Server.Address())
	log.Printf("Каталог пользователей: %s", cfg.Directory.BaseURL)
	log.Printf("Сервис сессий: %s", cfg.Session.BaseURL)

	appLog := logger.New(cfg.AppEnv)

	srv := server.NewServer(cfg, appLog)
	if err := srv.Start(); err != nil {
		log.Fatalf("Ошибка работы сервера: %v", err)
	}
}
