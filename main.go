package main

import (
	"kartim.link/configs"
	"kartim.link/configs/configslog"
	"kartim.link/handlers/api"
	"kartim.link/handlers/web"
	"kartim.link/pkg/uploads"
	"kartim.link/repositories"
	"kartim.link/routes"
	"kartim.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.Load()

	// Depo process başına tek örnektir ve tüm tüketicilere açıkça iletilir.
	cardRepo := repositories.NewCardRepository(cfg.DataFile)
	avatarResolver := uploads.NewResolver(cfg.UploadDir)
	cardService := services.NewCardService(cardRepo, avatarResolver)

	cardHandler := api.NewCardHandler(cardService)
	pageHandler := web.NewPageHandler(cardService)

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})

	// Statik dosyalar; avatar yüklemeleri de bu dizin altından servis edilir.
	app.Static("/", "./public")

	routes.SetupRoutes(app, cardHandler, pageHandler)

	configslog.SLog.Infof("Sunucu http://localhost:%s adresinde dinliyor", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}
