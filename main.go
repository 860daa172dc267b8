package main

import (
	"library-lending/app"
	"library-lending/loggers"
	"library-lending/routes"
)

func main() {
	loggers.Init()
	app.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	loggers.Logger.Infof("listening on :%s", application.Config.Port)
	_ = r.Run(":" + application.Config.Port)
}
