package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"terre-server/config"
	"terre-server/di"
	"terre-server/store"
	"terre-server/util"
	"terre-server/view"
)

func main() {
	renderMap := flag.String("render-map", "", "load the directory, write the map to this HTML file and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debugf("[Main] No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[Main] Failed to load config: %v", err)
	}
	util.SetLogLevel(cfg.LogLevel)

	container := di.NewContainer(cfg)

	if *renderMap != "" {
		container.BusinessService.Load(context.Background())
		state := store.Reduce(store.InitialState(0, container.BusinessService.Now()), store.Loaded{
			Businesses: container.BusinessService.All(),
		})
		if err := util.WriteMapFile(*renderMap, view.MapView(state)); err != nil {
			log.Fatalf("[Main] %v", err)
		}
		return
	}

	// The default snapshot URL points at this server, so the list is loaded
	// once the listener is up. Sessions created earlier get it when it lands.
	go func() {
		<-container.TerreHttpServer.Ready()
		container.BusinessService.Load(context.Background())
		container.SessionService.PublishLoaded()
	}()

	container.StatusRefresherService.StartPeriodicJob(cfg.StatusRefreshSeconds)

	container.TerreHttpServer.Start()
}
