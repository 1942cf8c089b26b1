// Package linesections serves transit lines and their section chains over
// HTTP.
//
// Routes live under /api:
//
//	GET    /api/health
//	POST   /api/stations                    create a station
//	GET    /api/stations                    list stations
//	DELETE /api/stations/{id}               delete an unused station
//	POST   /api/lines                       create a line with its first section
//	GET    /api/lines                       list lines (?format=xml)
//	GET    /api/lines/{id}                  one line (?format=xml)
//	PUT    /api/lines/{id}                  rename or recolor
//	DELETE /api/lines/{id}
//	POST   /api/lines/{id}/sections         add a section
//	DELETE /api/lines/{id}/sections?stationId=
//	GET    /api/lines/{id}/vehicles         realtime vehicle placement
//
// Errors are returned as {"error": "..."}. Unknown lines and stations map to
// 404; rejected sections, invalid distances, duplicate names and malformed
// requests map to 400; a missing realtime feed maps to 503 and a failing one
// to 502; everything else is a 500 with a generic message.
//
// Usage:
//
//	cfg, _ := config.LoadAppConfig()
//	logger := linesections.InitLogging(cfg.Logging, nil)
//	db, _ := store.Open(store.Options{Path: cfg.Storage.Path, InMemory: cfg.Storage.InMemory})
//	svc := line.NewService(db, line.Options{CacheSize: cfg.Cache.Size, Logger: logger})
//	srv := linesections.NewServer(cfg, svc, logger)
//	srv.Start()
//	_ = srv.HandleGracefulShutdown(context.Background())
package linesections
