// Package bootstrap runs the faber service: it builds the container
// registry from configuration, serves it over HTTP and tears everything
// down on SIGINT or SIGTERM.
//
//	app, err := bootstrap.NewApp(ctx, &cfg)
//	if err != nil {
//	    return err
//	}
//	return app.Run(ctx)
//
// Startup order: telemetry, registry, primary container (env file, then
// definition files, then freezes), HTTP server, OnStart hooks, OnReady
// hooks. Shutdown runs OnStop hooks, stops the server, flushes the
// registry and shuts telemetry down.
package bootstrap
