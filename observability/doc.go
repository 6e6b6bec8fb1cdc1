// Package observability exports container activity through OpenTelemetry.
//
// Providers:
//
//	mp, err := observability.InitMeter(ctx, cfg)
//	defer mp.Shutdown(ctx)
//	tp, err := observability.InitTracer(ctx, cfg)
//	defer tp.Shutdown(ctx)
//
// Container instrumentation:
//
//	obs, err := observability.NewObserver(observability.Meter("faber"), observability.Tracer("faber"))
//	c, err := container.New(container.WithObserver(obs))
//
// Every cache hit and miss is counted, and every factory call is recorded as
// a span plus a duration histogram sample.
package observability
