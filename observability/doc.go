// Package observability wires OpenTelemetry tracing and metrics for the API
// clients.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, cfg, log)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "console.users.get")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, cfg, log)
//	defer mp.Shutdown(ctx)
//
//	m, err := observability.NewClientMetrics(observability.Meter("consoleapi"))
//	m.RecordCall(ctx, "docs", "GET /api/v0/docs/", 200, time.Since(start))
package observability
