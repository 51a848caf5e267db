// Package health provides liveness and readiness probes for the langkey server.
//
// [LivenessHandler] always answers OK. [ReadinessHandler] runs a set of named
// [Checks] in parallel and answers 503 when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "lang_root": health.DirCheck(store.LangDir("en")),
//	    "redis":     redis.Healthcheck(client),
//	}, health.WithLogger(log)))
//
// Responses are plain text ("OK" / "Service Unavailable") unless the client
// asks for JSON with ?format=json or an Accept header:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "lang_root": {"status": "healthy"},
//	    "redis": {"status": "unhealthy", "error": "connection refused"}
//	  }
//	}
//
// [Run] executes the same checks without HTTP, for the CLI.
package health
