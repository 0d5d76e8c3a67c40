package jwglxt

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("kebiao.lib.scrapers.jwglxt")
