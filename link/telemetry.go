package link

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/go-lynx/wasplug/link")
