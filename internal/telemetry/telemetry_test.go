package telemetry

import (
	"context"
	"testing"
)

func TestTracerWithoutSetup(t *testing.T) {
	_, span := Tracer("test").Start(context.Background(), "noop.span")
	defer span.End()

	if span.SpanContext().IsSampled() {
		t.Error("spans should not be sampled before Setup registers a provider")
	}
}

func TestNoopTracer(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "noop.span")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Error("noop tracer should produce invalid span contexts")
	}
}

func TestGetHostname(t *testing.T) {
	if getHostname() == "" {
		t.Error("getHostname() should never be empty")
	}
}
