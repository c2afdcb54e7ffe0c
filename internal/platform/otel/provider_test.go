package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/fightfantasy/internal/platform/otel"
)

const collector = "http://192.0.2.1:4318"

func TestOptionsEnabled(t *testing.T) {
	tests := []struct {
		name    string
		options otel.Options
		want    bool
	}{
		{name: "no endpoint", options: otel.Options{}, want: false},
		{name: "blank endpoint", options: otel.Options{Endpoint: "  "}, want: false},
		{name: "disabled", options: otel.Options{Endpoint: collector, Disabled: true}, want: false},
		{name: "endpoint set", options: otel.Options{Endpoint: collector}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.options.Enabled(); got != tt.want {
				t.Fatalf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	flush, err := otel.Setup(context.Background(), "companion-test", otel.Options{SampleRatio: 7})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func TestSetupRegistersProvider(t *testing.T) {
	for _, ratio := range []float64{1, 0.25, 0} {
		// 192.0.2.0/24 is reserved for documentation, nothing is exported.
		flush, err := otel.Setup(context.Background(), "companion-test", otel.Options{Endpoint: collector, SampleRatio: ratio})
		if err != nil {
			t.Fatalf("setup ratio %v: %v", ratio, err)
		}
		if err := flush(context.Background()); err != nil {
			t.Fatalf("flush ratio %v: %v", ratio, err)
		}
	}
}

func TestSetupRejectsBadSampleRatio(t *testing.T) {
	for _, ratio := range []float64{-0.1, 1.5} {
		if _, err := otel.Setup(context.Background(), "companion-test", otel.Options{Endpoint: collector, SampleRatio: ratio}); err == nil {
			t.Fatalf("expected error for ratio %v", ratio)
		}
	}
}
