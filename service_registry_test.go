package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// stubService records lifecycle calls for registry tests.
type stubService struct {
	name     string
	initErr  error
	events   *[]string
	shutErr  error
	initSeen bool
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Initialize(ctx context.Context) error {
	s.initSeen = true
	if s.events != nil {
		*s.events = append(*s.events, "init:"+s.name)
	}
	return s.initErr
}

func (s *stubService) Shutdown() error {
	if s.events != nil {
		*s.events = append(*s.events, "shutdown:"+s.name)
	}
	return s.shutErr
}

func discardLog(string) {}

func TestRegistryRegistrationRetrieval(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 50).Draw(t, "serviceCount")

		reg := NewServiceRegistry(context.Background(), discardLog)

		services := make([]*stubService, count)
		for i := 0; i < count; i++ {
			svc := &stubService{name: fmt.Sprintf("svc-%d", i)}
			services[i] = svc
			if err := reg.Register(svc); err != nil {
				t.Fatalf("Register(%q): %v", svc.name, err)
			}
		}

		for i, svc := range services {
			got, ok := reg.Get(fmt.Sprintf("svc-%d", i))
			if !ok {
				t.Fatalf("Get(svc-%d) not found", i)
			}
			if got != Service(svc) {
				t.Fatalf("Get(svc-%d) returned a different instance", i)
			}
		}

		if _, ok := reg.Get(fmt.Sprintf("svc-%d", count)); ok {
			t.Fatal("Get for an unregistered name should return false")
		}
	})
}

func TestRegistryInitializeOrderAndReverseShutdown(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 30).Draw(t, "serviceCount")

		reg := NewServiceRegistry(context.Background(), discardLog)
		var events []string
		for i := 0; i < count; i++ {
			if err := reg.Register(&stubService{name: fmt.Sprintf("svc-%d", i), events: &events}); err != nil {
				t.Fatalf("Register: %v", err)
			}
		}

		if err := reg.InitializeAll(); err != nil {
			t.Fatalf("InitializeAll: %v", err)
		}
		reg.ShutdownAll()

		if len(events) != 2*count {
			t.Fatalf("expected %d lifecycle events, got %d", 2*count, len(events))
		}
		for i := 0; i < count; i++ {
			if want := fmt.Sprintf("init:svc-%d", i); events[i] != want {
				t.Fatalf("events[%d] = %q, want %q", i, events[i], want)
			}
			if want := fmt.Sprintf("shutdown:svc-%d", count-1-i); events[count+i] != want {
				t.Fatalf("events[%d] = %q, want %q", count+i, events[count+i], want)
			}
		}
	})
}

func TestRegistryDuplicateNameRejected(t *testing.T) {
	reg := NewServiceRegistry(context.Background(), discardLog)
	if err := reg.Register(&stubService{name: "store"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := reg.Register(&stubService{name: "store"}); err == nil {
		t.Fatal("duplicate name should be rejected")
	}
}

func TestRegistryCriticalFailureAborts(t *testing.T) {
	reg := NewServiceRegistry(context.Background(), discardLog)

	boom := errors.New("no database")
	failing := &stubService{name: "library", initErr: boom}
	after := &stubService{name: "metric_source"}

	if err := reg.RegisterCritical(failing); err != nil {
		t.Fatalf("RegisterCritical: %v", err)
	}
	if err := reg.Register(after); err != nil {
		t.Fatalf("Register: %v", err)
	}

	err := reg.InitializeAll()
	if err == nil {
		t.Fatal("critical failure should abort initialization")
	}
	if !errors.Is(err, boom) {
		t.Errorf("error should wrap the cause, got %v", err)
	}
	if after.initSeen {
		t.Error("services after a failed critical service must not initialize")
	}
}

func TestRegistryNonCriticalFailureContinues(t *testing.T) {
	reg := NewServiceRegistry(context.Background(), discardLog)

	failing := &stubService{name: "image", initErr: errors.New("endpoint down")}
	after := &stubService{name: "export"}

	if err := reg.Register(failing); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register(after); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := reg.InitializeAll(); err != nil {
		t.Fatalf("non-critical failure should not abort: %v", err)
	}
	if !after.initSeen {
		t.Error("later services should still initialize in degraded mode")
	}
}
