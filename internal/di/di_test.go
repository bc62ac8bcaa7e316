package di_test

import (
	"testing"

	"github.com/fd1az/usdt-bridge/internal/di"
)

type counter struct{ n int }

func TestRegisterToken_LazySingleton(t *testing.T) {
	c := di.NewContainer()
	calls := 0
	token := di.NewToken[*counter]("test:counter")

	di.RegisterToken(c, token, func(di.ServiceRegistry) *counter {
		calls++
		return &counter{n: 7}
	})

	if calls != 0 {
		t.Fatalf("factory ran before first resolve")
	}

	a := di.GetToken(c, token)
	b := di.GetToken(c, token)

	if a != b {
		t.Error("expected the same instance on every resolve")
	}
	if calls != 1 {
		t.Errorf("expected factory to run once, ran %d times", calls)
	}
	if a.n != 7 {
		t.Errorf("expected n=7, got %d", a.n)
	}
}

func TestRegisterToken_ResolvesDependencies(t *testing.T) {
	c := di.NewContainer()
	c.Register("config", 42)

	token := di.NewToken[int]("test:double")
	di.RegisterToken(c, token, func(sr di.ServiceRegistry) int {
		return sr.Get("config").(int) * 2
	})

	if got := di.GetToken(c, token); got != 84 {
		t.Errorf("expected 84, got %d", got)
	}
}

func TestGet_UnknownKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unregistered key")
		}
	}()

	di.NewContainer().Get("missing")
}
