package health

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/weekplanner/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type fakePinger struct {
	fail  atomic.Bool
	calls atomic.Int32
}

func (p *fakePinger) Ping(context.Context) error {
	p.calls.Add(1)
	if p.fail.Load() {
		return errors.New("no primary")
	}
	return nil
}

func TestProbe_PublishesStatus(t *testing.T) {
	p := &fakePinger{}
	s := NewServer("", p, time.Hour, logging.Nop{})

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, s.probe(context.Background()))

	p.fail.Store(true)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, s.probe(context.Background()))

	resp, err := s.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func TestWatch_ReprobesUntilCancelled(t *testing.T) {
	p := &fakePinger{}
	s := NewServer("", p, 10*time.Millisecond, logging.Nop{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.watch(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not return")
	}
}

func TestServe_AnswersHealthChecks(t *testing.T) {
	listen, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer(listen.Addr().String(), &fakePinger{}, time.Hour, logging.Nop{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, listen) }()

	conn, err := grpc.NewClient(listen.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	cctx, ccancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer ccancel()
	resp, err := healthpb.NewHealthClient(conn).Check(cctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_BadAddress(t *testing.T) {
	s := NewServer("bad::addr::", &fakePinger{}, time.Hour, logging.Nop{})
	assert.Error(t, s.Run(context.Background()))
}

func TestNewServer_NonPositiveIntervalFallsBack(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		s := NewServer("", &fakePinger{}, d, logging.Nop{})
		assert.Equal(t, DefaultInterval, s.interval)
	}

	s := NewServer("", &fakePinger{}, 500*time.Millisecond, logging.Nop{})
	assert.Equal(t, 500*time.Millisecond, s.interval)
}
