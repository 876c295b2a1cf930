package telemetry_test

import (
	"context"
	"net"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/victornm/eqgame/internal/telemetry"
)

func TestGRPCServerInterceptor(t *testing.T) {
	m := telemetry.NewMetrics(prometheus.NewRegistry())

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(telemetry.GRPCServerInterceptor(m))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	client := healthpb.NewHealthClient(conn)
	ctx := context.Background()

	_, err = client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)

	_, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: "unknown"})
	require.Error(t, err)

	const method = "/grpc.health.v1.Health/Check"
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCs.WithLabelValues(method, "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCs.WithLabelValues(method, "NotFound")))
}
