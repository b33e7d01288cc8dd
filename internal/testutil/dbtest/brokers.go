//go:build e2e

package dbtest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// sharedContainer starts its container at most once per test process.
type sharedContainer struct {
	once      sync.Once
	container testcontainers.Container
	err       error
}

func (s *sharedContainer) start(t *testing.T, req testcontainers.ContainerRequest, port string) string {
	t.Helper()

	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		s.container, s.err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
	})
	require.NoError(t, s.err, "failed to start %s container", req.Image)

	ctx := context.Background()
	mapped, err := s.container.MappedPort(ctx, port)
	require.NoError(t, err)
	host, err := s.container.Host(ctx)
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, mapped.Port())
}

var (
	redisContainer    sharedContainer
	rabbitmqContainer sharedContainer
)

// StartRedis returns the host:port of a redis:7 container.
func StartRedis(t *testing.T) string {
	t.Helper()
	return redisContainer.start(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		Labels:       map[string]string{"purpose": "e2e-tests"},
	}, "6379/tcp")
}

// StartRabbitMQ returns an AMQP URL for a rabbitmq:3.13 container.
func StartRabbitMQ(t *testing.T) string {
	t.Helper()
	addr := rabbitmqContainer.start(t, testcontainers.ContainerRequest{
		Image:        "rabbitmq:3.13-alpine",
		ExposedPorts: []string{"5672/tcp"},
		Env: map[string]string{
			"RABBITMQ_DEFAULT_USER": testUser,
			"RABBITMQ_DEFAULT_PASS": testPassword,
		},
		// logged once the AMQP listener accepts connections
		WaitingFor: wait.ForLog("Server startup complete").WithStartupTimeout(2 * time.Minute),
		Labels:     map[string]string{"purpose": "e2e-tests"},
	}, "5672/tcp")
	return fmt.Sprintf("amqp://%s:%s@%s/", testUser, testPassword, addr)
}
