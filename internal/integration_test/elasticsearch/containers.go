//go:build integration

package elasticsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

const (
	elasticsearchImage = "docker.elastic.co/elasticsearch/elasticsearch:8.15.0"
	elasticsearchPort  = "9200/tcp"
)

func startElasticSearchContainer(
	ctx context.Context,
	logger *zap.Logger,
) (
	elasticSearchURI string,
	stopContainer func(),
	err error,
) {
	childCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        elasticsearchImage,
		ExposedPorts: []string{elasticsearchPort},
		Env: map[string]string{
			"discovery.type":         "single-node",
			"xpack.security.enabled": "false",
			"ES_JAVA_OPTS":           "-Xms512m -Xmx512m",
		},
		WaitingFor: wait.ForHTTP("/").
			WithPort(elasticsearchPort).
			WithStartupTimeout(3 * time.Minute),
	}

	elasticSearchContainer, err := testcontainers.GenericContainer(childCtx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", func() {}, fmt.Errorf("failed to start container: %w", err)
	}

	stopContainer = func() {
		if err := elasticSearchContainer.Terminate(context.Background()); err != nil {
			logger.Error("Failed to terminate elasticsearch container", zap.Error(err))
		}
	}

	host, err := elasticSearchContainer.Host(childCtx)
	if err != nil {
		stopContainer()
		return "", func() {}, fmt.Errorf("failed to get container host: %w", err)
	}

	p, err := elasticSearchContainer.MappedPort(childCtx, elasticsearchPort)
	if err != nil {
		stopContainer()
		return "", func() {}, fmt.Errorf("failed to get container port: %w", err)
	}

	elasticSearchURI = fmt.Sprintf("http://%s:%s", host, p.Port())
	logger.Info("Elasticsearch URI", zap.String("elasticSearchURI", elasticSearchURI))
	return elasticSearchURI, stopContainer, nil
}
