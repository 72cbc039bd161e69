package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	imageRepo     = "sharedash"
	imageTag      = "test"
	containerPort = "4241/tcp"
)

var (
	imageBuildOnce     sync.Once
	imageBuildError    error
	dashboardContainer *DashboardContainer
	dashboardOnce      sync.Once
	dashboardStartErr  error
)

// DashboardContainer runs the dashboard image over the fixture data set.
type DashboardContainer struct {
	container testcontainers.Container
	ctx       context.Context
	cancel    context.CancelFunc
	url       string
}

// URL returns the base URL of the running container.
func (d *DashboardContainer) URL() string {
	return d.url
}

// CollectLogs saves the container output to dir/sharedash.log.
func (d *DashboardContainer) CollectLogs(dir string) {
	if d == nil || d.container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reader, err := d.container.Logs(ctx)
	if err != nil {
		return
	}
	defer reader.Close()

	logs, err := io.ReadAll(reader)
	if err != nil {
		return
	}
	writeFile(filepath.Join(dir, "sharedash.log"), logs)
}

// Cleanup terminates the container.
// Uses a fresh context in case the start context expired.
func (d *DashboardContainer) Cleanup() {
	if d == nil {
		return
	}

	cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cleanupCancel()

	if d.container != nil {
		d.container.Terminate(cleanupCtx)
	}
	if d.cancel != nil {
		d.cancel()
	}
}

// buildImage builds the sharedash:test image once per test run.
func buildImage() error {
	imageBuildOnce.Do(func() {
		ctx := context.Background()

		req := testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				FromDockerfile: testcontainers.FromDockerfile{
					Context:    FindProjectRoot(),
					Dockerfile: "tests/docker/Dockerfile",
					Repo:       imageRepo,
					Tag:        imageTag,
					KeepImage:  true,
				},
			},
		}

		_, imageBuildError = testcontainers.GenericContainer(ctx, req)
		if imageBuildError != nil {
			// Image may have built successfully even if container creation failed
			if strings.Contains(imageBuildError.Error(), imageRepo+":"+imageTag) {
				imageBuildError = nil
			}
		}
	})
	return imageBuildError
}

func startContainer() (*DashboardContainer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)

	ctr, err := testcontainers.Run(ctx, imageRepo+":"+imageTag,
		testcontainers.WithExposedPorts(containerPort),
		testcontainers.WithEnv(map[string]string{
			"SHAREDASH_ENV":         "dev",
			"SHAREDASH_SERVER_HOST": "0.0.0.0",
			"SHAREDASH_LOG_LEVEL":   "debug",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/api/health").WithPort(containerPort).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("start sharedash: %w", err)
	}

	mappedPort, err := ctr.MappedPort(ctx, containerPort)
	if err != nil {
		ctr.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		ctr.Terminate(ctx)
		cancel()
		return nil, fmt.Errorf("get container host: %w", err)
	}

	return &DashboardContainer{
		container: ctr,
		ctx:       ctx,
		cancel:    cancel,
		url:       fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
	}, nil
}

// StartDashboardForTestMain starts the container once per test process.
// Returns (nil, nil) when SHAREDASH_TEST_URL is set and an existing server is used.
func StartDashboardForTestMain() (*DashboardContainer, error) {
	if os.Getenv(TestURLEnv) != "" {
		return nil, nil
	}

	dashboardOnce.Do(func() {
		if err := buildImage(); err != nil {
			dashboardStartErr = fmt.Errorf("build image: %w", err)
			return
		}
		dashboardContainer, dashboardStartErr = startContainer()
		if dashboardStartErr == nil {
			SetTestURL(dashboardContainer.URL())
		}
	})

	return dashboardContainer, dashboardStartErr
}
