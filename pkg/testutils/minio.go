package testutils

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const MinioAccessKey = "podcommpodcomm"
const MinioSecretKey = "podcommpodcomm"

// SetupMinio starts a throwaway minio container and returns its endpoint.
// The test is skipped when no docker daemon is reachable.
func SetupMinio(t *testing.T) string {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}

	options := &dockertest.RunOptions{
		Repository: "minio/minio",
		Tag:        "latest",
		Cmd:        []string{"server", "/data"},
		Env: []string{
			fmt.Sprintf("MINIO_ROOT_USER=%s", MinioAccessKey),
			fmt.Sprintf("MINIO_ROOT_PASSWORD=%s", MinioSecretKey),
		},
	}

	resource, err := pool.RunWithOptions(options, func(config *docker.HostConfig) {
		// set AutoRemove to true so that stopped container goes away by itself
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		t.Fatalf("could not start minio: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("could not purge minio: %v", err)
		}
	})

	if err = resource.Expire(180); err != nil {
		t.Fatalf("could not set minio expiry: %v", err)
	}

	endpoint := fmt.Sprintf("localhost:%s", resource.GetPort("9000/tcp"))

	err = pool.Retry(func() error {
		resp, err := http.Get(fmt.Sprintf("http://%s/minio/health/live", endpoint))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status code %d", resp.StatusCode)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("minio never became healthy: %v", err)
	}
	return endpoint
}
