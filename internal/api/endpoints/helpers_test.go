package endpoints

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"elearn-backend/internal/api"
	internaljwt "elearn-backend/internal/jwt"
	"elearn-backend/internal/queue"
)

var (
	serverOnce sync.Once
	server     *api.APIServer
)

// testServer is shared across tests: the Prometheus collectors inside the
// APIServer register against the default registry, so only one instance may
// exist per process.
func testServer() *api.APIServer {
	serverOnce.Do(func() {
		queueManager := queue.NewRequestQueueManager(10, 1)
		server = api.NewAPIServer(":0", queueManager, nil, nil)
	})
	return server
}

func fixedTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func bearerToken(t *testing.T, userID, email, role string) string {
	t.Helper()
	token, err := internaljwt.CreateToken(internaljwt.User{
		Id:    userID,
		Email: email,
		Role:  role,
	}, internaljwt.RoleUser, 0)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return "Bearer " + token
}

func handlerFor(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return testServer().MakeHTTPHandleFunc(f)
}
