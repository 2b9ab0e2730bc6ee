//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/require"
)

func baseURL() string {
	if u := os.Getenv("E2E_BASE_URL"); u != "" {
		return u
	}
	switch os.Getenv("ENV") {
	case "CI":
		return "http://oscarparty:8080"
	}
	return "http://localhost:8080"
}

type E2EVotingFlowSuite struct {
	suite.Suite

	client   *http.Client
	password string
}

func TestE2EVotingFlowSuite(t *testing.T) {
	suite.RunSuite(t, new(E2EVotingFlowSuite))
}

func (s *E2EVotingFlowSuite) BeforeAll(t provider.T) {
	s.password = os.Getenv("E2E_PASSWORD")
	if s.password == "" {
		t.Skip("E2E_PASSWORD is not set")
	}
	s.client = &http.Client{Timeout: 30 * time.Second}
	require.True(t, s.waitForService(), "service did not become healthy")
}

func (s *E2EVotingFlowSuite) waitForService() bool {
	for range 30 {
		resp, err := s.client.Get(baseURL() + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return true
			}
		}
		time.Sleep(time.Second)
	}
	return false
}

func (s *E2EVotingFlowSuite) call(t provider.T, method, path, token string, body any, out any) int {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, baseURL()+"/api"+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Session-Token", token)
	}

	resp, err := s.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type category struct {
	ID       string `json:"id"`
	Nominees []struct {
		ID string `json:"id"`
	} `json:"nominees"`
}

type view struct {
	Phase string `json:"phase"`
	Step  int    `json:"step"`
}

func (s *E2EVotingFlowSuite) TestVotingFlow(t provider.T) {
	var login struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	code := s.call(t, http.MethodPost, "/auth/login", "", map[string]string{"password": s.password}, &login)
	require.Equal(t, http.StatusOK, code)
	require.True(t, login.Success)
	token := login.Token

	var above []category
	require.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/nominations?tier=above", token, nil, &above))
	require.Len(t, above, 8)

	var v view
	require.Equal(t, http.StatusOK, s.call(t, http.MethodPost, "/voting/start", token, nil, &v))
	require.Equal(t, "aboveTheLine", v.Phase)

	for i, c := range above {
		vote := map[string]string{"category_id": c.ID, "nominee_id": c.Nominees[0].ID}
		require.Equal(t, http.StatusOK, s.call(t, http.MethodPut, "/voting/votes", token, vote, &v), fmt.Sprintf("vote %d", i))
		require.Equal(t, http.StatusOK, s.call(t, http.MethodPost, "/voting/next", token, nil, &v))
	}
	require.Equal(t, "belowTheLine", v.Phase)

	require.Equal(t, http.StatusOK, s.call(t, http.MethodPost, "/voting/skip", token, nil, &v))
	require.Equal(t, "submission", v.Phase)

	require.Equal(t, http.StatusNoContent, s.call(t, http.MethodPost, "/auth/logout", token, nil, nil))
	require.Equal(t, http.StatusUnauthorized, s.call(t, http.MethodGet, "/voting", token, nil, nil))
}
