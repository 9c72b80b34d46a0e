package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// E2ETestSuite drives the running server over HTTP.
type E2ETestSuite struct {
	suite.Suite
	client *http.Client
	userID string
	token  string
}

// SetupSuite registers and logs in one user for the whole run.
func (suite *E2ETestSuite) SetupSuite() {
	suite.client = &http.Client{Timeout: 5 * time.Second}

	username := fmt.Sprintf("e2e_%d", time.Now().UnixNano())
	code, _ := suite.call("POST", "/register", url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"testpass123"},
	})
	require.Equal(suite.T(), http.StatusCreated, code, "could not register")

	code, env := suite.call("POST", "/login", url.Values{"username": {username}, "password": {"testpass123"}})
	require.Equal(suite.T(), http.StatusOK, code, "could not log in")

	var login struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &login))
	require.NotEmpty(suite.T(), login.Token, "server runs with JWT_SECRET")
	suite.userID = strconv.FormatInt(login.User.ID, 10)
	suite.token = login.Token
}

func (suite *E2ETestSuite) call(method, path string, form url.Values) (int, envelope) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, appURL+path, body)
	require.NoError(suite.T(), err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if suite.token != "" {
		req.Header.Set("Authorization", "Bearer "+suite.token)
	}

	resp, err := suite.client.Do(req)
	require.NoError(suite.T(), err, "%s %s", method, path)
	defer resp.Body.Close()

	var env envelope
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&env), "every response is an envelope")
	return resp.StatusCode, env
}

func (suite *E2ETestSuite) TestDBCheck() {
	code, env := suite.call("GET", "/db_check", nil)
	suite.Equal(http.StatusOK, code)
	suite.Equal("success", env.Status)
}

func (suite *E2ETestSuite) TestAddListUpdateDelete() {
	today := time.Now().Format("2006-01-02")

	code, env := suite.call("POST", "/addexpense", url.Values{
		"userid":      {suite.userID},
		"date":        {today},
		"expensename": {"Coffee"},
		"amount":      {"4.50"},
		"paymode":     {"card"},
		"category":    {"food"},
	})
	suite.Require().Equal(http.StatusCreated, code, env.Message)
	var created struct {
		ID int64 `json:"id"`
	}
	suite.Require().NoError(json.Unmarshal(env.Data, &created))
	id := strconv.FormatInt(created.ID, 10)

	code, env = suite.call("GET", "/expenses?userid="+suite.userID, nil)
	suite.Require().Equal(http.StatusOK, code)
	suite.Contains(string(env.Data), `"expensename":"Coffee"`)

	code, _ = suite.call("PUT", "/update_expense/"+id, url.Values{
		"userid":      {suite.userID},
		"date":        {today},
		"expensename": {"Coffee and cake"},
		"amount":      {"7.25"},
		"paymode":     {"card"},
		"category":    {"food"},
	})
	suite.Require().Equal(http.StatusOK, code)

	code, env = suite.call("GET", "/expense/"+id+"?userid="+suite.userID, nil)
	suite.Require().Equal(http.StatusOK, code)
	suite.Contains(string(env.Data), `"amount":7.25`)

	code, env = suite.call("GET", "/report/today?userid="+suite.userID, nil)
	suite.Require().Equal(http.StatusOK, code)
	suite.Contains(string(env.Data), `"time_series":[{`)

	code, _ = suite.call("DELETE", "/delete_expense/"+id+"?userid="+suite.userID, nil)
	suite.Require().Equal(http.StatusOK, code)

	code, env = suite.call("GET", "/expense/"+id+"?userid="+suite.userID, nil)
	suite.Equal(http.StatusNotFound, code)
	suite.Equal("error", env.Status)
}

func (suite *E2ETestSuite) TestLimit() {
	code, _ := suite.call("POST", "/limit", url.Values{"userid": {suite.userID}, "limit": {"250"}})
	suite.Require().Equal(http.StatusOK, code)

	code, env := suite.call("GET", "/limit?userid="+suite.userID, nil)
	suite.Require().Equal(http.StatusOK, code)
	suite.JSONEq(`{"limit":250}`, string(env.Data))
}

func (suite *E2ETestSuite) TestTokenMustMatchUser() {
	other, err := strconv.ParseInt(suite.userID, 10, 64)
	suite.Require().NoError(err)

	code, env := suite.call("GET", "/expenses?userid="+strconv.FormatInt(other+1000, 10), nil)
	suite.Equal(http.StatusUnauthorized, code)
	suite.Equal("error", env.Status)
}

func (suite *E2ETestSuite) TestMetricsExposed() {
	resp, err := suite.client.Get(appURL + "/metrics")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(string(body), "expense_tracker_http_requests_total")
}

func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
