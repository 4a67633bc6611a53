package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/leoalmeida/desafio-fullstack/internal/domain"
	"github.com/leoalmeida/desafio-fullstack/internal/pkg/logger"
	"github.com/leoalmeida/desafio-fullstack/internal/pkg/serviceerrors"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client autentica credenciais no colaborador externo de login e devolve o
// bearer token cru. Decodificar o payload é papel do Session Store.
type Client struct {
	client    httpClient
	serverURL url.URL
}

func NewClient(client httpClient, serverURL url.URL) *Client {
	return &Client{
		client:    client,
		serverURL: serverURL,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

type errorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

func (c *Client) Login(ctx context.Context, cred domain.Credenciais) (string, error) {
	payload, err := json.Marshal(loginRequest{
		Username: cred.Username,
		Password: cred.Password,
	})
	if err != nil {
		return "", serviceerrors.NewAppError(err).Wrap(err, "encoding credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL.String(), bytes.NewReader(payload))
	if err != nil {
		return "", serviceerrors.NewAppError(err).Wrap(err, "building login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", serviceerrors.NewTransport(err).LogError(ctx)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", serviceerrors.NewTransport(err).LogError(ctx)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		er := errorResponse{}
		_ = json.Unmarshal(data, &er)
		return "", serviceerrors.NewServer(er.Error, resp.StatusCode).LogError(ctx)
	}

	lr := loginResponse{}
	if err = json.Unmarshal(data, &lr); err != nil {
		return "", serviceerrors.NewAppError(err).Wrap(err, "decoding login response").LogError(ctx)
	}

	if lr.AccessToken == "" {
		return "", serviceerrors.NewAppError(nil).Wrap(nil, "login response without accessToken").LogError(ctx)
	}

	logger.Infof(ctx, "login bem-sucedido para %q", cred.Username)

	return lr.AccessToken, nil
}
