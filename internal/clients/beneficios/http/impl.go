package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/leoalmeida/desafio-fullstack/internal/domain"
	"github.com/leoalmeida/desafio-fullstack/internal/pkg/logger"
	"github.com/leoalmeida/desafio-fullstack/internal/pkg/serviceerrors"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type tokenSource interface {
	Token() (string, bool)
}

// Client traduz intenções de domínio em chamadas REST ao recurso de
// benefícios e normaliza os resultados: falha de transporte vira a mensagem
// genérica, resposta não-2xx vira a mensagem do servidor quando presente.
// Não há retry: falha é devolvida uma única vez a quem chamou.
type Client struct {
	client    httpClient
	serverURL url.URL
	tokens    tokenSource
}

func NewClient(client httpClient, serverURL url.URL, tokens tokenSource) *Client {
	return &Client{
		client:    client,
		serverURL: serverURL,
		tokens:    tokens,
	}
}

// errorResponse é o corpo de erro do backend (GlobalExceptionHandler).
type errorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

func (c *Client) List(ctx context.Context) ([]domain.Beneficio, error) {
	listURL := c.serverURL

	var beneficios []domain.Beneficio
	if err := c.doJSON(ctx, http.MethodGet, &listURL, nil, &beneficios); err != nil {
		return nil, err
	}

	return beneficios, nil
}

func (c *Client) ListActive(ctx context.Context) ([]domain.Beneficio, error) {
	listURL := c.serverURL.JoinPath("ativos")

	var beneficios []domain.Beneficio
	if err := c.doJSON(ctx, http.MethodGet, listURL, nil, &beneficios); err != nil {
		return nil, err
	}

	return beneficios, nil
}

func (c *Client) ListForAssociate(ctx context.Context, associadoID int64) ([]domain.Beneficio, error) {
	listURL := c.serverURL.JoinPath("associado", strconv.FormatInt(associadoID, 10))

	var beneficios []domain.Beneficio
	if err := c.doJSON(ctx, http.MethodGet, listURL, nil, &beneficios); err != nil {
		return nil, err
	}

	return beneficios, nil
}

func (c *Client) Create(ctx context.Context, b domain.Beneficio) (domain.Beneficio, error) {
	logger.Infof(ctx, "solicitando a criação de novo benefício: nome: %s", b.Nome)

	createURL := c.serverURL

	var created domain.Beneficio
	if err := c.doJSON(ctx, http.MethodPost, &createURL, b, &created); err != nil {
		return domain.Beneficio{}, err
	}

	return created, nil
}

func (c *Client) Update(ctx context.Context, b domain.Beneficio) (domain.Beneficio, error) {
	if b.ID == nil {
		return domain.Beneficio{}, serviceerrors.NewValidation("benefício sem id").
			Wrap(domain.ErrMissingID, "update")
	}

	logger.Infof(ctx, "atualizando benefício: %d", *b.ID)

	updateURL := c.serverURL.JoinPath(strconv.FormatInt(*b.ID, 10))

	var updated domain.Beneficio
	if err := c.doJSON(ctx, http.MethodPut, updateURL, b, &updated); err != nil {
		return domain.Beneficio{}, err
	}

	return updated, nil
}

// SetStatus alterna o status chamando o endpoint dedicado derivado do estado
// corrente: benefício ativo vai para "cancelar", inativo vai para "ativar".
// Nunca usa o update genérico, para a ativação continuar auditável no servidor.
func (c *Client) SetStatus(ctx context.Context, b domain.Beneficio) (domain.Beneficio, error) {
	if b.ID == nil {
		return domain.Beneficio{}, serviceerrors.NewValidation("benefício sem id").
			Wrap(domain.ErrMissingID, "set status")
	}

	action := "ativar"
	if b.Ativo {
		action = "cancelar"
	}

	logger.Infof(ctx, "alterando status do benefício %d: %s", *b.ID, action)

	statusURL := c.serverURL.JoinPath(strconv.FormatInt(*b.ID, 10), action)

	var updated domain.Beneficio
	if err := c.doJSON(ctx, http.MethodPut, statusURL, nil, &updated); err != nil {
		return domain.Beneficio{}, err
	}

	return updated, nil
}

func (c *Client) Remove(ctx context.Context, beneficioID int64) error {
	logger.Infof(ctx, "removendo benefício: %d", beneficioID)

	removeURL := c.serverURL.JoinPath(strconv.FormatInt(beneficioID, 10))

	return c.doJSON(ctx, http.MethodDelete, removeURL, nil, nil)
}

func (c *Client) Transfer(ctx context.Context, t domain.Transferencia) error {
	logger.Infof(ctx, "transferindo valor %s do benefício %d para o benefício %d",
		t.Valor, t.FromID, t.ToID)

	transferURL := c.serverURL.JoinPath("transferir")

	return c.doJSON(ctx, http.MethodPost, transferURL, t, nil)
}

func (c *Client) doJSON(ctx context.Context, method string, u *url.URL, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return serviceerrors.NewAppError(err).Wrap(err, "encoding request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return serviceerrors.NewAppError(err).Wrap(err, "building request")
	}

	if payload != nil {
		req.Header.Set(contentTypeKey, applicationJSONType)
	}
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set(authorizationKey, bearerPrefix+token)
	}
	req.Header.Set(requestIDKey, uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return serviceerrors.NewTransport(err).LogError(ctx)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return serviceerrors.NewTransport(err).LogError(ctx)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		er := errorResponse{}
		_ = json.Unmarshal(data, &er)
		return serviceerrors.NewServer(er.Error, resp.StatusCode).LogError(ctx)
	}

	if out != nil && len(data) > 0 {
		if err = json.Unmarshal(data, out); err != nil {
			return serviceerrors.NewAppError(err).Wrap(err, "decoding response").LogError(ctx)
		}
	}

	return nil
}
