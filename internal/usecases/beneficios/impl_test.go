package beneficios

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoalmeida/desafio-fullstack/internal/domain"
	"github.com/leoalmeida/desafio-fullstack/internal/pkg/loading"
	sessionuc "github.com/leoalmeida/desafio-fullstack/internal/usecases/session"
)

type fakeClient struct {
	listFn      func(ctx context.Context) ([]domain.Beneficio, error)
	setStatusFn func(ctx context.Context, b domain.Beneficio) (domain.Beneficio, error)
	createFn    func(ctx context.Context, b domain.Beneficio) (domain.Beneficio, error)
}

func (f *fakeClient) List(ctx context.Context) ([]domain.Beneficio, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeClient) ListActive(ctx context.Context) ([]domain.Beneficio, error) {
	return f.List(ctx)
}

func (f *fakeClient) ListForAssociate(ctx context.Context, associadoID int64) ([]domain.Beneficio, error) {
	return f.List(ctx)
}

func (f *fakeClient) Create(ctx context.Context, b domain.Beneficio) (domain.Beneficio, error) {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	return b, nil
}

func (f *fakeClient) Update(ctx context.Context, b domain.Beneficio) (domain.Beneficio, error) {
	return b, nil
}

func (f *fakeClient) SetStatus(ctx context.Context, b domain.Beneficio) (domain.Beneficio, error) {
	if f.setStatusFn != nil {
		return f.setStatusFn(ctx, b)
	}
	return b, nil
}

func (f *fakeClient) Remove(ctx context.Context, beneficioID int64) error {
	return nil
}

func (f *fakeClient) Transfer(ctx context.Context, t domain.Transferencia) error {
	return nil
}

// makeTestToken monta um token cujo payload identifica o usuário 42.
func makeTestToken(t *testing.T) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString(
		[]byte(`{"id":42,"username":"maria","roles":["ADMIN"],"permissions":[]}`))

	return header + "." + payload + "."
}

func beneficio(id int64, nome string, ativo bool) domain.Beneficio {
	return domain.Beneficio{
		ID:    &id,
		Nome:  nome,
		Valor: decimal.NewFromInt(100),
		Ativo: ativo,
	}
}

func newListForTest(client *fakeClient) (*Implementation, *loading.Signal) {
	signal := loading.NewSignal()
	store := sessionuc.NewImplementation(sessionuc.NewMemory())
	return NewImplementation(client, signal, store), signal
}

func TestFilterEquivalentQueriesReturnSameResult(t *testing.T) {
	items := []domain.Beneficio{
		beneficio(1, "Vale Refeição", true),
		beneficio(2, "Vale Transporte", true),
	}

	// Consultas com a mesma forma normalizada produzem exatamente o mesmo
	// resultado.
	pairs := [][2]string{
		{"refei", "REFEI"},
		{"refeição", "refeicao"},
		{"REFEIÇÃO", "ReFeIcAo"},
		{"transporte", "TRANSPORTÉ"},
	}

	for _, pair := range pairs {
		require.Equal(t, normalize(pair[0]), normalize(pair[1]),
			"par de teste inválido: %q e %q não normalizam igual", pair[0], pair[1])

		assert.Equal(t,
			filterByNome(items, pair[0]),
			filterByNome(items, pair[1]),
			"consultas %q e %q deveriam filtrar igual", pair[0], pair[1])
	}
}

func TestFilterEmptyQueryReturnsFullListInOrder(t *testing.T) {
	items := []domain.Beneficio{
		beneficio(3, "Vale Cultura", false),
		beneficio(1, "Vale Refeição", true),
		beneficio(2, "Vale Transporte", true),
	}

	assert.Equal(t, items, filterByNome(items, ""))
}

func TestFilterIsAccentAndCaseInsensitive(t *testing.T) {
	items := []domain.Beneficio{
		beneficio(1, "Vale Refeição", true),
		beneficio(2, "Vale Transporte", true),
	}

	filtered := filterByNome(items, "refei")

	require.Len(t, filtered, 1)
	assert.Equal(t, "Vale Refeição", filtered[0].Nome)

	// O nome também é normalizado, não só a consulta.
	filtered = filterByNome(items, "refeicao")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Vale Refeição", filtered[0].Nome)
}

func TestFilteredNeverMutatesSnapshot(t *testing.T) {
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]domain.Beneficio, error) {
			return []domain.Beneficio{
				beneficio(1, "Vale Refeição", true),
				beneficio(2, "Vale Transporte", true),
			}, nil
		},
	}

	list, _ := newListForTest(client)

	updated := make(chan struct{}, 1)
	list.OnUpdate(func() {
		updated <- struct{}{}
	})

	list.Activate(context.Background())
	defer list.Deactivate()

	select {
	case <-updated:
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot não foi instalado após a busca")
	}

	list.SetQuery("transporte")
	filtered := list.Filtered()
	require.Len(t, filtered, 1)

	// Alterar o resultado filtrado não pode vazar para o snapshot.
	filtered[0].Nome = "mudado"

	snapshot := list.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "Vale Transporte", snapshot[1].Nome)
}

func TestActivateTurnsLoadingOffBeforeFetchCompletes(t *testing.T) {
	release := make(chan struct{})
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]domain.Beneficio, error) {
			<-release
			return []domain.Beneficio{beneficio(1, "Vale Refeição", true)}, nil
		},
	}

	list, signal := newListForTest(client)

	updated := make(chan struct{}, 1)
	list.OnUpdate(func() {
		updated <- struct{}{}
	})

	list.Activate(context.Background())
	defer list.Deactivate()

	// Comportamento observado no sistema original, preservado de propósito:
	// o indicador apaga quando a assinatura da sessão é estabelecida, não
	// quando a busca termina. A busca ainda está em voo aqui.
	t.Log("desvio preservado: loading apaga antes do fetch inicial completar")
	assert.False(t, signal.Visible())

	close(release)

	select {
	case <-updated:
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot não foi instalado após a busca")
	}

	assert.Len(t, list.Snapshot(), 1)
}

func TestLateResultDiscardedAfterDeactivate(t *testing.T) {
	release := make(chan struct{})
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]domain.Beneficio, error) {
			<-release
			return []domain.Beneficio{beneficio(1, "Vale Refeição", true)}, nil
		},
	}

	list, _ := newListForTest(client)

	list.Activate(context.Background())
	list.Deactivate()

	// A resposta chega depois da desmontagem: deve ser descartada.
	close(release)

	assert.Never(t, func() bool {
		return len(list.Snapshot()) > 0
	}, 200*time.Millisecond, 20*time.Millisecond)
}

func TestActivateTracksSessionUpdates(t *testing.T) {
	client := &fakeClient{}
	signal := loading.NewSignal()
	store := sessionuc.NewImplementation(sessionuc.NewMemory())
	list := NewImplementation(client, signal, store)

	list.Activate(context.Background())
	defer list.Deactivate()

	token := makeTestToken(t)
	require.NoError(t, store.SaveToken(context.Background(), token))

	assert.Eventually(t, func() bool {
		return list.User().ID == 42
	}, 2*time.Second, 10*time.Millisecond)
}

func TestToggleStatusDelegatesAndRefreshes(t *testing.T) {
	var statusCalls, listCalls int
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]domain.Beneficio, error) {
			listCalls++
			return nil, nil
		},
		setStatusFn: func(ctx context.Context, b domain.Beneficio) (domain.Beneficio, error) {
			statusCalls++
			return b, nil
		},
	}

	list, _ := newListForTest(client)

	require.NoError(t, list.ToggleStatus(context.Background(), beneficio(1, "Vale Refeição", true)))

	assert.Equal(t, 1, statusCalls)
	assert.Equal(t, 1, listCalls, "mutação deve rebuscar a lista")
}
