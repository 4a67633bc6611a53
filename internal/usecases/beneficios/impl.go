package beneficios

import (
	"context"
	"sync"

	"github.com/leoalmeida/desafio-fullstack/internal/domain"
	"github.com/leoalmeida/desafio-fullstack/internal/pkg/logger"
)

type resourceClient interface {
	List(ctx context.Context) ([]domain.Beneficio, error)
	ListActive(ctx context.Context) ([]domain.Beneficio, error)
	ListForAssociate(ctx context.Context, associadoID int64) ([]domain.Beneficio, error)
	Create(ctx context.Context, b domain.Beneficio) (domain.Beneficio, error)
	Update(ctx context.Context, b domain.Beneficio) (domain.Beneficio, error)
	SetStatus(ctx context.Context, b domain.Beneficio) (domain.Beneficio, error)
	Remove(ctx context.Context, beneficioID int64) error
	Transfer(ctx context.Context, t domain.Transferencia) error
}

type sessionStore interface {
	Current() domain.Session
	Sessions() (<-chan domain.Session, func())
}

type loadingSignal interface {
	On()
	Off()
}

// Implementation orquestra a lista de benefícios: mantém o último snapshot
// completo buscado com sucesso e deriva a visão filtrada a partir dele.
// O snapshot nunca é mutado pelo filtro.
type Implementation struct {
	client  resourceClient
	loading loadingSignal
	store   sessionStore

	mu          sync.Mutex
	items       []domain.Beneficio
	query       string
	user        domain.Session
	active      bool
	unsubscribe func()
	onUpdate    func()
}

func NewImplementation(client resourceClient, loading loadingSignal, store sessionStore) *Implementation {
	return &Implementation{
		client:  client,
		loading: loading,
		store:   store,
	}
}

// Activate prepara a tela de lista: liga o indicador, assina a sessão
// corrente e dispara a busca inicial em segundo plano.
//
// O indicador apaga quando a assinatura da sessão está estabelecida, e não
// quando a busca termina — comportamento observado no sistema original,
// preservado deliberadamente (ver DESIGN.md).
func (i *Implementation) Activate(ctx context.Context) {
	i.loading.On()

	ch, unsubscribe := i.store.Sessions()

	i.mu.Lock()
	i.active = true
	i.unsubscribe = unsubscribe
	i.user = i.store.Current()
	i.mu.Unlock()

	go func() {
		for user := range ch {
			i.mu.Lock()
			i.user = user
			i.mu.Unlock()
		}
	}()

	go func() {
		if err := i.Refresh(ctx); err != nil {
			logger.Errorf(ctx, "busca inicial de benefícios falhou: %v", err)
		}
	}()

	i.loading.Off()
}

// Deactivate desmonta a tela: cancela a assinatura da sessão e marca a lista
// como inativa, fazendo resultados tardios serem descartados em vez de
// aplicados a uma tela morta.
func (i *Implementation) Deactivate() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.active = false
	if i.unsubscribe != nil {
		i.unsubscribe()
		i.unsubscribe = nil
	}
}

// OnUpdate registra o callback de re-render chamado quando um novo snapshot
// é aplicado.
func (i *Implementation) OnUpdate(fn func()) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.onUpdate = fn
}

// Refresh busca a coleção completa e a instala como novo snapshot.
func (i *Implementation) Refresh(ctx context.Context) error {
	items, err := i.client.List(ctx)
	if err != nil {
		return err
	}

	return i.install(ctx, items)
}

// RefreshActive limita o snapshot aos benefícios ativos.
func (i *Implementation) RefreshActive(ctx context.Context) error {
	items, err := i.client.ListActive(ctx)
	if err != nil {
		return err
	}

	return i.install(ctx, items)
}

// RefreshForUser busca os benefícios do associado logado.
func (i *Implementation) RefreshForUser(ctx context.Context) error {
	i.mu.Lock()
	user := i.user
	i.mu.Unlock()

	items, err := i.client.ListForAssociate(ctx, user.ID)
	if err != nil {
		return err
	}

	return i.install(ctx, items)
}

func (i *Implementation) install(ctx context.Context, items []domain.Beneficio) error {
	i.mu.Lock()
	if !i.active {
		i.mu.Unlock()
		logger.Warnf(ctx, "resultado descartado: lista desativada antes da resposta chegar")
		return nil
	}
	i.items = items
	onUpdate := i.onUpdate
	i.mu.Unlock()

	if onUpdate != nil {
		onUpdate()
	}

	return nil
}

func (i *Implementation) SetQuery(query string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.query = query
}

func (i *Implementation) Query() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.query
}

func (i *Implementation) User() domain.Session {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.user
}

// Snapshot devolve uma cópia da coleção do último fetch bem-sucedido.
func (i *Implementation) Snapshot() []domain.Beneficio {
	i.mu.Lock()
	defer i.mu.Unlock()

	snapshot := make([]domain.Beneficio, len(i.items))
	copy(snapshot, i.items)
	return snapshot
}

// Filtered deriva a visão corrente: busca textual insensível a acentos e a
// caixa sobre o nome, consulta vazia devolve a lista inteira na ordem
// original. Derivação pura, recalculada a cada chamada.
func (i *Implementation) Filtered() []domain.Beneficio {
	i.loading.On()
	defer i.loading.Off()

	i.mu.Lock()
	items := i.items
	query := i.query
	i.mu.Unlock()

	return filterByNome(items, query)
}

func (i *Implementation) CreateBeneficio(ctx context.Context, b domain.Beneficio) error {
	if _, err := i.client.Create(ctx, b); err != nil {
		return err
	}

	return i.Refresh(ctx)
}

func (i *Implementation) UpdateBeneficio(ctx context.Context, b domain.Beneficio) error {
	if _, err := i.client.Update(ctx, b); err != nil {
		return err
	}

	return i.Refresh(ctx)
}

// ToggleStatus alterna ativo/cancelado via endpoint dedicado de status.
func (i *Implementation) ToggleStatus(ctx context.Context, b domain.Beneficio) error {
	if _, err := i.client.SetStatus(ctx, b); err != nil {
		return err
	}

	return i.Refresh(ctx)
}

func (i *Implementation) RemoveBeneficio(ctx context.Context, beneficioID int64) error {
	if err := i.client.Remove(ctx, beneficioID); err != nil {
		return err
	}

	return i.Refresh(ctx)
}

func (i *Implementation) TransferValue(ctx context.Context, t domain.Transferencia) error {
	if err := i.client.Transfer(ctx, t); err != nil {
		return err
	}

	return i.Refresh(ctx)
}
