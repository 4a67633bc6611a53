package terminal

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	"github.com/leoalmeida/desafio-fullstack/internal/domain"
	"github.com/leoalmeida/desafio-fullstack/internal/usecases/session"
)

const (
	actionRefresh    = "Atualizar lista"
	actionSearch     = "Buscar por nome"
	actionOnlyActive = "Somente ativos"
	actionMine       = "Meus benefícios"
	actionCreate     = "Novo benefício"
	actionEdit       = "Editar benefício"
	actionToggle     = "Ativar/cancelar benefício"
	actionRemove     = "Remover benefício"
	actionTransfer   = "Transferir valor"
	actionSignOut    = "Sair da sessão"
	actionQuit       = "Encerrar"
)

// Papel exigido para as ações destrutivas e de movimentação de valor.
const adminRole = "ADMIN"

// listScreen é a tela protegida principal. Ativa a orquestração da lista na
// entrada e a desativa na saída, para respostas tardias não agirem sobre uma
// tela desmontada.
func (i *Implementation) listScreen(ctx context.Context) (quit bool, err error) {
	i.list.Activate(ctx)
	defer i.list.Deactivate()

	for {
		i.renderList()

		menu := promptui.Select{
			Label: "Ação",
			Items: i.actions(),
			Size:  11,
		}
		_, action, err := menu.Run()
		if err != nil {
			if cancelled(err) {
				return true, nil
			}
			return false, err
		}

		switch action {
		case actionRefresh:
			if err := i.list.Refresh(ctx); err != nil {
				i.printError(err)
			}

		case actionOnlyActive:
			if err := i.list.RefreshActive(ctx); err != nil {
				i.printError(err)
			}

		case actionMine:
			if err := i.list.RefreshForUser(ctx); err != nil {
				i.printError(err)
			}

		case actionSearch:
			i.searchDialog()

		case actionCreate:
			i.createFlow(ctx)

		case actionEdit:
			i.editFlow(ctx)

		case actionToggle:
			i.toggleFlow(ctx)

		case actionRemove:
			i.removeFlow(ctx)

		case actionTransfer:
			i.transferFlow(ctx)

		case actionSignOut:
			if err := i.session.Clear(ctx); err != nil {
				i.printError(err)
				continue
			}
			return false, nil

		case actionQuit:
			return true, nil
		}
	}
}

// actions monta o menu conforme o papel do usuário: remover e transferir
// exigem ADMIN (PermissionService do front original).
func (i *Implementation) actions() []string {
	actions := []string{
		actionRefresh, actionSearch, actionOnlyActive, actionMine,
		actionCreate, actionEdit, actionToggle,
	}

	if session.CanMatch(i.session.Current(), adminRole) {
		actions = append(actions, actionRemove, actionTransfer)
	}

	return append(actions, actionSignOut, actionQuit)
}

func (i *Implementation) renderList() {
	user := i.session.Current()
	items := i.list.Filtered()

	fmt.Fprintln(i.out)
	color.New(color.Bold).Fprintf(i.out, "Benefícios — %s\n", user.Username)
	if query := i.list.Query(); query != "" {
		fmt.Fprintf(i.out, "filtro: %q\n", query)
	}

	if len(items) == 0 {
		fmt.Fprintln(i.out, "nenhum benefício para exibir")
		return
	}

	nameWidth, descWidth := columnWidths(i.out)
	for _, b := range items {
		id := int64(0)
		if b.ID != nil {
			id = *b.ID
		}

		status := color.New(color.FgGreen).Sprint("ativo")
		if !b.Ativo {
			status = color.New(color.FgRed).Sprint("cancelado")
		}

		fmt.Fprintf(i.out, "%5d  %-*s  %-*s  %12s  %s\n",
			id,
			nameWidth, truncate(b.Nome, nameWidth),
			descWidth, truncate(b.Descricao, descWidth),
			b.Valor.StringFixed(2),
			status)
	}
}

func (i *Implementation) searchDialog() {
	prompt := promptui.Prompt{
		Label:   "Buscar",
		Default: i.list.Query(),
	}

	query, err := prompt.Run()
	if err != nil {
		// Busca cancelada mantém o filtro corrente.
		return
	}

	i.list.SetQuery(query)
}

func (i *Implementation) createFlow(ctx context.Context) {
	b, err := i.beneficioDialog(nil)
	if err != nil {
		i.printError(err)
		return
	}
	if b == nil {
		return
	}

	if err = i.list.CreateBeneficio(ctx, *b); err != nil {
		i.printError(err)
		return
	}

	i.printSuccess(fmt.Sprintf("benefício %q criado", b.Nome))
}

func (i *Implementation) editFlow(ctx context.Context) {
	selected := i.pickBeneficio("Editar qual benefício?")
	if selected == nil {
		return
	}

	b, err := i.beneficioDialog(selected)
	if err != nil {
		i.printError(err)
		return
	}
	if b == nil {
		return
	}

	if err = i.list.UpdateBeneficio(ctx, *b); err != nil {
		i.printError(err)
		return
	}

	i.printSuccess(fmt.Sprintf("benefício %d atualizado", *b.ID))
}

func (i *Implementation) toggleFlow(ctx context.Context) {
	selected := i.pickBeneficio("Alterar o status de qual benefício?")
	if selected == nil {
		return
	}

	next := "ativar"
	if selected.Ativo {
		next = "cancelar"
	}
	if !i.confirmDialog(fmt.Sprintf("Confirma %s o benefício %q", next, selected.Nome)) {
		return
	}

	if err := i.list.ToggleStatus(ctx, *selected); err != nil {
		i.printError(err)
		return
	}

	i.printSuccess(fmt.Sprintf("status do benefício %d alterado", *selected.ID))
}

func (i *Implementation) removeFlow(ctx context.Context) {
	selected := i.pickBeneficio("Remover qual benefício?")
	if selected == nil {
		return
	}

	if !i.confirmDialog(fmt.Sprintf("Confirma remover o benefício %q", selected.Nome)) {
		return
	}

	if err := i.list.RemoveBeneficio(ctx, *selected.ID); err != nil {
		i.printError(err)
		return
	}

	i.printSuccess(fmt.Sprintf("benefício %d removido", *selected.ID))
}

func (i *Implementation) transferFlow(ctx context.Context) {
	t, err := i.transferDialog()
	if err != nil {
		i.printError(err)
		return
	}
	if t == nil {
		return
	}

	if err = i.list.TransferValue(ctx, *t); err != nil {
		i.printError(err)
		return
	}

	i.printSuccess(fmt.Sprintf("valor %s transferido do benefício %d para o %d",
		t.Valor.StringFixed(2), t.FromID, t.ToID))
}

// pickBeneficio abre a seleção sobre a visão filtrada corrente.
// Devolve nil quando cancelado ou quando não há itens.
func (i *Implementation) pickBeneficio(label string) *domain.Beneficio {
	items := i.list.Filtered()
	if len(items) == 0 {
		fmt.Fprintln(i.out, "nenhum benefício para exibir")
		return nil
	}

	labels := make([]string, len(items))
	for n, b := range items {
		id := int64(0)
		if b.ID != nil {
			id = *b.ID
		}
		labels[n] = fmt.Sprintf("%d — %s (%s)", id, b.Nome, b.Valor.StringFixed(2))
	}

	menu := promptui.Select{
		Label: label,
		Items: labels,
		Size:  10,
	}

	n, _, err := menu.Run()
	if err != nil {
		return nil
	}

	return &items[n]
}

func (i *Implementation) confirmDialog(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	return err == nil
}

// columnWidths dimensiona as colunas de texto pela largura do terminal.
func columnWidths(out any) (nameWidth, descWidth int) {
	width := 80
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	// 5 de id, 12 de valor, status e espaçamentos ocupam o resto.
	free := width - 40
	if free < 30 {
		free = 30
	}

	nameWidth = free / 2
	descWidth = free - nameWidth
	return nameWidth, descWidth
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}

	return string(runes[:max-1]) + "…"
}
