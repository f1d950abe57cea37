package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	"github.com/diillson/aws-cost-by-group-go/internal/shared/types"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
type Console struct {
	out         io.Writer
	interactive bool
}

// NewConsole cria um novo Console escrevendo em os.Stdout.
// O spinner só é usado quando a saída é um terminal.
func NewConsole() *Console {
	return &Console{
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// NewConsoleWithWriter cria um Console não interativo que escreve em w.
func NewConsoleWithWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Fprint(c.out, a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.WithWriter(c.out).Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.WithWriter(c.out).Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.WithWriter(c.out).Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.WithWriter(c.out).Printfln(format, a...)
}

// DumpJSON imprime v como JSON indentado, usado no dump dos dados brutos da API.
func (c *Console) DumpJSON(v interface{}) {
	encoder := json.NewEncoder(c.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		c.LogWarning("could not dump data: %s", err)
	}
}

// Cores predefinidas para uso consistente
var (
	BoldRed    = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightBlue = color.New(color.FgBlue, color.Bold).SprintFunc()
)

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	if !c.interactive {
		return &statusHandle{}
	}
	spinner, _ := pterm.DefaultSpinner.WithWriter(c.out).Start(message)
	return &statusHandle{spinner: spinner}
}

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	aligns  []tw.Align
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela. Aceita types.AlignRight como opção;
// o padrão é alinhar à esquerda.
func (t *Table) AddColumn(name string, options ...interface{}) {
	align := tw.AlignLeft
	for _, opt := range options {
		if a, ok := opt.(types.Alignment); ok && a == types.AlignRight {
			align = tw.AlignRight
		}
	}
	t.columns = append(t.columns, name)
	t.aligns = append(t.aligns, align)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	// Convertemos cada célula para string
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Len retorna o número de linhas de dados.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	var buf bytes.Buffer

	table := tablewriter.NewTable(&buf)
	table.Configure(func(cfg *tablewriter.Config) {
		// Cabeçalhos saem exatamente como os nomes das colunas do awscostdata.
		cfg.Header.Formatting.AutoFormat = tw.Off
		cfg.Header.Alignment.PerColumn = t.aligns
		cfg.Row.Alignment.PerColumn = t.aligns
	})

	table.Header(t.columns)
	for _, row := range t.rows {
		_ = table.Append(row)
	}
	_ = table.Render()

	return buf.String()
}
