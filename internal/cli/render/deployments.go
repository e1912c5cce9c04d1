package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gridledger/energy-deploy/internal/domain/models"
	"github.com/gridledger/energy-deploy/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Output formats for deployment lists
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Color styles for table format
var (
	chainHeader    = color.New(color.BgCyan, color.FgBlack, color.Bold)
	contractStyle  = color.New(color.FgHiWhite, color.Bold)
	addressStyle   = color.New(color.FgWhite)
	timestampStyle = color.New(color.Faint)
)

// DeploymentsRenderer renders deployment lists
type DeploymentsRenderer struct {
	out    io.Writer
	format string
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, format string) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out, format: format}
}

// RenderDeploymentList renders deployments in the configured format
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(nonNil(result.Deployments))
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(nonNil(result.Deployments)); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable, "":
		return r.renderTable(result)
	default:
		return fmt.Errorf("unknown format %q (expected %s, %s or %s)", r.format, FormatTable, FormatJSON, FormatYAML)
	}
}

func (r *DeploymentsRenderer) renderTable(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	title := cases.Title(language.English, cases.NoLower)

	for _, chainID := range result.ChainIDs {
		fmt.Fprintln(r.out, chainHeader.Sprintf(" chain %d ", chainID))

		t := table.NewWriter()
		t.SetOutputMirror(r.out)
		t.SetStyle(table.StyleLight)
		t.Style().Options.DrawBorder = false
		t.Style().Options.SeparateColumns = false
		t.AppendHeader(table.Row{"Contract", "Address", "Block", "Tx", "Deployed"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 3, Align: text.AlignRight},
		})

		for _, d := range result.Deployments {
			if d.ChainID != chainID {
				continue
			}
			t.AppendRow(table.Row{
				contractStyle.Sprint(title.String(d.ContractName)),
				addressStyle.Sprint(d.Address),
				strconv.FormatUint(d.BlockNumber, 10),
				shortHash(d.TransactionHash),
				timestampStyle.Sprint(d.DeployedAt.Local().Format("2006-01-02 15:04:05")),
			})
		}
		t.Render()
		fmt.Fprintln(r.out)
	}

	return nil
}

func shortHash(hash string) string {
	if len(hash) <= 14 {
		return hash
	}
	return hash[:8] + "…" + hash[len(hash)-6:]
}

func nonNil(deployments []*models.Deployment) []*models.Deployment {
	if deployments == nil {
		return []*models.Deployment{}
	}
	return deployments
}
