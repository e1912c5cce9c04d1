package render

import (
	"fmt"
	"io"

	"github.com/gridledger/energy-deploy/internal/usecase"
)

// DeployRenderer writes the result of a deployment run
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// RenderDeployResult writes exactly one line: "<Name> contract deployed to: <address>"
func (r *DeployRenderer) RenderDeployResult(result *usecase.DeployResult) error {
	_, err := fmt.Fprintf(r.out, "%s contract deployed to: %s\n", result.ContractName, result.Address)
	return err
}
