package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"

	"github.com/rezonia/payroll-tracker/internal/parser/cfdi"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Show structural information about a CFDI file",
	Long: `Inspect a CFDI XML file and report the detected schema version, the
resolved namespaces and which payroll-relevant nodes are present.

Examples:
  payroll-tracker info receipt.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// FileInfo describes the structure of one CFDI file
type FileInfo struct {
	File          string `json:"file"`
	Size          int    `json:"size"`
	RootTag       string `json:"root_tag"`
	SchemaVersion string `json:"schema_version,omitempty"`
	CFDINamespace string `json:"cfdi_namespace,omitempty"`
	HasEmisor     bool   `json:"has_emisor"`
	HasNomina     bool   `json:"has_nomina"`
	Deductions    int    `json:"deductions"`
	HasStamp      bool   `json:"has_stamp"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(content); err != nil {
		return fmt.Errorf("%s is not well-formed XML: %w", path, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("%s has no root element", path)
	}

	info := &FileInfo{
		File:          path,
		Size:          len(content),
		RootTag:       root.Tag,
		SchemaVersion: cfdi.SchemaVersion(root),
	}

	if ns, err := cfdi.ResolveNamespaces(root); err == nil {
		info.CFDINamespace = ns.CFDI
		for _, child := range root.ChildElements() {
			if child.Tag == "Emisor" && child.NamespaceURI() == ns.CFDI {
				info.HasEmisor = true
			}
		}
		for _, el := range root.FindElements("//*") {
			switch {
			case el.Tag == "Nomina" && el.NamespaceURI() == ns.Nomina:
				info.HasNomina = true
			case el.Tag == "Deduccion" && el.NamespaceURI() == ns.Nomina:
				info.Deductions++
			case el.Tag == "TimbreFiscalDigital" && el.NamespaceURI() == ns.Stamp:
				info.HasStamp = true
			}
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}
