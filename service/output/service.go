// Package output provides a service for rendering results to the console.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/thirukguru/aws-inventory/model"
	"github.com/thirukguru/aws-inventory/shared/spinner"
)

// NewService creates a new output service with the specified format
func NewService(format string) Service {
	return NewServiceWithWriters(format, os.Stdout, os.Stderr)
}

// NewServiceWithWriters creates an output service writing to out, with
// progress lines on errOut.
func NewServiceWithWriters(format string, out, errOut io.Writer) Service {
	f := FormatTable
	switch format {
	case "json":
		f = FormatJSON
	case "text":
		f = FormatText
	}

	return &service{
		format: f,
		out:    out,
		errOut: errOut,
	}
}

func (s *service) StopSpinner() {
	spinner.StopSpinner()
}

func (s *service) RenderVersion(info model.VersionInfo) {
	s.StopSpinner()
	fmt.Fprintf(s.out, "aws-inventory version %s\n", info.Version)
	fmt.Fprintf(s.out, "commit: %s\n", info.Commit)
	fmt.Fprintf(s.out, "built at: %s\n", info.Date)
}

// Finished prints the closing timing line. In JSON mode it goes to errOut so
// stdout stays a single document.
func (s *service) Finished(elapsed time.Duration, summary string) {
	w := s.out
	if s.format == FormatJSON {
		w = s.errOut
	}
	fmt.Fprintf(w, "Finished in %s – %s\n", elapsed.Round(10*time.Millisecond), summary)
}

func (s *service) RenderVPCs(result *model.ScanResult, listResources bool) error {
	s.StopSpinner()

	switch s.format {
	case FormatJSON:
		return s.writeJSON(result)
	case FormatText:
		s.vpcText(result.Networks(), listResources)
	default:
		s.vpcTables(result.Networks(), listResources)
	}
	return nil
}

func (s *service) vpcTables(networks []model.NetworkRecord, listResources bool) {
	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Region", "Vis", "Peering", "VPC ID", "Name", "CIDRs", "Peers", "Account"})

	for _, n := range networks {
		t.AppendRow(table.Row{
			n.Region,
			colorVisibility(n),
			n.PeeringStatus(),
			n.VpcID,
			n.Name,
			strings.Join(n.CIDRs, "\n"),
			strings.Join(n.Peers, "\n"),
			n.AccountID,
		})
	}
	t.Render()

	if !listResources {
		return
	}

	for _, n := range networks {
		if len(n.Resources) == 0 {
			continue
		}
		fmt.Fprintf(s.out, "\n%s %s", n.Region, n.VpcID)
		if n.Name != "" {
			fmt.Fprintf(s.out, " (%s)", n.Name)
		}
		fmt.Fprintln(s.out)

		rt := table.NewWriter()
		rt.SetOutputMirror(s.out)
		rt.SetStyle(table.StyleLight)
		rt.AppendHeader(table.Row{"Type", "Name", "Identifier", "Note"})
		for _, r := range n.Resources {
			rt.AppendRow(table.Row{string(r.Type), r.Name, r.ID, resourceNote(r)})
		}
		rt.Render()
	}
}

func (s *service) vpcText(networks []model.NetworkRecord, listResources bool) {
	for _, n := range networks {
		fmt.Fprintf(s.out, "%s\t%s\t%s\t%s\t%s\n", n.Region, n.Visibility(), n.PeeringStatus(), n.VpcID, n.Name)
		if len(n.CIDRs) > 0 {
			fmt.Fprintf(s.out, "  %s\n", strings.Join(n.CIDRs, ", "))
		}
		if len(n.Peers) > 0 {
			fmt.Fprintf(s.out, "  peers: %s\n", strings.Join(n.Peers, ", "))
		}
		if listResources && len(n.Resources) > 0 {
			fmt.Fprintln(s.out, "infra:")
			for _, r := range n.Resources {
				line := fmt.Sprintf("  %-22s %-28s %s", r.Type, r.Name, r.ID)
				if note := resourceNote(r); note != "" {
					line += " (" + note + ")"
				}
				fmt.Fprintln(s.out, line)
			}
			fmt.Fprintln(s.out)
		}
	}
}

func (s *service) RenderDBInstances(records []model.DBInstanceRecord) error {
	s.StopSpinner()

	switch s.format {
	case FormatJSON:
		if records == nil {
			records = []model.DBInstanceRecord{}
		}
		return s.writeJSON(records)
	case FormatText:
		for _, r := range records {
			fmt.Fprintln(s.out, FormatDBInstance(r))
		}
	default:
		t := table.NewWriter()
		t.SetOutputMirror(s.out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Role", "Account", "Region", "Instance", "Engine", "Status"})
		for _, r := range records {
			t.AppendRow(table.Row{r.RoleARN, r.AccountID, r.Region, r.InstanceID, r.Engine, r.Status})
		}
		t.Render()
	}
	return nil
}

// FormatDBInstance renders one listing row: role, region and instance
// separated by tabs, or just region and instance for the caller's own account.
func FormatDBInstance(r model.DBInstanceRecord) string {
	if r.RoleARN != "" {
		return fmt.Sprintf("%s\t%s\t%s", r.RoleARN, r.Region, r.InstanceID)
	}
	return fmt.Sprintf("%s\t%s", r.Region, r.InstanceID)
}

func (s *service) writeJSON(v any) error {
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json output: %w", err)
	}
	return nil
}

func colorVisibility(n model.NetworkRecord) string {
	if n.Public {
		return text.FgYellow.Sprint(n.Visibility())
	}
	return text.FgGreen.Sprint(n.Visibility())
}

func resourceNote(r model.ResourceRecord) string {
	if r.Unverified {
		return "unverified VPC"
	}
	return ""
}
